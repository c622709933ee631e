package service

import "errors"

var (
	// ErrForbidden is returned when an authenticated principal is not
	// permitted to act on the targeted resource instance.
	ErrForbidden = errors.New("forbidden access to another user's resource")
)
