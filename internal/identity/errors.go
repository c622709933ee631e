// SPDX-License-Identifier: Apache-2.0

package identity

import "errors"

// Sentinel errors returned by the identity package. Callers can match
// against them with [errors.Is], though the HTTP layer deliberately collapses
// all of them into a single unauthorized response.
var (
	// ErrInvalidServiceKey is returned when the base64-encoded service
	// account secret cannot be decoded or lacks required fields.
	ErrInvalidServiceKey = errors.New("invalid identity service key")

	// ErrInvalidCredential is returned when a presented ID token fails
	// verification (bad signature, wrong issuer or audience, expired).
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrMissingEmailClaim is returned when a token verifies correctly but
	// carries no email claim; such a principal cannot own anything.
	ErrMissingEmailClaim = errors.New("token has no email claim")

	// ErrUnknownKeyID is returned when the token names a signing key the
	// provider's published certificates do not contain.
	ErrUnknownKeyID = errors.New("unknown signing key id")

	// ErrFetchingCerts is returned when the provider's certificate endpoint
	// cannot be reached or returns an unusable payload.
	ErrFetchingCerts = errors.New("error fetching provider certificates")
)
