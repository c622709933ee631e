// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrJobNotFound is returned when a job identifier does not resolve to
	// a stored document.
	ErrJobNotFound = errors.New("job not found")

	// ErrTaskNotFound is returned when an accepted-task identifier does not
	// resolve to a stored document.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidID is returned when a caller-supplied identifier cannot be
	// parsed into the backend's identifier format. The HTTP layer surfaces
	// it as a bad request rather than a not-found.
	ErrInvalidID = errors.New("invalid resource identifier")
)

// Low-level store operation errors. These are returned (or wrapped) by
// repository methods when a driver-level operation fails before any domain
// logic can be applied. The HTTP layer maps them all to a generic server
// error without echoing driver detail.
var (
	// ErrBuildingQuery is returned when constructing a parameterised query
	// fails before it reaches the backend.
	ErrBuildingQuery = errors.New("error building store query")

	// ErrExecutingQuery is returned when executing a read query against the
	// backend fails.
	ErrExecutingQuery = errors.New("error executing store query")

	// ErrExecutingStatement is returned when executing a mutating operation
	// (insert, update, delete) fails.
	ErrExecutingStatement = errors.New("error executing store statement")

	// ErrScanningRows is returned when decoding backend results into domain
	// models fails.
	ErrScanningRows = errors.New("error decoding store results")

	// ErrConstraintViolation is returned when the backend rejects a write
	// for violating a schema constraint.
	ErrConstraintViolation = errors.New("store constraint violation")
)
