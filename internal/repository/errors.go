// Package repository defines sentinel error values that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as handlers to distinguish between different failure scenarios. For
// example, ErrSeatsExhausted signals that the client activation path hit
// the agency's seat cap and should be translated into an HTTP 429, while
// ErrDuplicateAgency signals a uniqueness violation on create and maps
// to an HTTP 409.
package repository

import "errors"

// ErrAgencyNotFound is returned when the referenced agency does not
// exist, looked up either by id (admin paths) or by API key (client
// paths). Handlers translate the API-key case into a uniform 403,
// without revealing whether the key was malformed or simply unknown.
var ErrAgencyNotFound = errors.New("agency not found")

// ErrDuplicateAgency is returned when an agency with the requested name
// already exists. Handlers should translate this into an HTTP 409.
var ErrDuplicateAgency = errors.New("agency name already exists")

// ErrSeatsExhausted is returned by Activate when admitting the device
// would push the count of active licenses past the agency's seat cap.
// No row has been written when this error is returned.
var ErrSeatsExhausted = errors.New("no license seats available")

// ErrNoVersion is returned by GetLatest when the agency has never
// published a version. It is a distinct "nothing published" outcome
// rather than a store failure; handlers surface it as a sentinel
// payload with a 200, not as an error status.
var ErrNoVersion = errors.New("no version published")
