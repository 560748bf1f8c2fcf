package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and services translate them into coded domain errors.
//
//   - ErrNotFound: row does not exist
//   - ErrConflict: a uniqueness or optimistic-version check rejected the write
//     (second open attempt for an owner, stale owner version, duplicate certificate number)
//   - ErrAlreadyUsed: the natural key already has a record (certificate for a verification)
//   - ErrInvalidState: the row exists but is in the wrong lifecycle state for the write
//   - ErrUnavailable: the backing service is temporarily unreachable
//
// Validation failures never use these; they come from pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
