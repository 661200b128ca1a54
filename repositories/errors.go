package repositories

import "errors"

// ErrNotFound is returned when a referenced session does not exist on a
// read path.
var ErrNotFound = errors.New("not found")

// ErrConstraintViolation is returned when a write would reference a session
// that does not exist. Callers are expected to resolve the session first,
// so hitting this is a programming error rather than a client condition.
var ErrConstraintViolation = errors.New("constraint violation: session does not exist")
