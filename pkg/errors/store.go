package errors

import (
	"context"
	"errors"
	"strings"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlStateIntegrityClass  = "23"
)

// FromStore classifies a persistence failure. Integrity violations become
// CONFLICT, typed errors pass through, and everything else is reported as a
// DEPENDENCY failure of the database.
func FromStore(err error, message string) *Error {
	if err == nil {
		return nil
	}
	if typed := As(err); typed != nil {
		return typed
	}

	state := Dump(err).PGCode
	switch {
	case state == sqlStateUniqueViolation:
		return Wrap(CodeConflict, err, message+": duplicate value")
	case strings.HasPrefix(state, sqlStateIntegrityClass):
		return Wrap(CodeConflict, err, message+": constraint violated")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(CodeDependency, err, message+": timed out")
	}
	return Wrap(CodeDependency, err, message)
}
