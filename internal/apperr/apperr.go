// Package apperr defines the two error kinds the API surfaces to clients.
//
// Every failure a caller can see is either their own input being wrong
// (unknown id, bad email, text too long) or a missing relationship
// (not a member, not an owner, dead token). Internal failures stay
// internal and are never wrapped into these kinds.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInput: the request's own data is malformed or refers to
	// something that doesn't exist. Maps to 400.
	KindInput Kind = iota + 1
	// KindAccess: the request is well-formed but the actor lacks the
	// required relationship. Maps to 403.
	KindAccess
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Input builds a KindInput error.
func Input(format string, args ...any) error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// Access builds a KindAccess error.
func Access(format string, args ...any) error {
	return &Error{Kind: KindAccess, Message: fmt.Sprintf(format, args...)}
}

func IsInput(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInput
}

func IsAccess(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAccess
}
