// Package apperr holds the error kinds shared by every ledger operation.
//
// Each failure carries one of four kinds. Callers branch on the kind with
// errors.Is(err, apperr.ErrValidation) and friends; domain packages declare
// their own sentinels (loan.ErrNotFound, …) built on top of these kinds.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrConsistency = errors.New("consistency error")
)

// Error is a classified failure, optionally tied to an input field.
type Error struct {
	Kind  error
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Msg
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error { return &Error{Kind: ErrNotFound, Msg: msg} }

func Conflict(msg string) *Error { return &Error{Kind: ErrConflict, Msg: msg} }

func Consistency(msg string) *Error { return &Error{Kind: ErrConsistency, Msg: msg} }

// Replace returns to when err matches from, and err otherwise. Use cases
// translate storage errors such as gorm.ErrRecordNotFound with it.
func Replace(err, from, to error) error {
	if errors.Is(err, from) {
		return to
	}
	return err
}

// KindOf returns the kind sentinel carried by err, or nil for unclassified errors.
func KindOf(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrConsistency} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
