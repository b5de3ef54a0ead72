// Package apperrors defines the layered error type used across the catalog
// data-access component. Errors form chains: a sentinel declared with New can
// derive more specific children with New/Msg, and any error in the chain
// remains matchable with errors.Is against its ancestors.
//
// An Error can also carry an opaque, caller-supplied error code. The code is
// an annotation for upstream disambiguation and logging; nothing in this
// module branches on it.
package apperrors

import (
	"errors"
)

type Error interface {
	error
	Unwrap() error

	// New derives a child error with its own message. The child matches the
	// receiver under errors.Is.
	New(msg string) Error
	// Msg rewords the receiver; the result matches the receiver under
	// errors.Is.
	Msg(msg string) Error
	// Err attaches one or more causes; the result matches both the receiver
	// and every cause under errors.Is.
	Err(err ...error) Error
	// MsgErr combines Msg and Err.
	MsgErr(msg string, err ...error) Error

	// SetErrorCode annotates the error with an opaque caller-supplied code.
	SetErrorCode(code string) Error
	// ErrorCode returns the first code found on the chain, or "".
	ErrorCode() string
}

type appError struct {
	msg  string
	code string
	err  error
}

func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

func (e *appError) Unwrap() error {
	return e.err
}

func (e *appError) New(msg string) Error {
	return &appError{msg: msg, err: e}
}

func (e *appError) Msg(msg string) Error {
	return &appError{msg: msg, code: e.code, err: e}
}

func (e *appError) Err(errs ...error) Error {
	return &appError{msg: e.msg, code: e.code, err: join(e, errs)}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{msg: msg, code: e.code, err: join(e, errs)}
}

func (e *appError) SetErrorCode(code string) Error {
	return &appError{msg: e.msg, code: code, err: e}
}

func (e *appError) ErrorCode() string {
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		if ae, ok := err.(*appError); ok && ae.code != "" {
			return ae.code
		}
	}
	return ""
}

func join(parent Error, errs []error) error {
	all := make([]error, 0, len(errs)+1)
	all = append(all, parent)
	for _, err := range errs {
		if err != nil {
			all = append(all, err)
		}
	}
	return errors.Join(all...)
}
