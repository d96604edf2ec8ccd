package errors

import (
	"errors"
	"fmt"
)

// Standard library helpers re-exported so callers need only one errors import
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// codedError is the Error implementation. Values are immutable; the With*
// methods return modified copies.
type codedError struct {
	code ErrorCode
	msg  string
	data any
	err  error
}

func (e *codedError) Error() string {
	msg := e.msg
	if msg == "" {
		msg = GetErrorMessage(e.code)
	}

	switch {
	case e.data != nil:
		return fmt.Sprintf("%s: %v", msg, e.data)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", msg, e.err)
	default:
		return msg
	}
}

func (e *codedError) Code() ErrorCode {
	return e.code
}

func (e *codedError) WithMessage(msg string) Error {
	clone := *e
	clone.msg = msg

	return &clone
}

func (e *codedError) WithData(data any) Error {
	clone := *e
	clone.data = data

	return &clone
}

func (e *codedError) Unwrap() error {
	return e.err
}

type factory struct{}

// New creates a Factory instance for error creation
func New() Factory {
	return factory{}
}

func (factory) New(code ErrorCode) Error {
	return &codedError{code: code}
}

func (factory) Wrap(code ErrorCode, err error) Error {
	return &codedError{code: code, err: err}
}

func (factory) WithMessage(code ErrorCode, msg string) Error {
	return &codedError{code: code, msg: msg}
}

func (factory) WithData(code ErrorCode, data any) Error {
	return &codedError{code: code, data: data}
}
