package files

import (
	"errors"
	"fmt"
)

// ErrorKind classifies file backend failures.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindExtraction ErrorKind = "extraction"
	KindIO         ErrorKind = "io"
)

// Error is a file backend error with its kind and, for missing files, the
// closest existing names.
type Error struct {
	Kind        ErrorKind
	Message     string
	Err         error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func validationError(message string) *Error {
	return newError(KindValidation, message, nil)
}

func ioError(message string, err error) *Error {
	return newError(KindIO, message, err)
}

func extractionError(message string, err error) *Error {
	return newError(KindExtraction, message, err)
}

// KindOf returns the kind of err, or KindIO for errors from elsewhere.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindIO
}
