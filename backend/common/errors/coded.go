package errors

import "errors"

// CodedError carries a stable machine-readable code next to the human message.
// Handlers match on the code to pick an HTTP status.
type CodedError struct {
	Code string
	Msg  string
	Err  error
}

func (e *CodedError) Error() string {
	return e.Msg
}

func (e *CodedError) ErrorCode() string {
	return e.Code
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// New creates a coded error with the given message.
func New(code string, msg string) *CodedError {
	return &CodedError{
		Code: code,
		Msg:  msg,
		Err:  errors.New(msg),
	}
}

// Wrap attaches a code and message to an existing error.
func Wrap(err error, code string, msg string) *CodedError {
	return &CodedError{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code string) bool {
	var codedErr *CodedError
	if errors.As(err, &codedErr) {
		return codedErr.Code == code
	}
	return false
}
