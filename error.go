package repurpose

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID       = "invalid"
	ENOTFOUND      = "not_found"
	EINTERNAL      = "internal"
	EUNSUPPORTED   = "unsupported"
	ENETWORK       = "network"
	ETIMEOUT       = "timeout"
	EMALFORMED     = "malformed"
	EUNAVAILABLE   = "unavailable"
	EUNAUTHORIZED  = "unauthorized"
	EUNPROCESSABLE = "unprocessable"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("repurpose error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the error text as-is.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
