package gap

import (
	"errors"
	"fmt"
)

const (
	CodeNetworkError    = "NETWORK_ERROR"
	CodeUnknown         = "UNKNOWN"
	CodeEmailNotFound   = "EMAIL_NOT_FOUND"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeUserDisabled    = "USER_DISABLED"
	CodeEmailExists     = "EMAIL_EXISTS"
	CodeInvalidEmail    = "INVALID_EMAIL"
	CodeNotAllowed      = "OPERATION_NOT_ALLOWED"
	CodeWeakPassword    = "WEAK_PASSWORD"
	CodeUnauthorized    = "UNAUTHORIZED"
)

// Error is what the gateway answers with when a call fails.
// Code is the short machine readable reason, e.g. EMAIL_NOT_FOUND.
type Error struct {
	Status int
	Code   string
	Cause  error
}

func (v *Error) Error() string {
	if v.Cause != nil {
		return fmt.Sprintf("gateway: %s: %v", v.Code, v.Cause)
	}
	if v.Status > 0 {
		return fmt.Sprintf("gateway: %s (status %d)", v.Code, v.Status)
	}
	return fmt.Sprintf("gateway: %s", v.Code)
}

func (v *Error) Unwrap() error {
	return v.Cause
}

// CodeOf returns the gateway code carried by err, or CodeUnknown.
func CodeOf(err error) string {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return CodeUnknown
}
