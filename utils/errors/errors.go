package errors

import (
	"errors"

	"github.com/rendyfeb/logistics/constant"
)

// CustomError carries a taxonomy entry plus, for validation failures, a
// list of human-readable field messages surfaced in the response body.
type CustomError struct {
	errType constant.ErrorType
	details []string
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) Details() []string {
	return c.details
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetValidationError builds an ErrValidation carrying per-field messages.
func SetValidationError(details ...string) CustomError {
	return CustomError{
		errType: constant.ErrValidation,
		details: details,
	}
}

// IsType reports whether err is a CustomError of the given taxonomy entry.
func IsType(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	if !errors.As(err, &ce) {
		return false
	}
	return ce.errType == errorType
}
