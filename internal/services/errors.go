package services

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures of POS operations.
type ErrorCode int

const (
	CodeInternal ErrorCode = iota
	CodeValidation
	CodeNotFound
	CodeEmptyOrder
	CodeFormat
)

func (c ErrorCode) String() string {
	switch c {
	case CodeValidation:
		return "VALIDATION"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeEmptyOrder:
		return "EMPTY_ORDER"
	case CodeFormat:
		return "FORMAT"
	default:
		return "INTERNAL"
	}
}

// POSError is a failure the user can act on.
type POSError struct {
	Code    ErrorCode
	Message string
}

func (e *POSError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a missing or invalid field on add or edit.
func NewValidationError(message string) *POSError {
	return &POSError{Code: CodeValidation, Message: message}
}

func NewNotFoundError(format string, args ...interface{}) *POSError {
	return &POSError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewEmptyOrderError reports an attempt to complete or print an order without lines.
func NewEmptyOrderError(message string) *POSError {
	return &POSError{Code: CodeEmptyOrder, Message: message}
}

// NewFormatError reports imported data that is not a JSON array of menu items.
func NewFormatError(format string, args ...interface{}) *POSError {
	return &POSError{Code: CodeFormat, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first POSError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var posErr *POSError
	if errors.As(err, &posErr) {
		return posErr.Code
	}
	return CodeInternal
}

func IsValidation(err error) bool { return CodeOf(err) == CodeValidation }
func IsNotFound(err error) bool   { return CodeOf(err) == CodeNotFound }
func IsEmptyOrder(err error) bool { return CodeOf(err) == CodeEmptyOrder }
func IsFormat(err error) bool     { return CodeOf(err) == CodeFormat }
