// Package errors defines the coded error type shared by the market services.
//
// Every failure a customer or administrator can trigger carries a Code, so the
// shell can render a message and carry on without string matching:
//
//	if pkgerrors.Is(err, pkgerrors.CodeInsufficientStock) { ... }
package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInsufficientStock  Code = "INSUFFICIENT_STOCK"
	CodeInvalidQuantity    Code = "INVALID_QUANTITY"
	CodeDuplicate          Code = "DUPLICATE"
	CodeInvalidIdentity    Code = "INVALID_IDENTITY"
	CodeLastAdminProtected Code = "LAST_ADMIN_PROTECTED"
	CodeEmptyCart          Code = "EMPTY_CART"
	CodeProductInCart      Code = "PRODUCT_IN_CART"
	CodeCorruptState       Code = "CORRUPT_STATE"
	CodeInternal           Code = "INTERNAL_ERROR"
)

// Recoverable reports whether the session loop can continue after an error
// with this code. Only unreadable persisted state is fatal.
func (c Code) Recoverable() bool {
	switch c {
	case CodeCorruptState, CodeInternal:
		return false
	default:
		return true
	}
}

type Error struct {
	code    Code
	message string
	details map[string]any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Details returns the structured context attached with WithDetail.
func (e *Error) Details() map[string]any {
	if e == nil {
		return nil
	}
	return e.details
}

// Detail returns a single detail value.
func (e *Error) Detail(key string) (any, bool) {
	if e == nil || e.details == nil {
		return nil, false
	}
	v, ok := e.details[key]
	return v, ok
}

func (e *Error) WithDetail(key string, value any) *Error {
	if e == nil {
		return nil
	}
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// Is reports whether err, or anything it wraps, is an *Error with code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}

// CodeOf returns the code of err, CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.code
	}
	return CodeInternal
}
