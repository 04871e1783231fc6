// Package web2md converts the rendered HTML of a web page into a clean
// Markdown document, preserving headings, emphasis, links, images, code
// blocks and tables.
//
// This package contains domain types, interfaces and pure string logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// rod/, sqlite/).
package web2md

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONTENTNOTFOUND = "content_not_found"
	ECONVERSION      = "conversion_failed"
	EDOWNLOAD        = "download_failed"
	ECLIPBOARD       = "clipboard_failed"
	EINVALID         = "invalid"
	ENOTFOUND        = "not_found"
	EINTERNAL        = "internal"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("web2md error: code=%s message=%s", e.Code, e.Message)
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
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
