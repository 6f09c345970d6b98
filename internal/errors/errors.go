// Package errors provides standardized error handling for the Bundledit
// application. It defines common error types, constants, and helper functions
// for consistent error creation, wrapping, and handling across the
// application.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Format error kinds (malformed CSV structure)
	MissingHeader
	BadFieldCount
	// Parse error kinds (glossary document)
	GlossaryUnreadable
	// IO error kinds
	FileNotFound
	FileAccessDenied
	FileWriteFailed
	// Index error kinds
	PositionOutOfRange
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FormatError represents malformed CSV structure: a missing header row or a
// record whose field count does not match the header.
type FormatError struct {
	ApplicationError
	line int
}

// NewFormatError creates a new format error. line is the 1-based record
// number in the source file, or 0 when no single record is at fault.
func NewFormatError(msg string, line int, kind ErrorKind, err error) *FormatError {
	return &FormatError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		line: line,
	}
}

// Error returns the format error message
func (e *FormatError) Error() string {
	if e.line > 0 {
		if e.err != nil {
			return fmt.Sprintf("%s: line %d: %v", e.msg, e.line, e.err)
		}
		return fmt.Sprintf("%s: line %d", e.msg, e.line)
	}
	return e.ApplicationError.Error()
}

// Line returns the record number associated with the error
func (e *FormatError) Line() int {
	return e.line
}

// ParseError represents an unreadable glossary document. Malformed glossary
// lines are skipped, never reported through this type.
type ParseError struct {
	ApplicationError
	path string
}

// NewParseError creates a new parse error
func NewParseError(msg string, path string, err error) *ParseError {
	return &ParseError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: GlossaryUnreadable,
		},
		path: path,
	}
}

// Error returns the parse error message
func (e *ParseError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the glossary path associated with the error
func (e *ParseError) Path() string {
	return e.path
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// IndexError represents a table access with an out-of-range position
type IndexError struct {
	ApplicationError
	position int
	length   int
}

// NewIndexError creates a new index error
func NewIndexError(position, length int) *IndexError {
	return &IndexError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("position %d out of range [0, %d)", position, length),
			kind: PositionOutOfRange,
		},
		position: position,
		length:   length,
	}
}

// Position returns the offending position
func (e *IndexError) Position() int {
	return e.position
}

// Length returns the table length at the time of the access
func (e *IndexError) Length() int {
	return e.length
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsFormatError checks if the error is a CSV format error
func IsFormatError(err error) bool {
	var formatErr *FormatError
	return errors.As(err, &formatErr)
}

// IsParseError checks if the error is a glossary parse error
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsIOError checks if the error is a file operation error
func IsIOError(err error) bool {
	var fileErr *FileError
	return errors.As(err, &fileErr)
}

// IsIndexError checks if the error is an out-of-range table access
func IsIndexError(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr)
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}
