package core

import (
	"errors"
	"fmt"
)

// Request-level failures. Row problems are never reported through these.
var (
	ErrNoFile            = errors.New("no file provided")
	ErrEmptyFile         = errors.New("empty file")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
)

// decodeGuidance is appended to every DecodeError shown to users.
const decodeGuidance = "Failed to read Excel file. Ensure it is a valid .xlsx file, saved without merged cells or complex formatting. Try saving as .xlsx from Excel."

// DecodeError means the upload could not be read as a spreadsheet at all.
// It is fatal to the request and maps to a client error.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return decodeGuidance
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying codec error for logs.
func (e *DecodeError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return fmt.Sprintf("decode %q: %v", e.Filename, e.Err)
}

// NewDecodeError wraps a codec failure for filename.
func NewDecodeError(filename string, err error) *DecodeError {
	return &DecodeError{Filename: filename, Err: err}
}

// WriteFailure means an output artifact could not be produced or stored.
// It is fatal to the request and maps to a server error.
type WriteFailure struct {
	Op  string // "encode", "create temp file", ...
	Err error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("write failure (%s): %v", e.Op, e.Err)
}

func (e *WriteFailure) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsWriteFailure reports whether err is, or wraps, a *WriteFailure.
func IsWriteFailure(err error) bool {
	var wf *WriteFailure
	return errors.As(err, &wf)
}
