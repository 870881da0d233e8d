package core

// error_messages.go maps request-level failures to user-facing messages
// with support codes. Row-level problems are not handled here; they travel
// as ValidationError values in the Summary.
//
// Codes:
//
//	FILE001 - File too large           (pattern "file too large", "request body too large")
//	FILE002 - Not a readable workbook  (*DecodeError)
//	FILE003 - Unsupported format       (ErrUnsupportedFormat)
//	FILE004 - No file selected         (ErrNoFile, pattern "no file provided")
//	FILE005 - Empty file               (ErrEmptyFile, pattern "empty file")
//	OUT001  - Output could not be written (*WriteFailure)
//	UPL002  - System busy              (ErrTooManyUploads)
//	UPL004  - Request cancelled        (pattern "context canceled")
//	UPL005  - Request timed out        (pattern "context deadline exceeded")
//	RATE001 - Rate limited             (pattern "rate limit")
//	ERR000  - Anything else
//
// Typed errors are checked with errors.Is/As before falling back to
// case-insensitive substring patterns. The first match wins.

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
	Status  int    // HTTP status the transport should use
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the contact list into smaller files",
		Code:    "FILE001",
		Status:  http.StatusRequestEntityTooLarge,
	}
	msgDecode = UserMessage{
		Message: decodeGuidance,
		Action:  "Re-save the sheet as .xlsx with names in column A and phones in column B",
		Code:    "FILE002",
		Status:  http.StatusBadRequest,
	}
	msgUnsupported = UserMessage{
		Message: "This file type is not supported",
		Action:  "Upload an .xlsx or .csv file",
		Code:    "FILE003",
		Status:  http.StatusBadRequest,
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a spreadsheet to upload",
		Code:    "FILE004",
		Status:  http.StatusBadRequest,
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a spreadsheet with contact rows",
		Code:    "FILE005",
		Status:  http.StatusBadRequest,
	}
	msgWriteFailure = UserMessage{
		Message: "The cleaned file could not be generated",
		Action:  "Please try again or contact support",
		Code:    "OUT001",
		Status:  http.StatusInternalServerError,
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
		Status:  http.StatusServiceUnavailable,
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
		Status:  http.StatusBadRequest,
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try uploading a smaller file or check your connection",
		Code:    "UPL005",
		Status:  http.StatusGatewayTimeout,
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
		Status:  http.StatusTooManyRequests,
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches errors that arrive as plain text (from net/http,
// context, or third-party codecs) rather than as typed errors.
var errorPatterns = []errorPattern{
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "request body too large", msg: msgFileTooLarge},
	{pattern: "no file provided", msg: msgNoFile},
	{pattern: "empty file", msg: msgEmptyFile},
	{pattern: "unsupported spreadsheet format", msg: msgUnsupported},
	{pattern: "too many concurrent uploads", msg: msgBusy},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{pattern: "rate limit", msg: msgRateLimited},
}

// defaultMessage is returned when nothing matches (ERR000). Support staff
// should check the logs for the technical error behind it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
	Status:  http.StatusInternalServerError,
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		de *DecodeError
		wf *WriteFailure
		mb *http.MaxBytesError
	)
	switch {
	case errors.As(err, &de):
		return msgDecode
	case errors.As(err, &wf):
		return msgWriteFailure
	case errors.As(err, &mb):
		return msgFileTooLarge
	case errors.Is(err, ErrNoFile):
		return msgNoFile
	case errors.Is(err, ErrEmptyFile):
		return msgEmptyFile
	case errors.Is(err, ErrUnsupportedFormat):
		return msgUnsupported
	case errors.Is(err, ErrTooManyUploads):
		return msgBusy
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
