package core

// error_messages.go maps fatal errors to coded, user-facing messages.
//
// # Configuration Errors (CFG001)
//
//	CFG001 - Invalid configuration
//	         Action: Check the INOBAT_* variables and command-line flags
//	         Patterns: "config "
//
// # Input Errors (FILE001-FILE099)
//
//	FILE001 - Input not found: the CSV file does not exist
//	          Action: Check INOBAT_INPUT_PATH / -input
//	          Patterns: "no such file", "cannot find the file"
//
//	FILE002 - Permission denied: a file could not be opened
//	          Action: Check file and directory permissions
//	          Patterns: "permission denied", "access is denied"
//
//	FILE003 - Encoding error: the CSV is not valid UTF-8
//	          Action: Re-export as UTF-8 or run with -encoding windows-1252
//	          Patterns: "encoding error"
//
//	FILE004 - Unreadable CSV: the file could not be read as CSV
//	          Action: Check the export is ';'-separated text
//	          Patterns: "read csv"
//
// # Output Errors (OUT001-OUT099)
//
//	OUT001 - Output failed: the JSON catalog could not be written
//	         Action: Check the output directory exists and is writable
//	         Patterns: "write json"
//
//	OUT002 - SQLite export failed
//	         Action: Check the SQLite path, or unset INOBAT_SQLITE_PATH
//	         Patterns: "write sqlite"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - Cancelled: the run was interrupted before output was written
//	         Action: Start the conversion again
//	         Patterns: "context canceled"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the logged technical
// error.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come first. Permission problems are
// matched before the step patterns so that "write json: ... permission
// denied" reads as FILE002.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "config ",
		msg: UserMessage{
			Message: "Invalid configuration",
			Action:  "Check the INOBAT_* variables and command-line flags",
			Code:    "CFG001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "File not found",
			Action:  "Check INOBAT_INPUT_PATH / -input",
			Code:    "FILE001",
		},
	},
	{
		pattern: "cannot find the file",
		msg: UserMessage{
			Message: "File not found",
			Action:  "Check INOBAT_INPUT_PATH / -input",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "Permission denied",
			Action:  "Check file and directory permissions",
			Code:    "FILE002",
		},
	},
	{
		pattern: "access is denied",
		msg: UserMessage{
			Message: "Permission denied",
			Action:  "Check file and directory permissions",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The CSV file is not valid UTF-8",
			Action:  "Re-export as UTF-8 or run with -encoding windows-1252",
			Code:    "FILE003",
		},
	},
	{
		pattern: "read csv",
		msg: UserMessage{
			Message: "The file could not be read as CSV",
			Action:  "Check the export is ';'-separated text",
			Code:    "FILE004",
		},
	},
	{
		pattern: "write json",
		msg: UserMessage{
			Message: "The catalog could not be written",
			Action:  "Check the output directory exists and is writable",
			Code:    "OUT001",
		},
	},
	{
		pattern: "write sqlite",
		msg: UserMessage{
			Message: "The SQLite export failed",
			Action:  "Check the SQLite path, or unset INOBAT_SQLITE_PATH",
			Code:    "OUT002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The conversion was cancelled",
			Action:  "Start the conversion again",
			Code:    "RUN001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the generic ERR000 message is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
