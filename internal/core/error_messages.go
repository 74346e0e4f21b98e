// Package core provides the business logic for the dashboard service.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. When users encounter errors, they can quote the error code to
// support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Invalid CSV: File is not a valid CSV
//	          Action: Ensure file is comma-separated with a header row
//	          Patterns: "invalid csv"
//
//	FILE002 - Invalid XLSX: File is not a readable workbook
//	          Action: Re-save the file as .xlsx and upload again
//	          Patterns: "invalid xlsx"
//
//	FILE003 - Unsupported type: File extension is not csv or xlsx
//	          Action: Upload a .csv or .xlsx file
//	          Patterns: "unsupported file type"
//
//	FILE004 - No file: No file was selected or the upload was empty
//	          Action: Please select a CSV or Excel file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - File too large: File exceeds the configured size limit
//	          Action: Split the file into smaller chunks
//	          Patterns: "request body too large", "file too large"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Unknown column: A selection references a column that does not
//	         exist or is not filterable
//	         Action: Refresh the schema and pick columns from the list
//	         Patterns: "unknown column"
//
//	VAL002 - Invalid metric: The chosen metric is not a numeric column
//	         Action: Pick a numeric column for KPIs and charts
//	         Patterns: "invalid metric"
//
//	VAL003 - Invalid date range: The date bounds could not be parsed
//	         Action: Use YYYY-MM-DD for both bounds
//	         Patterns: "invalid date"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Unknown session: The dataset session expired or never existed
//	         Action: Upload your file again to start a new session
//	         Patterns: "unknown session", "session expired"
//
//	SES002 - Session limit: Too many datasets are loaded right now
//	         Action: Try again in a few minutes
//	         Patterns: "session limit"
//
// # Chart Errors (CHT001-CHT099)
//
//	CHT001 - Chart unavailable: The dataset or filtered view lacks the
//	         columns or data points this chart needs (no date column,
//	         fewer than two numeric columns, empty group-by)
//	         Action: Pick a different chart type or widen your filters
//	         Patterns: "chart unavailable", "no groups to chart",
//	         "need at least 2"
package core

import (
	"fmt"
	"strings"
)

// UserMessage is a user-friendly error with a support code.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Patterns are matched using strings.Contains, so partial matches
// work. The first matching pattern wins, so order matters: more specific
// patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "The file is not a readable Excel workbook",
			Action:  "Re-save the file as .xlsx and upload again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL003)
	// =========================================================================
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "A selection references a column this dataset does not have",
			Action:  "Refresh the schema and pick columns from the list",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid metric",
		msg: UserMessage{
			Message: "The chosen metric is not a numeric column",
			Action:  "Pick a numeric column for KPIs and charts",
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "The date range could not be parsed",
			Action:  "Use YYYY-MM-DD for both bounds",
			Code:    "VAL003",
		},
	},

	// =========================================================================
	// Session Errors (SES001-SES002)
	// =========================================================================
	{
		pattern: "unknown session",
		msg: UserMessage{
			Message: "This dataset session has expired or never existed",
			Action:  "Upload your file again to start a new session",
			Code:    "SES001",
		},
	},
	{
		pattern: "session expired",
		msg: UserMessage{
			Message: "This dataset session has expired",
			Action:  "Upload your file again to start a new session",
			Code:    "SES001",
		},
	},
	{
		pattern: "session limit",
		msg: UserMessage{
			Message: "Too many datasets are loaded right now",
			Action:  "Try again in a few minutes",
			Code:    "SES002",
		},
	},

	// =========================================================================
	// Chart Errors (CHT001)
	// =========================================================================
	{
		pattern: "chart unavailable",
		msg: UserMessage{
			Message: "This chart is not available for the current dataset",
			Action:  "Pick a different chart type for this dataset",
			Code:    "CHT001",
		},
	},
	{
		pattern: "no groups to chart",
		msg: UserMessage{
			Message: "There is no data to chart with the current filters",
			Action:  "Widen your filters and try again",
			Code:    "CHT001",
		},
	},
	{
		pattern: "need at least 2",
		msg: UserMessage{
			Message: "There is not enough data to chart with the current filters",
			Action:  "Widen your filters and try again",
			Code:    "CHT001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Support staff should check
// application logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
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

// IsUserFacing checks if an error matches a known pattern and should be shown
// to users. Returns true if the error matches a specific pattern (not the
// generic ERR000 fallback).
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
