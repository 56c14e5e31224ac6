package web

// errors.go maps technical errors onto user-facing responses. The full
// error is logged with the request ID; the client sees a short message,
// a suggested action, and a support code.

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tomysaman/csvloader/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
	Code   string `json:"code"`
}

// errorPattern pairs a substring of a technical error with its response.
type errorPattern struct {
	pattern string
	resp    ErrorResponse
}

// errorPatterns is matched case-insensitively, first match wins, so more
// specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "no file provided",
		resp: ErrorResponse{
			Error:  "No CSV source was provided",
			Action: "Upload a file, or send inline CSV in the text field",
			Code:   "SRC001",
		},
	},
	{
		pattern: "read csv file",
		resp: ErrorResponse{
			Error:  "The CSV file could not be read",
			Action: "Check that the path exists and is readable",
			Code:   "SRC002",
		},
	},
	{
		pattern: "request body too large",
		resp: ErrorResponse{
			Error:  "The request body exceeds the size limit",
			Action: "Split the file into smaller chunks",
			Code:   "SRC003",
		},
	},
	{
		pattern: "unsupported encoding",
		resp: ErrorResponse{
			Error:  "The requested character encoding is not supported",
			Action: "Use utf-8, latin1, windows-1251, or windows-1252",
			Code:   "ENC001",
		},
	},
	{
		pattern: "decode",
		resp: ErrorResponse{
			Error:  "The file could not be decoded with the requested encoding",
			Action: "Check the encoding parameter against the file contents",
			Code:   "ENC002",
		},
	},
	{
		pattern: "unknown output format",
		resp: ErrorResponse{
			Error:  "Unknown output format",
			Action: "Use records, table, json, or csv",
			Code:   "FMT001",
		},
	},
	{
		pattern: "delimiter",
		resp: ErrorResponse{
			Error:  "The delimiter must be a single character",
			Action: `Use one character, or "tab" for tab-separated input`,
			Code:   "FMT002",
		},
	},
	{
		pattern: "unknown profile",
		resp: ErrorResponse{
			Error:  "Unknown parse profile",
			Action: "List configured profiles at /api/profiles",
			Code:   "PRF001",
		},
	},
	{
		pattern: "invalid row limit",
		resp: ErrorResponse{
			Error:  "The row limit must be an integer",
			Action: "Pass a whole number, or a value <= 0 for unlimited",
			Code:   "FMT003",
		},
	},
	{
		pattern: "context canceled",
		resp: ErrorResponse{
			Error:  "The request was cancelled",
			Action: "Please try again",
			Code:   "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		resp: ErrorResponse{
			Error:  "The request timed out",
			Action: "Try a smaller file or a row limit",
			Code:   "REQ002",
		},
	},
	{
		pattern: "rate limit",
		resp: ErrorResponse{
			Error:  "Too many requests",
			Action: "Wait a moment before trying again",
			Code:   "RATE001",
		},
	},
}

// defaultError is the fallback when no pattern matches. Support staff
// should check the logs for the original error when users report ERR000.
var defaultError = ErrorResponse{
	Error:  "An unexpected error occurred",
	Action: "Please try again or contact support",
	Code:   "ERR000",
}

// mapError converts a technical error into its user-facing response.
func mapError(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{}
	}

	msg := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(msg, ep.pattern) {
			return ep.resp
		}
	}
	return defaultError
}

// respondError logs the technical error with request context and writes
// the mapped user-facing response.
func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := mapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
