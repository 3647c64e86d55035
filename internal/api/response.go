package api

import (
	"encoding/json"
	"net/http"

	"github.com/zapponejosh/almanac-api/internal/calendar"
)

// Response represents a standard API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Error codes carried in ErrorInfo.Code.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeInvalidInput = "INVALID_INPUT"
	CodeOutOfRange   = "OUT_OF_RANGE"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeUnhealthy    = "HEALTH_CHECK_FAILED"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, CodeBadRequest)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, CodeInternal)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

// rangeDetails is attached to OUT_OF_RANGE errors so clients can see what
// the server supports.
type rangeDetails struct {
	What  string `json:"what"`
	Value string `json:"value"`
	Min   string `json:"min"`
	Max   string `json:"max"`
}

// writeCalendarError maps engine errors onto the envelope. It reports false
// when err is neither an input nor a range error, leaving the caller to
// treat it as internal.
func writeCalendarError(w http.ResponseWriter, err error) bool {
	switch {
	case calendar.IsInvalidInput(err):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		return true
	case calendar.IsOutOfRange(err):
		info := ErrorInfo{Message: err.Error(), Code: CodeOutOfRange}
		if re, ok := calendar.AsRangeError(err); ok {
			info.Details = rangeDetails{What: re.What, Value: re.Value, Min: re.Min, Max: re.Max}
		}
		WriteJSON(w, http.StatusUnprocessableEntity, Response{Error: &info})
		return true
	}
	return false
}
