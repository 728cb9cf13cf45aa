package response

import (
	"encoding/json"
	"net/http"
)

// MsgInternalError is the only text a client sees for an unexpected failure
const MsgInternalError = "Terjadi kesalahan. Silakan coba lagi."

// Response represents a standard API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Write sends v as the JSON body
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(v)
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	Write(w, status, Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Response{
		Success: false,
		Message: message,
	})
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// List sends a 200 OK response with data and its element count
func List[T any](w http.ResponseWriter, items []T) {
	count := len(items)
	if items == nil {
		items = []T{}
	}
	Write(w, http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    items,
	})
}

// Message sends a 200 OK response carrying only a message
func Message(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 Method Not Allowed response
func MethodNotAllowed(w http.ResponseWriter, message string) {
	Error(w, http.StatusMethodNotAllowed, message)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}

// ServiceUnavailable sends a 503 Service Unavailable response
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, message)
}
