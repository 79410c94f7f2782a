package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform success envelope
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK writes a success envelope with optional data and message
func OK(w http.ResponseWriter, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Envelope{
		Status:  "ok",
		Data:    data,
		Message: message,
	})
}
