package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// successEnvelope wraps chart and market payloads so clients can branch
// on a single success flag.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope is the failure counterpart of successEnvelope.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// respondSuccess sends data wrapped in the success envelope
func respondSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	respondJSON(w, successEnvelope{Success: true, Data: data}, statusCode)
}

// respondFailure sends an error wrapped in the failure envelope
func respondFailure(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, errorEnvelope{Success: false, Error: message}, statusCode)
}
