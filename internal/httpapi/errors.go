package httpapi

import (
	"encoding/json"
	"net/http"

	"chatbotd/pkg/types"
)

// Fixed response messages; these are part of the public contract and must not
// carry server-side detail.
const (
	msgInvalidJSON = "Invalid JSON or missing request body."
	msgNoMessage   = "No message provided"
	msgUnavailable = "The chatbot model is not available. Check server logs."
	msgInternal    = "An internal server error occurred while generating a response."
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}
