package resp

import (
	"encoding/json"
	"net/http"
)

// Success handles success responses.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode handles success responses with custom status code.
// A string payload is written as {"message": ...}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	var result any = map[string]any{"message": "ok"}

	if len(data) > 0 && data[0] != nil {
		if msg, ok := data[0].(string); ok {
			result = map[string]any{"message": msg}
		} else {
			result = data[0]
		}
	}

	writeJSON(w, statusCode, result)
}

// writeJSON writes res as JSON with the given status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
