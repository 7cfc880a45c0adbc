package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the {"error": msg} body middleware rejections use,
// matching the handlers' error envelope.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
