package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LavaJover/justwatch-proxy/internal/delivery/http/dto/proxy/response"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, errText, message string) {
	writeJSON(w, status, response.ErrorResponse{Error: errText, Message: message})
}

// writeRaw writes an upstream body untouched.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
