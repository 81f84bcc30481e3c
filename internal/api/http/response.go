package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the response shape of every API endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Query   any    `json:"query,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope, logger *zap.Logger) {
	raw, err := json.Marshal(body)
	if err != nil {
		logger.Error("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeRawJSON(w, status, raw)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	writeJSON(w, status, envelope{Success: false, Error: message}, logger)
}
