package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/ResumeAPI/internal/adapter"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		// headers are already sent
		logger_i.NewLogger("ResponseWriter").Error("Error encoding response", "error", err)
	}
}

func validateContext(ctx context.Context, log *logger_i.Logger) bool {
	if err := ctx.Err(); err != nil {
		log.Warn("context error", "error", err)
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(message, httpCode))
}
