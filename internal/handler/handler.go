// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cdmstr-kev/news-explorer-backend/internal/handler/dto"
	"github.com/cdmstr-kev/news-explorer-backend/internal/service"
)

// Handler wraps application dependencies for catch-all HTTP handlers.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// NotFound handles 404 responses for unrouted paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Requested resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		_ = err
	}
}

// writeError writes the uniform error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.MessageResponse{Message: message})
}

// handleServiceError is the single funnel mapping service errors onto the
// HTTP status taxonomy. Anything unrecognized collapses to a generic 500;
// the full error stays in the log only.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, service.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect email or password")
	case errors.Is(err, service.ErrNotArticleOwner):
		writeError(w, http.StatusForbidden, "You cannot delete this article!")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrArticleNotFound):
		writeError(w, http.StatusNotFound, "Article not found")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "Email already exists")
	default:
		logger.Error("unhandled service error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "An error occurred on the server")
	}
}

// validationMessage strips the sentinel prefix so the client sees only the
// per-field detail.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, service.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
