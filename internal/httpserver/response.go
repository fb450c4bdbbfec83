package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	authordomain "blogfolio/backend/internal/domain/author"
	blogpostdomain "blogfolio/backend/internal/domain/blogpost"
	"blogfolio/backend/internal/domain/validation"
)

// failureResponse is the error envelope for every non-2xx reply.
type failureResponse struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	ErrorsList []string `json:"errorsList,omitempty"`
}

// pageResponse is the envelope for paginated listings.
type pageResponse struct {
	Success bool `json:"success"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Items   any  `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Message: message})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeFailure maps a use-case error onto the error taxonomy: 400 with an
// errorsList for validation, 401/403/404/409 for the specific kinds, and a
// fixed generic 500 otherwise. Internal causes are logged, never echoed.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, failureResponse{
			Message:    "errors during validation",
			ErrorsList: verr.Violations,
		})
	case errors.Is(err, authordomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, authordomain.ErrTokenInvalid):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, authordomain.ErrEmailExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, authordomain.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authordomain.ErrNotFound),
		errors.Is(err, blogpostdomain.ErrNotFound),
		errors.Is(err, blogpostdomain.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
