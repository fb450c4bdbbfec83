package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	authordomain "blogfolio/backend/internal/domain/author"
	authusecase "blogfolio/backend/internal/usecase/auth"
	authorusecase "blogfolio/backend/internal/usecase/author"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload authusecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	account, err := s.authService.Register(r.Context(), payload)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      account.ID,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, account, err := s.authService.Login(r.Context(), authordomain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"author":  account,
	})
}

func (s *Server) handleCheckEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Email) == "" {
		writeError(w, http.StatusBadRequest, "no email to check provided")
		return
	}

	taken, err := s.authService.EmailTaken(r.Context(), payload.Email)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"unavailable": taken})
}

// handleMe serves the Basic-credential self-service routes. Identity and
// ownership were already resolved together by the middleware.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	account, ok := currentAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "author": account})
	case http.MethodPut, http.MethodPatch:
		var payload authorusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
		if payload.Role != nil {
			writeError(w, http.StatusForbidden, "insufficient privileges to change role")
			return
		}

		updated, err := s.authorService.Update(r.Context(), account.ID, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "author": updated})
	case http.MethodDelete:
		if err := s.authorService.Delete(r.Context(), account.ID); err != nil {
			s.writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	limit, offset := pageParams(r)
	accounts, total, err := s.authorService.List(r.Context(), limit, offset)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Success: true,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		Items:   accounts,
	})
}

func (s *Server) handleAuthorByID(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/authors/"), "/")
	if remainder == "" {
		writeError(w, http.StatusBadRequest, "author id required")
		return
	}

	segments := strings.Split(remainder, "/")
	id := strings.TrimSpace(segments[0])
	if id == "" {
		writeError(w, http.StatusBadRequest, "author id required")
		return
	}

	if len(segments) > 1 {
		if segments[1] == "avatar" && len(segments) == 2 {
			s.handleAvatarUpload(w, r, id)
			return
		}
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	target, ok := s.requireSelfOrAdmin(w, r, id)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, target)
	case http.MethodPut, http.MethodPatch:
		var payload authorusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		// Only admins may grant or revoke roles.
		if payload.Role != nil {
			caller, _ := currentAccountFromContext(r.Context())
			if caller == nil || caller.Role != authordomain.RoleAdmin {
				writeError(w, http.StatusForbidden, "insufficient privileges to change role")
				return
			}
		}

		updated, err := s.authorService.Update(r.Context(), target.ID, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.authorService.Delete(r.Context(), target.ID); err != nil {
			s.writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleAvatarUpload(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	target, ok := s.requireSelfOrAdmin(w, r, id)
	if !ok {
		return
	}

	url, err := s.storeImage(w, r, "avatar", "authors/"+target.ID)
	if err != nil {
		return
	}

	updated, err := s.authorService.SetAvatar(r.Context(), target.ID, url)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("avatar uploaded for %s", target.ID),
		"author":  updated,
	})
}

// storeImage reads a multipart upload and writes it to the object store.
// On failure the response has already been written and a sentinel error is
// returned so callers just bail out.
func (s *Server) storeImage(w http.ResponseWriter, r *http.Request, field, keyPrefix string) (string, error) {
	if s.images == nil {
		writeError(w, http.StatusServiceUnavailable, "image uploads are not configured")
		return "", fmt.Errorf("image store not configured")
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "multipart form with an image file required")
		return "", err
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file field %q required", field))
		return "", err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := keyPrefix + strings.ToLower(filepath.Ext(header.Filename))
	url, err := s.images.Upload(r.Context(), key, contentType, file)
	if err != nil {
		s.writeFailure(w, r, err)
		return "", err
	}
	return url, nil
}

func pageParams(r *http.Request) (limit, offset int) {
	limit = 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
