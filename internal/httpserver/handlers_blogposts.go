package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	authordomain "blogfolio/backend/internal/domain/author"
	blogpostdomain "blogfolio/backend/internal/domain/blogpost"
	"blogfolio/backend/internal/infrastructure/pdf"
	blogpostusecase "blogfolio/backend/internal/usecase/blogpost"
)

func (s *Server) handleBlogposts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit, offset := pageParams(r)
		posts, total, err := s.blogpostService.List(r.Context(), blogpostusecase.ListInput{
			Category: r.URL.Query().Get("category"),
			Title:    r.URL.Query().Get("title"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pageResponse{
			Success: true,
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			Items:   posts,
		})
	case http.MethodPost:
		caller, ok := s.bearerAccount(w, r)
		if !ok {
			return
		}

		var payload blogpostusecase.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		post, err := s.blogpostService.Create(r.Context(), caller, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"id":      post.ID,
		})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleBlogpostByID(w http.ResponseWriter, r *http.Request) {
	remainder := strings.Trim(strings.TrimPrefix(r.URL.Path, "/blogposts/"), "/")
	if remainder == "" {
		writeError(w, http.StatusBadRequest, "blogpost id required")
		return
	}

	segments := strings.Split(remainder, "/")
	id := strings.TrimSpace(segments[0])
	if id == "" {
		writeError(w, http.StatusBadRequest, "blogpost id required")
		return
	}

	switch {
	case len(segments) == 1:
		s.handleBlogpost(w, r, id)
	case segments[1] == "pdf" && len(segments) == 2:
		s.handleBlogpostPDF(w, r, id)
	case segments[1] == "cover" && len(segments) == 2:
		s.handleCoverUpload(w, r, id)
	case segments[1] == "like" && len(segments) == 2:
		s.handleLike(w, r, id)
	case segments[1] == "comments" && len(segments) == 2:
		s.handleComments(w, r, id)
	case segments[1] == "comments" && len(segments) == 3:
		s.handleCommentByID(w, r, id, segments[2])
	default:
		writeError(w, http.StatusNotFound, "resource not found")
	}
}

func (s *Server) handleBlogpost(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		post, err := s.blogpostService.Get(r.Context(), id)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	case http.MethodPut, http.MethodPatch:
		post, ok := s.requireOwnerOrAdmin(w, r, id)
		if !ok {
			return
		}

		var payload blogpostusecase.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		updated, err := s.blogpostService.Update(r.Context(), post.ID, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		post, ok := s.requireOwnerOrAdmin(w, r, id)
		if !ok {
			return
		}
		if err := s.blogpostService.Delete(r.Context(), post.ID); err != nil {
			s.writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

func (s *Server) handleBlogpostPDF(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	post, err := s.blogpostService.Get(r.Context(), id)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	rendered, err := pdf.Render(post)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=bp-%s.pdf", post.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered)
}

func (s *Server) handleCoverUpload(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	post, ok := s.requireOwnerOrAdmin(w, r, id)
	if !ok {
		return
	}

	url, err := s.storeImage(w, r, "cover", "blogposts/"+post.ID)
	if err != nil {
		return
	}

	updated, err := s.blogpostService.SetCover(r.Context(), post.ID, url)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("cover uploaded for %s", post.ID),
		"blogpost": updated,
	})
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request, id string) {
	caller, ok := s.bearerAccount(w, r)
	if !ok {
		return
	}

	var post *blogpostdomain.Blogpost
	var err error
	switch r.Method {
	case http.MethodPut:
		post, err = s.blogpostService.Like(r.Context(), id, caller.ID)
	case http.MethodDelete:
		post, err = s.blogpostService.Unlike(r.Context(), id, caller.ID)
	default:
		writeMethodNotAllowed(w, http.MethodPut, http.MethodDelete)
		return
	}
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"likes":   post.Likes,
	})
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		comments, err := s.blogpostService.ListComments(r.Context(), id)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	case http.MethodPost:
		if _, ok := s.bearerAccount(w, r); !ok {
			return
		}

		var payload blogpostusecase.CommentInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		comment, err := s.blogpostService.AddComment(r.Context(), id, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"comment": comment,
		})
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleCommentByID(w http.ResponseWriter, r *http.Request, id, commentID string) {
	post, ok := s.requireOwnerOrAdmin(w, r, id)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var payload blogpostusecase.CommentInput
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		comment, err := s.blogpostService.UpdateComment(r.Context(), post.ID, commentID, payload)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, comment)
	case http.MethodDelete:
		if err := s.blogpostService.DeleteComment(r.Context(), post.ID, commentID); err != nil {
			s.writeFailure(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodPut, http.MethodPatch, http.MethodDelete)
	}
}

// requireOwnerOrAdmin authenticates the caller, resolves the target post
// (404 when missing, before any authorization question), then allows admins
// and accounts referenced as the post's authors.
func (s *Server) requireOwnerOrAdmin(w http.ResponseWriter, r *http.Request, postID string) (*blogpostdomain.Blogpost, bool) {
	caller, ok := s.bearerAccount(w, r)
	if !ok {
		return nil, false
	}

	post, err := s.blogpostService.Get(r.Context(), postID)
	if err != nil {
		s.writeFailure(w, r, err)
		return nil, false
	}

	if caller.Role != authordomain.RoleAdmin && !post.OwnedBy(caller.ID) {
		writeError(w, http.StatusForbidden, "insufficient privileges for this blogpost")
		return nil, false
	}
	return post, true
}
