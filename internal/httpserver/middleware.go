package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	authordomain "blogfolio/backend/internal/domain/author"
)

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)
		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", recorder.size,
			"duration", time.Since(start),
		)
	})
}

func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && isOriginAllowed(origin, allowedOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == "*" {
			return true
		}
		if strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}

type ctxKeyAccount struct{}

// requireToken authenticates the request from a bearer token and attaches
// the resolved account to the context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := s.bearerAccount(w, r)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyAccount{}, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireBasic authenticates the request from Basic email:password
// credentials. An unknown email and a wrong password produce the same 401.
func (s *Server) requireBasic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			writeError(w, http.StatusUnauthorized, "basic credentials required")
			return
		}

		account, err := s.authService.VerifyBasic(r.Context(), authordomain.Credentials{
			Email:    email,
			Password: password,
		})
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAccount{}, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerAccount resolves the caller from the Authorization header, writing
// a 401 when the header is missing or the token does not verify.
func (s *Server) bearerAccount(w http.ResponseWriter, r *http.Request) (*authordomain.Account, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return nil, false
	}

	account, err := s.authService.VerifyToken(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}
	return account, true
}

func currentAccountFromContext(ctx context.Context) (*authordomain.Account, bool) {
	account, ok := ctx.Value(ctxKeyAccount{}).(*authordomain.Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}

// requireAdmin allows only callers whose resolved identity carries the admin
// role. The role always comes from the authenticated account, never from
// request input.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	account, ok := currentAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if account.Role != authordomain.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin privileges required")
		return false
	}
	return true
}

// requireSelfOrAdmin allows the target account itself or an admin. The
// target is resolved first, so a missing account yields 404 regardless of
// the caller's role.
func (s *Server) requireSelfOrAdmin(w http.ResponseWriter, r *http.Request, targetID string) (*authordomain.Account, bool) {
	caller, ok := currentAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	target, err := s.authorService.Get(r.Context(), targetID)
	if err != nil {
		s.writeFailure(w, r, err)
		return nil, false
	}

	if caller.Role != authordomain.RoleAdmin && caller.ID != target.ID {
		writeError(w, http.StatusForbidden, "insufficient privileges for this account")
		return nil, false
	}
	return target, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
