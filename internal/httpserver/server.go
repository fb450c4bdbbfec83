package httpserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogfolio/backend/internal/config"
	authusecase "blogfolio/backend/internal/usecase/auth"
	authorusecase "blogfolio/backend/internal/usecase/author"
	blogpostusecase "blogfolio/backend/internal/usecase/blogpost"
)

// ImageStore uploads avatar and cover images, returning a public URL.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer      *http.Server
	router          *http.ServeMux
	authService     *authusecase.Service
	authorService   *authorusecase.Service
	blogpostService *blogpostusecase.Service
	images          ImageStore
	logger          *slog.Logger
	allowedOrigins  []string
	addr            string
}

// NewServer constructs a new Server with configured dependencies. images may
// be nil when object storage is not configured; upload routes then refuse.
func NewServer(
	cfg config.Config,
	logger *slog.Logger,
	authService *authusecase.Service,
	authorService *authorusecase.Service,
	blogpostService *blogpostusecase.Service,
	images ImageStore,
) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{
		router:          mux,
		authService:     authService,
		authorService:   authorService,
		blogpostService: blogpostService,
		images:          images,
		logger:          logger,
		allowedOrigins:  cfg.AllowedOrigins,
		addr:            addr,
	}

	handler := srv.withLogging(withCORS(mux, cfg.AllowedOrigins))
	srv.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying ServeMux, mainly for tests.
func (s *Server) Router() *http.ServeMux {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) registerRoutes() {
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))

	s.router.Handle("/authors/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/authors/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/authors/checkEmail", http.HandlerFunc(s.handleCheckEmail))

	// Self-service routes authenticate with Basic credentials; everything
	// else protected uses bearer tokens. No route accepts both.
	s.router.Handle("/authors/me", s.requireBasic(http.HandlerFunc(s.handleMe)))

	s.router.Handle("/authors", s.requireToken(http.HandlerFunc(s.handleAuthors)))
	s.router.Handle("/authors/", s.requireToken(http.HandlerFunc(s.handleAuthorByID)))

	s.router.Handle("/blogposts", http.HandlerFunc(s.handleBlogposts))
	s.router.Handle("/blogposts/", http.HandlerFunc(s.handleBlogpostByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
