package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogfolio/backend/internal/config"
	"blogfolio/backend/internal/httpserver"
	"blogfolio/backend/internal/infrastructure/mailer"
	"blogfolio/backend/internal/infrastructure/postgres"
	"blogfolio/backend/internal/infrastructure/storage"
	"blogfolio/backend/internal/infrastructure/token"
	authusecase "blogfolio/backend/internal/usecase/auth"
	authorusecase "blogfolio/backend/internal/usecase/author"
	blogpostusecase "blogfolio/backend/internal/usecase/blogpost"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		logger.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)

	postMailer, err := mailer.New(cfg)
	if err != nil {
		logger.Error("failed to build mailer", "error", err)
		os.Exit(1)
	}

	var images httpserver.ImageStore
	if cfg.S3AccessKey != "" {
		store, err := storage.New(rootCtx, cfg)
		if err != nil {
			logger.Error("failed to build object store", "error", err)
			os.Exit(1)
		}
		images = store
	} else {
		logger.Warn("object storage not configured, image uploads disabled")
	}

	accounts := postgres.NewAuthorRepository(db.Pool)
	posts := postgres.NewBlogpostRepository(db.Pool)

	authService := authusecase.NewService(accounts, tokenManager)
	authorService := authorusecase.NewService(accounts)
	blogpostService := blogpostusecase.NewService(posts, postMailer, logger)

	server := httpserver.NewServer(cfg, logger, authService, authorService, blogpostService, images)
	logger.Info("HTTP server listening", "addr", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}
