package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"blogapi/internal/auth"
	"blogapi/internal/comments"
	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/events"
	"blogapi/internal/httpx"
	"blogapi/internal/likes"
	"blogapi/internal/logger"
	"blogapi/internal/posts"
	"blogapi/internal/server"
	"blogapi/internal/storage"
	"blogapi/internal/storage/inmemory"
	"blogapi/internal/storage/postgres"
)

func main() {
	storageFlag := flag.String("storage", "", "storage backend (postgres or memory); overrides STORAGE")
	issueToken := flag.Int64("issue-token", 0, "print a bearer token for the given user id and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of a token printed by -issue-token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *storageFlag != "" {
		cfg.Storage = strings.ToLower(*storageFlag)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if *issueToken > 0 {
		token, err := auth.IssueToken([]byte(cfg.Auth.JWTSecret), *issueToken, *tokenTTL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	logger.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("Service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	publisher := newPublisher(cfg.Kafka, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close event publisher", slog.String("error", err.Error()))
		}
	}()

	pager := httpx.Pager{
		DefaultPerPage: cfg.Pagination.DefaultPerPage,
		MaxPerPage:     cfg.Pagination.MaxPerPage,
	}
	strict := cfg.Auth.StrictIdentity

	handlers := server.Handlers{
		Posts:    posts.NewHandler(posts.NewService(store, store, publisher, log), pager, log),
		Comments: comments.NewHandler(comments.NewService(store, publisher, log, strict), log),
		Likes:    likes.NewHandler(likes.NewService(store, publisher, log, strict), log),
	}

	// A nil interface keeps /health from probing a database that is not there.
	var health server.HealthChecker
	if db != nil {
		health = db
	}
	apiServer := server.New(cfg.HTTP, []byte(cfg.Auth.JWTSecret), log, health, handlers).HTTPServer()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Blog API listening",
			slog.String("addr", apiServer.Addr),
			slog.String("storage", cfg.Storage),
			slog.Bool("strict_identity", strict),
		)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Graceful shutdown complete")
	return nil
}

// openStore builds the configured backend. db is nil for the memory store.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, database.Service, error) {
	if cfg.Storage == config.StorageMemory {
		store := inmemory.New()
		if err := store.SeedDemo(ctx); err != nil {
			return nil, nil, err
		}
		log.Warn("Using in-memory storage with demo data; nothing is persisted")
		return store, nil, nil
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.URL, log); err != nil {
			return nil, nil, err
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := database.New(connectCtx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Database connected", slog.Int("max_conns", int(cfg.Database.MaxConns)))

	return postgres.New(db), db, nil
}

func newPublisher(cfg config.KafkaConfig, log *slog.Logger) events.Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info("No Kafka brokers configured; activity events are discarded")
		return events.Noop{}
	}
	return events.NewProducer(events.Config{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		WriteTimeout: cfg.WriteTimeout,
	}, log)
}
