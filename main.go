package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/quickly-rate/cliparse"
	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/logging"
	"github.com/danielhkuo/quickly-rate/middleware"
	"github.com/danielhkuo/quickly-rate/router"
	"github.com/danielhkuo/quickly-rate/stream"
	"github.com/danielhkuo/quickly-rate/submission"
	"github.com/danielhkuo/quickly-rate/submission/mongostore"
	"github.com/danielhkuo/quickly-rate/submission/postgrest"
	"github.com/danielhkuo/quickly-rate/submission/sqlstore"
	"github.com/danielhkuo/quickly-rate/survey"
)

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	_, logCloser := logging.Init(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	}, slog.String("location_id", cfg.LocationID))
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect the response table
	client, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("submission backend unavailable", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()
	slog.Info("submission backend ready", "backend", cfg.Backend, "table", cfg.Table)

	ctrl := survey.New(survey.Config{
		LocationID:      cfg.LocationID,
		SkipDetail:      cfg.SkipDetail,
		TransitionDelay: cfg.TransitionDelay,
		ThanksDelay:     cfg.ThanksDelay,
		SubmitTimeout:   cfg.SubmitTimeout,
		Locale:          cfg.Locale,
	}, client)
	defer ctrl.Close()

	hub := stream.NewHub(ctrl.View)
	go hub.Run(ctx)
	unsubscribe := ctrl.Subscribe(hub.Publish)
	defer unsubscribe()

	// Create server
	server := http.Server{
		Handler: middleware.CORS(router.NewRouter(ctrl, hub, cfg)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "skip_detail", cfg.SkipDetail, "locale", cfg.Locale)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openBackend builds the submission client for cfg.Backend. The returned
// func releases its connection.
func openBackend(ctx context.Context, cfg cliparse.Config) (submission.Client, func(), error) {
	switch cfg.Backend {
	case cliparse.BackendSupabase:
		client := postgrest.New(postgrest.Config{
			URL:     cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Table:   cfg.Table,
			Timeout: cfg.SubmitTimeout,
		})
		return client, func() {}, nil

	case cliparse.BackendPostgres, cliparse.BackendSQLite:
		dialect := db.Postgres
		if cfg.Backend == cliparse.BackendSQLite {
			dialect = db.SQLite
		}
		conn, err := db.Open(dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateSchema(conn, cfg.Table); err != nil {
			conn.Close()
			return nil, nil, err
		}
		store, err := sqlstore.New(conn, dialect, cfg.Table)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, func() { conn.Close() }, nil

	case cliparse.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.SubmitTimeout)
		defer cancel()
		store, err := mongostore.Connect(connectCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			store.Close(closeCtx)
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown submission backend %q", cfg.Backend)
}
