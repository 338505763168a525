package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rectangle-technologies/jewellery-admin/internal/backend"
	"github.com/rectangle-technologies/jewellery-admin/internal/config"
	"github.com/rectangle-technologies/jewellery-admin/internal/db"
	"github.com/rectangle-technologies/jewellery-admin/internal/session"
	"github.com/rectangle-technologies/jewellery-admin/internal/store"
	"github.com/rectangle-technologies/jewellery-admin/internal/web"
)

// splitHandler sends ERROR records to one handler and everything else (at
// INFO and above) to another.
type splitHandler struct {
	info slog.Handler
	err  slog.Handler
}

func (h splitHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (h splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.err.Handle(ctx, r)
	}
	return h.info.Handle(ctx, r)
}

func (h splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{info: h.info.WithAttrs(attrs), err: h.err.WithAttrs(attrs)}
}

func (h splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{info: h.info.WithGroup(name), err: h.err.WithGroup(name)}
}

// initLogging installs the default logger: INFO/WARN on stdout, ERROR on
// stderr, everything duplicated into logPath when one is given. The
// returned function closes the log file.
func initLogging(logPath string) (func(), error) {
	infoW := io.Writer(os.Stdout)
	errW := io.Writer(os.Stderr)

	var closeFn func()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFn = func() { f.Close() }
		infoW = io.MultiWriter(infoW, f)
		errW = io.MultiWriter(errW, f)
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(splitHandler{
		info: slog.NewTextHandler(infoW, opts),
		err:  slog.NewTextHandler(errW, opts),
	}))
	return closeFn, nil
}

func main() {
	cfg := config.Load()

	fs := flag.NewFlagSet("jewellery-admin", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", cfg.DBPath, "")
	fs.StringVar(&dbPath, "d", cfg.DBPath, "")

	var addr string
	fs.StringVar(&addr, "addr", cfg.Addr, "")
	fs.StringVar(&addr, "a", cfg.Addr, "")

	var backendURL string
	fs.StringVar(&backendURL, "backend", cfg.BackendURL, "")
	fs.StringVar(&backendURL, "b", cfg.BackendURL, "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: jewellery-admin [flags]

Flags are read from the environment (or a .env file) first; command-line
flags override them.

Flags:
  -d, -db <path>          SQLite state database path (default: dashboard.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -b, -backend <url>      shop backend base URL (default: http://localhost:3000)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := initLogging(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open the local state database (cookie secret, order drafts).
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	// Drafts of expired sessions can never be resumed; clear them out.
	if n, err := store.PruneStaleDrafts(context.Background(), database, session.Expiry); err != nil {
		slog.Warn("failed to prune stale drafts", "error", err)
	} else if n > 0 {
		slog.Info("pruned stale order drafts", "count", n)
	}

	// Load cookie signing secret from the database (auto-generated on first run).
	secret, err := store.GetCookieSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get cookie secret", "error", err)
		os.Exit(1)
	}

	client := backend.New(backendURL, cfg.BackendTimeout)
	sessions := session.NewService(secret)

	router, err := web.NewRouter(client, database, sessions)
	if err != nil {
		slog.Error("failed to set up router", "error", err)
		os.Exit(1)
	}

	handler := web.LoggingMiddleware(router)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "backend", backendURL)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
