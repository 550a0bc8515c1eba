package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crewbase/crewbase-mcp/internal/config"
	"github.com/crewbase/crewbase-mcp/internal/domain/analytics"
	"github.com/crewbase/crewbase-mcp/internal/domain/authz"
	"github.com/crewbase/crewbase-mcp/internal/domain/client"
	"github.com/crewbase/crewbase-mcp/internal/domain/finance"
	"github.com/crewbase/crewbase-mcp/internal/domain/identity"
	"github.com/crewbase/crewbase-mcp/internal/domain/project"
	"github.com/crewbase/crewbase-mcp/internal/domain/suggest"
	"github.com/crewbase/crewbase-mcp/internal/mcp"
	"github.com/crewbase/crewbase-mcp/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log setup error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	stdio := cfg.Server.Transport == "stdio"

	// In stdio mode every request runs as the configured caller, so a bad
	// role is a startup error rather than a per-request one.
	defaultCaller := identity.Caller{ID: cfg.Caller.ID}
	if stdio {
		role, err := identity.ParseRole(cfg.Caller.Role)
		if err != nil {
			return fmt.Errorf("caller config: %w", err)
		}
		defaultCaller.Role = role
	}

	if dir := filepath.Dir(cfg.DB.Path); cfg.DB.Path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare database dir: %w", err)
		}
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	invoiceRepo := sqlite.NewInvoiceRepository(db)
	clientRepo := sqlite.NewClientRepository(db)

	guard := authz.NewGuard(authz.NewResolver(projectRepo, logger))

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  project.NewService(projectRepo, userRepo, guard, logger),
			Analytics: analytics.NewService(projectRepo, logger),
			Finance:   finance.NewService(invoiceRepo, guard, logger),
			Clients:   client.NewService(clientRepo, logger),
			Suggest:   suggest.NewService(suggest.BlueprintGenerator{}, guard, logger),
		},
		TransportMode: cfg.Server.Transport,
		DefaultCaller: defaultCaller,
		Logger:        logger,
	})

	if stdio {
		return serveStdio(logger, server)
	}
	return serveHTTP(logger, server, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
}

// serveStdio blocks until stdin closes or a termination signal arrives.
func serveStdio(logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("serving over stdio")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

func serveHTTP(logger *slog.Logger, server *sdkmcp.Server, addr string) error {
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.Handle("/mcp/", handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	httpServer := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving over http", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http transport: %w", err)
	case <-stop:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildLogger routes logs to stderr in stdio mode so stdout stays clean for
// JSON-RPC frames, optionally teeing through a size-capped log file.
func buildLogger(cfg config.Config) (*slog.Logger, func(), error) {
	w := io.Writer(os.Stdout)
	if cfg.Server.Transport == "stdio" {
		w = os.Stderr
	}
	closeLog := func() {}

	if cfg.Log.File != "" {
		cw, err := openCappedLog(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		w = cw
		closeLog = func() { cw.file.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeLog, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// cappedLogWriter appends to a log file and trims it back to retainBytes
// once it grows past capBytes, keeping the newest entries.
type cappedLogWriter struct {
	mu   sync.Mutex
	file *os.File
}

const (
	logCapBytes    = 6 << 20
	logRetainBytes = 5 << 20
)

func openCappedLog(path string) (*cappedLogWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	w := &cappedLogWriter{file: f}
	if err := w.trim(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *cappedLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.trim()
}

func (w *cappedLogWriter) trim() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= logCapBytes {
		return nil
	}

	tail := make([]byte, logRetainBytes)
	if _, err := w.file.Seek(size-logRetainBytes, io.SeekStart); err != nil {
		return err
	}
	n, err := w.file.Read(tail)
	if err != nil && err != io.EOF {
		return err
	}

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(tail[:n]); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
