package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/oglasna/internal/api"
	"github.com/erazemk/oglasna/internal/board"
	"github.com/erazemk/oglasna/internal/config"
	"github.com/erazemk/oglasna/internal/db"
	"github.com/erazemk/oglasna/internal/imaging"
	"github.com/erazemk/oglasna/internal/live"
	"github.com/erazemk/oglasna/internal/model"
	"github.com/erazemk/oglasna/internal/share"
	"github.com/erazemk/oglasna/internal/store"
	"github.com/erazemk/oglasna/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

const usage = `Usage: oglasna [flags] [command]

Commands:
  (none)                  serve the board
  clear <category>        empty one category (announcements, prayers, needs, events)
  seed                    store the seed events if there are none

Flags:
  -c, -config <path>      TOML config file (default: built-in defaults)
  -d, -db <path>          SQLite database path (default: oglasna.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`

func main() {
	fs := flag.NewFlagSet("oglasna", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the config file.
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if logPath != "" {
		cfg.LogPath = logPath
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	if err := run(cfg, fs.Args()); err != nil {
		slog.Error("oglasna failed", "error", err)
		if closeLog != nil {
			closeLog()
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	b := board.New(st, board.Options{
		PrayerImage: cfg.Images.PrayerPlaceholder,
		NeedImage:   cfg.Images.NeedPlaceholder,
	})

	if len(args) == 0 {
		return serve(ctx, cfg, st, b)
	}

	switch args[0] {
	case "clear":
		if len(args) != 2 {
			return fmt.Errorf("usage: oglasna clear <category>")
		}
		kind, err := model.ParseKind(args[1])
		if err != nil {
			return err
		}
		if err := b.Clear(ctx, kind); err != nil {
			return err
		}
		fmt.Printf("Cleared %s.\n", kind)
		return nil
	case "seed":
		if len(args) != 1 {
			return fmt.Errorf("unexpected argument: %s", args[1])
		}
		n, err := b.SeedEvents(ctx, seedEvents(cfg))
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Events already present, nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded %d events.\n", n)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// openStore opens the configured storage backend. The returned function
// releases it.
func openStore(ctx context.Context, cfg config.StorageConfig) (store.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory storage, posts are lost on restart")
		return store.NewMemory(), func() {}, nil

	case config.DriverPostgres:
		pg, err := store.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database ready", "driver", cfg.Driver)
		return pg, pg.Close, nil

	default:
		database, err := db.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		slog.Info("database ready", "driver", cfg.Driver, "path", cfg.Path)
		return store.NewSQLite(database), func() { database.Close() }, nil
	}
}

func seedEvents(cfg config.Config) []board.EventInput {
	if cfg.Events.Seed != nil {
		return cfg.Events.Seed
	}
	return board.SampleEvents(time.Now())
}

func serve(ctx context.Context, cfg config.Config, st store.Store, b *board.Board) error {
	hub := live.NewHub()
	b.OnChange(hub.Notify)

	var thumbs *imaging.Fetcher
	if cfg.Images.Thumbnails {
		thumbs = imaging.NewFetcher(st, cfg.Images.MaxDimension)
	}

	dispatcher := share.NewDispatcher(b)

	// Set up routers.
	apiRouter := api.NewRouter(b, dispatcher, cfg.BaseURL)
	webRouter, err := web.NewRouter(b, dispatcher, web.Options{
		BaseURL:   cfg.BaseURL,
		Platforms: cfg.Share.Platforms,
		Hub:       hub,
		Thumbs:    thumbs,
		Seeds:     cfg.Events.Seed,
	})
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server started", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown on SIGINT/SIGTERM or a failed listener.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing storage")
	return nil
}
