package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/locale"
	"github.com/tartampluch/go-lifeclock/internal/metrics"
	"github.com/tartampluch/go-lifeclock/internal/server"
	"github.com/tartampluch/go-lifeclock/internal/session"
	"github.com/tartampluch/go-lifeclock/internal/source"
	"golang.org/x/sync/errgroup"
)

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (like closing log
// files) run before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	opts, err := config.ParseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	if opts.ShowVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(opts.Debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the session to its consumers. Without -serve or -watch it prints
// the clock once and returns.
func run(ctx context.Context, opts config.Options, out io.Writer) error {
	tr := locale.New(opts.Language)
	registry := prometheus.NewRegistry()

	sess := session.New(session.WithMetrics(metrics.New(registry)))
	defer sess.Close()

	if cfg := source.FromOptions(opts); cfg.Mode != "" {
		birth, err := source.Resolve(ctx, cfg, source.NewHTTPFetcher())
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrBirthResolve, err)
		}
		sess.SetBirthRecord(&birth)
	} else if !opts.Serve {
		return errors.New(config.ErrSourceMissing)
	}

	if !opts.Serve && !opts.Watch {
		_, err := fmt.Fprintln(out, tr.Status(sess.View()))
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	if opts.Serve {
		feed := &engine.FeedGenerator{
			Clock:           engine.RealClock{},
			FormatSummary:   tr.Summary,
			ReminderTrigger: opts.Reminder,
		}
		srv := server.New(opts.Port, sess, feed, registry)
		updates, unsubscribe := sess.Subscribe()
		defer unsubscribe()

		g.Go(func() error { return srv.Start(gctx) })
		g.Go(func() error { return srv.Watch(gctx, updates) })
	}

	if opts.Watch {
		views, unsubscribe := sess.Subscribe()
		defer unsubscribe()

		g.Go(func() error { return printStatus(gctx, out, tr, views) })
	}

	go func() {
		<-gctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
	}()

	return g.Wait()
}

// printStatus writes one status line per received view until ctx is done or
// views is closed.
func printStatus(ctx context.Context, out io.Writer, tr *locale.Translator, views <-chan session.View) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-views:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintln(out, tr.Status(v)); err != nil {
				return err
			}
		}
	}
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Logs go to stderr so that
// the -watch output on stdout stays readable, and to a file in the user cache.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
