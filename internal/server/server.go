// Package server exposes a clock session over HTTP: the live values as JSON,
// the birth date as a writable resource and the anniversaries as an ICS feed.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/session"
)

// ClockSession is the part of session.Session the server drives.
type ClockSession interface {
	View() session.View
	SetBirthDate(value string) (session.View, error)
}

// FeedRenderer renders the anniversary calendar of a birth date.
type FeedRenderer interface {
	Generate(ctx context.Context, birth engine.BirthRecord) ([]byte, error)
}

// Server serves one session on the loopback interface.
type Server struct {
	Port string

	session  ClockSession
	feed     FeedRenderer
	gatherer prometheus.Gatherer

	// cache is read on every calendar request and written only when the feed
	// changes, so readers never take a lock.
	cache atomic.Pointer[cacheItem]
}

// New creates a server. gatherer may be nil, in which case /metrics is not mounted.
func New(port string, sess ClockSession, feed FeedRenderer, gatherer prometheus.Gatherer) *Server {
	return &Server{
		Port:     port,
		session:  sess,
		feed:     feed,
		gatherer: gatherer,
	}
}

// Router wires every endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(config.RouteClock, s.handleClock)
	r.Put(config.RouteBirthDate, s.handleSetBirthDate)
	r.Delete(config.RouteBirthDate, s.handleClearBirthDate)

	r.Get(config.RouteCalendar, s.handleCalendarRequest)
	r.Head(config.RouteCalendar, s.handleCalendarRequest)

	if s.gatherer != nil {
		r.Handle(config.RouteMetrics, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
