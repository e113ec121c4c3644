package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/session"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// feedKey identifies the inputs a rendered feed depends on.
type feedKey struct {
	birth  engine.BirthRecord
	year   int
	target int64
}

// Update atomically replaces the served calendar.
func (s *Server) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// Clear withdraws the calendar; requests get 503 until the next Update.
func (s *Server) Clear() {
	if s.cache.Swap(nil) != nil {
		slog.Debug(config.MsgCacheCleared, config.LogKeyComponent, config.CompServer)
	}
}

// Watch keeps the calendar in step with the session views received on updates.
// The feed is rendered again only when the birth date, the current year or the
// next anniversary changes. It returns when ctx is done or updates is closed.
func (s *Server) Watch(ctx context.Context, updates <-chan session.View) error {
	var last *feedKey

	for {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-updates:
			if !ok {
				return nil
			}

			if !v.Live() {
				last = nil
				s.Clear()
				continue
			}

			key := feedKey{
				birth:  *v.Birth,
				year:   v.Age.At.Year(),
				target: v.Countdown.Target.Unix(),
			}
			if last != nil && *last == key {
				continue
			}

			data, err := s.feed.Generate(ctx, key.birth)
			if err != nil {
				slog.Warn(config.MsgFeedSkipped,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyBirth, key.birth.String(),
					config.LogKeyError, err,
				)
				last = nil
				s.Clear()
				continue
			}

			last = &key
			s.Update(data)
		}
	}
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
// The router only dispatches GET and HEAD here.
func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
