package source_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/source"
)

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	const body = "BEGIN:VCARD\nVERSION:3.0\nFN:Ada\nBDAY:1815-12-10\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "ada", user)
		assert.Equal(t, "engine", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))

		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	rc, err := source.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/card.vcf?token=secret", "ada", "engine")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestHTTPFetcher_Fetch_NoCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok, "No auth header without credentials")
	}))
	defer ts.Close()

	rc, err := source.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"NotFound", http.StatusNotFound, "404"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
		{"ServerError", http.StatusInternalServerError, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := source.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")

			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.ErrorIs(t, err, source.ErrUnexpectedStatus)
		})
	}
}

// TestHTTPFetcher_Fetch_Timeout ensures the request honours the context deadline.
func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := source.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_Fetch_RejectedURLs(t *testing.T) {
	fetcher := source.NewHTTPFetcher()

	_, err := fetcher.Fetch(context.Background(), string([]byte{0x7f}), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)

	_, err = fetcher.Fetch(context.Background(), "ftp://example.com/card.vcf", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)
}

func TestHTTPFetcher_Fetch_SizeCap(t *testing.T) {
	const card = "BEGIN:VCARD\nVERSION:3.0\nFN:Ada\nBDAY:1815-12-10\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(card))
	}))
	defer ts.Close()

	t.Run("AtLimit", func(t *testing.T) {
		fetcher := source.NewHTTPFetcher()
		fetcher.MaxBytes = int64(len(card))

		rc, err := fetcher.Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, card, string(got))
	})

	t.Run("OverLimit", func(t *testing.T) {
		fetcher := source.NewHTTPFetcher()
		fetcher.MaxBytes = 10

		rc, err := fetcher.Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		got, err := io.ReadAll(rc)
		assert.ErrorIs(t, err, source.ErrResponseTooLarge)
		assert.Equal(t, card[:10], string(got))
	})

	t.Run("ZeroMeansDefault", func(t *testing.T) {
		rc, err := (&source.HTTPFetcher{Client: http.DefaultClient}).Fetch(context.Background(), ts.URL, "", "")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, card, string(got))
	})
}
