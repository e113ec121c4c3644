// Package source resolves the birth date the life clock starts from: plain ISO
// text, a local vCard file, or a vCard downloaded over HTTP(S).
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/zalando/go-keyring"
)

// ErrNoBirthday is returned when no card of a vCard stream carries a full birth date.
var ErrNoBirthday = errors.New(config.ErrVCardNoBday)

// Config describes where the birth date comes from.
type Config struct {
	Mode      string // config.SourceModeDate, SourceModeLocal or SourceModeWeb
	Date      string // ISO date for SourceModeDate
	LocalPath string
	WebURL    string
	WebUser   string
	WebPass   string
	CardName  string // optional FN filter
}

// FromOptions maps CLI options to a source Config. An explicit birth date wins
// over a vCard. The password of a remote vCard is looked up in the OS keyring.
func FromOptions(opts config.Options) Config {
	switch {
	case opts.BirthDate != "":
		return Config{Mode: config.SourceModeDate, Date: opts.BirthDate}
	case isWebURL(opts.VCard):
		cfg := Config{
			Mode:     config.SourceModeWeb,
			WebURL:   opts.VCard,
			WebUser:  opts.VCardUser,
			CardName: opts.VCardName,
		}
		if cfg.WebUser != "" {
			cfg.WebPass = LookupPassword(cfg.WebUser)
		}
		return cfg
	case opts.VCard != "":
		return Config{Mode: config.SourceModeLocal, LocalPath: opts.VCard, CardName: opts.VCardName}
	default:
		return Config{}
	}
}

// LookupPassword reads the password stored for user in the OS keyring.
// A missing entry yields an empty password.
func LookupPassword(user string) string {
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompSource,
			config.LogKeyUser, user,
			config.LogKeyError, err)
		return ""
	}
	return p
}

// Resolve returns the birth date described by cfg.
func Resolve(ctx context.Context, cfg Config, fetcher VCardFetcher) (engine.BirthRecord, error) {
	if cfg.Mode == config.SourceModeDate {
		return engine.ParseBirthRecord(strings.TrimSpace(cfg.Date))
	}

	reader, err := acquireStream(ctx, cfg, fetcher)
	if err != nil {
		if ctx.Err() != nil {
			return engine.BirthRecord{}, ctx.Err()
		}
		return engine.BirthRecord{}, err
	}
	defer func() { _ = reader.Close() }()

	birth, err := birthFromVCards(ctx, reader, cfg.CardName)
	if err != nil {
		return engine.BirthRecord{}, err
	}

	slog.Info(config.MsgBirthResolved,
		config.LogKeyComponent, config.CompSource,
		config.LogKeyMode, cfg.Mode,
		config.LogKeyBirth, birth.String())
	return birth, nil
}

// acquireStream opens the vCard stream named by cfg.
func acquireStream(ctx context.Context, cfg Config, fetcher VCardFetcher) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	case "":
		return nil, errors.New(config.ErrSourceMissing)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// birthFromVCards returns the BDAY of the first card (or the card whose FN equals
// name) that carries a complete date. Year-less BDAY values (--MM-DD) cannot
// anchor an age and are skipped.
func birthFromVCards(ctx context.Context, r io.Reader, name string) (engine.BirthRecord, error) {
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return engine.BirthRecord{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resynchronize after a syntax error.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompSource,
				config.LogKeyError, err)
			return engine.BirthRecord{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		if name != "" && card.PreferredValue(config.VCardFN) != name {
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, err := engine.ParseBirthRecord(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompSource,
				config.LogKeyValue, bday.Value)
			continue
		}
		return birth, nil
	}

	return engine.BirthRecord{}, ErrNoBirthday
}

func isWebURL(s string) bool {
	return strings.HasPrefix(s, config.SchemeHTTP+"://") || strings.HasPrefix(s, config.SchemeHTTPS+"://")
}
