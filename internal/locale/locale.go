// Package locale translates the user-facing strings of the life clock: calendar
// event summaries and the console status line.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/session"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator holds the loaded bundle and the localizer of the active language.
type Translator struct {
	Bundle    *i18n.Bundle
	Localizer *i18n.Localizer
	Languages []string

	printer *message.Printer
}

// New loads every embedded locale and activates lang (config.DefaultLanguage when empty).
func New(lang string) *Translator {
	t := &Translator{Bundle: i18n.NewBundle(language.English)}
	t.Bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := t.Bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		t.Languages = append(t.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	t.SetLanguage(lang)
	return t
}

// SetLanguage switches the active language. Unknown tags fall back to English
// through the bundle.
func (t *Translator) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	t.Localizer = i18n.NewLocalizer(t.Bundle, lang)

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	t.printer = message.NewPrinter(tag)
}

// Msg translates key with optional template data. A missing key yields the key itself.
func (t *Translator) Msg(key string, data map[string]any) string {
	if t.Localizer == nil {
		return key
	}
	msg, err := t.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Summary is the calendar event title for an anniversary at the given age.
// It matches engine.FeedGenerator.FormatSummary.
func (t *Translator) Summary(age int) string {
	if age == 0 {
		return t.Msg(config.TKeyEvtSummaryBirth, nil)
	}
	return t.Msg(config.TKeyEvtSummaryAge, map[string]any{"Age": age})
}

// Status renders a one-line console view of v. Large counters use the
// digit grouping of the active language.
func (t *Translator) Status(v session.View) string {
	switch v.Status {
	case session.StatusEmpty:
		return t.Msg(config.TKeyStatusEmpty, nil)
	case session.StatusInvalid:
		return t.Msg(config.TKeyStatusInvalid, nil)
	}

	age, cd, life := v.Age, v.Countdown, v.Life
	parts := []string{
		t.Msg(config.TKeyStatusAge, map[string]any{
			"Years": age.Years, "Months": age.Months, "Days": age.Days,
			"Hours": age.Hours, "Minutes": age.Minutes, "Seconds": age.Seconds,
		}),
		t.Msg(config.TKeyStatusTotals, map[string]any{
			"Heartbeats": t.printer.Sprintf("%d", age.Total.HeartbeatCount()),
			"Breaths":    t.printer.Sprintf("%d", age.Total.BreathCount()),
			"Sleep":      t.printer.Sprintf("%d", age.Total.SleepDays),
		}),
		t.Msg(config.TKeyStatusCountdown, map[string]any{
			"Days": cd.Days, "Hours": cd.Hours, "Minutes": cd.Minutes, "Seconds": cd.Seconds,
		}),
		t.Msg(config.TKeyStatusLife, map[string]any{
			"Percent": t.printer.Sprintf("%.1f", life.PercentComplete),
			"Days":    t.printer.Sprintf("%d", life.ExpectedDaysRemaining),
		}),
	}
	if v.BirthdayToday {
		parts = append([]string{t.Msg(config.TKeyStatusBirthday, nil)}, parts...)
	}
	return strings.Join(parts, " | ")
}
