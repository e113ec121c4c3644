package locale

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/session"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every embedded locale file.
func TestI18nIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyEvtSummaryAge,
		config.TKeyEvtSummaryBirth,
		config.TKeyStatusEmpty,
		config.TKeyStatusInvalid,
		config.TKeyStatusAge,
		config.TKeyStatusCountdown,
		config.TKeyStatusLife,
		config.TKeyStatusTotals,
		config.TKeyStatusBirthday,
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := localeFS.ReadFile("locales/active." + lang + ".json")
			require.NoError(t, err, "Each supported language must ship a locale file")

			var jsonMap map[string]any
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for _, k := range keys {
				assert.Containsf(t, jsonMap, k, "Key '%s' defined in config.go is missing in active.%s.json", k, lang)
			}
			for k := range jsonMap {
				if !strings.HasPrefix(k, "_") {
					assert.Containsf(t, keys, k, "Key '%s' in active.%s.json is not declared in config.go", k, lang)
				}
			}
		})
	}
}

func TestNew_LoadsEmbeddedLocales(t *testing.T) {
	tr := New("")
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages)
}

func TestSummary(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Birth", en.Summary(0))
	assert.Equal(t, "Birthday (30)", en.Summary(30))

	fr := New("fr")
	assert.Equal(t, "Naissance", fr.Summary(0))
	assert.Equal(t, "Anniversaire (30)", fr.Summary(30))
}

func TestSetLanguage_Fallback(t *testing.T) {
	tr := New("fr")
	tr.SetLanguage("de")
	assert.Equal(t, "Birthday (7)", tr.Summary(7), "unknown languages fall back to English")
}

func TestMsg_MissingKey(t *testing.T) {
	tr := New("en")
	assert.Equal(t, "no_such_key", tr.Msg("no_such_key", nil))

	var empty Translator
	assert.Equal(t, config.TKeyStatusEmpty, empty.Msg(config.TKeyStatusEmpty, nil))
}

func TestStatus(t *testing.T) {
	tr := New("en")

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "Please set a birth date to start the clock", tr.Status(session.View{Status: session.StatusEmpty}))
	})

	t.Run("Invalid", func(t *testing.T) {
		birth := engine.BirthRecord{Year: 2090, Month: 1, Day: 1}
		assert.Equal(t, "Please select a valid past date", tr.Status(session.View{Status: session.StatusInvalid, Birth: &birth}))
	})

	age := engine.AgeSnapshot{
		Years: 24, Months: 5, Days: 3, Hours: 4, Minutes: 5, Seconds: 6,
		Total: engine.TotalCounters{Heartbeats: 926114436.4, Breaths: 206060462.9, SleepDays: 2947},
	}
	cd := engine.CountdownSnapshot{Days: 10, Hours: 1, Minutes: 2, Seconds: 3}
	life := engine.LifeProjection{ExpectedYearsRemaining: 46, ExpectedDaysRemaining: 16802, PercentComplete: 34.2857}
	live := session.View{Status: session.StatusLive, Age: &age, Countdown: &cd, Life: &life}

	t.Run("Live", func(t *testing.T) {
		want := "24 years 5 months 3 days 4h 5m 6s" +
			" | 926,114,436 heartbeats, 206,060,462 breaths, 2,947 days asleep" +
			" | next birthday in 10 days 1h 2m 3s" +
			" | 34.3% of an average life, about 16,802 days left"
		assert.Equal(t, want, tr.Status(live))
	})

	t.Run("Birthday", func(t *testing.T) {
		v := live
		v.BirthdayToday = true
		assert.True(t, strings.HasPrefix(tr.Status(v), "Happy birthday! | 24 years"))
	})

	t.Run("French", func(t *testing.T) {
		out := New("fr").Status(live)
		assert.Contains(t, out, "24 ans 5 mois 3 jours")
		assert.Contains(t, out, "prochain anniversaire dans 10 jours")
	})
}
