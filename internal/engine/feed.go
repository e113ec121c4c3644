package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifeclock/internal/config"
)

// FeedGenerator renders the anniversaries of a birth date as an iCalendar feed.
type FeedGenerator struct {
	Clock Clock // Interface for time mocking.

	// FormatSummary allows the caller to inject localized strings into the logic layer.
	// age is the age reached on the anniversary (0 for the birth itself).
	FormatSummary func(age int) string

	// ReminderTrigger is an optional ISO8601 duration string (e.g., "-P1D").
	ReminderTrigger string
}

// Generate builds the feed for the previous, current and next anniversary year.
func (g *FeedGenerator) Generate(ctx context.Context, birth BirthRecord) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Anniversaries are local calendar dates; only the stamp is UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	uidBase := feedUID(birth)
	events := g.createEvents(birth, now, uidBase)
	for _, e := range events {
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyBirth, birth.String(),
		config.LogKeyEvents, len(events),
	)
	return buf.Bytes(), nil
}

// createEvents generates one all-day event per anniversary year around now.
// No event is created before the birth year.
func (g *FeedGenerator) createEvents(birth BirthRecord, now time.Time, uidBase string) []*ical.Event {
	loc := now.Location()

	var events []*ical.Event
	for y := now.Year() - config.FeedYearsBefore; y <= now.Year()+config.FeedYearsAfter; y++ {
		if y < birth.Year {
			continue
		}
		age := y - birth.Year

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		summary := g.summary(age)
		event.Props.SetText(config.PropSummary, summary)

		// Feb 29 falls on March 1st in common years, like the countdown.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birth.Month, birth.Day, 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

func (g *FeedGenerator) summary(age int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(age)
	}
	if age == 0 {
		return config.FallbackSummaryBirth
	}
	return fmt.Sprintf(config.FallbackSummaryAge, age)
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// feedUID derives a stable identifier from the birth date so that calendar
// clients keep their events across refreshes.
func feedUID(birth BirthRecord) string {
	input := fmt.Sprintf(config.FormatHashInput, birth.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
