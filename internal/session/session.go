// Package session owns one live clock: the current birth date, the state
// derived from it and the one-second schedule that keeps that state current.
package session

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/metrics"
)

// Status tells which values a View carries.
type Status int

const (
	// StatusEmpty means no birth date is set.
	StatusEmpty Status = iota
	// StatusInvalid means the birth date lies in the future.
	StatusInvalid
	// StatusLive means every snapshot is present and ticking.
	StatusLive
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusLive:
		return "live"
	default:
		return "empty"
	}
}

// MarshalText renders the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is an immutable copy of what a consumer may display. Age, Countdown and
// Life are nil unless Status is StatusLive.
type View struct {
	SessionID     string
	Status        Status
	Birth         *engine.BirthRecord
	Age           *engine.AgeSnapshot
	Countdown     *engine.CountdownSnapshot
	Life          *engine.LifeProjection
	BirthdayToday bool
}

// Live reports whether the view carries computed values.
func (v View) Live() bool {
	return v.Status == StatusLive
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c engine.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithTicker replaces the ticker factory.
func WithTicker(f TickerFunc) Option {
	return func(s *Session) { s.newTicker = f }
}

// WithMetrics records recomputes, ticks and schedules on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// Session holds at most one birth date and at most one running tick schedule.
// All methods are safe for concurrent use.
type Session struct {
	id        string
	clock     engine.Clock
	newTicker TickerFunc
	metrics   *metrics.Metrics
	log       *slog.Logger

	mu      sync.Mutex
	birth   *engine.BirthRecord
	state   *engine.State
	job     *tickJob
	subs    map[uint64]chan View
	nextSub uint64
	closed  bool

	view atomic.Pointer[View]
}

// tickJob is one schedule. Ticks are applied only while it is the session's current job.
type tickJob struct {
	stop chan struct{}
	done chan struct{}
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		clock:     engine.RealClock{},
		newTicker: NewRealTicker,
		subs:      make(map[uint64]chan View),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = slog.With(
		slog.String(config.LogKeyComponent, config.CompSession),
		slog.String(config.LogKeySession, s.id),
	)
	s.view.Store(&View{SessionID: s.id, Status: StatusEmpty})
	return s
}

// ID is the random identifier of the session.
func (s *Session) ID() string {
	return s.id
}

// View returns the latest published view without blocking on the schedule.
func (s *Session) View() View {
	return *s.view.Load()
}

// SetBirthDate parses an ISO date and applies it. An empty or blank value
// clears the birth date. A malformed value returns engine.ErrMalformedDate
// and leaves the session untouched.
func (s *Session) SetBirthDate(value string) (View, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.SetBirthRecord(nil), nil
	}

	birth, err := engine.ParseBirthRecord(value)
	if err != nil {
		return s.View(), err
	}
	return s.SetBirthRecord(&birth), nil
}

// SetBirthRecord replaces the birth date, recomputes every value and restarts
// the tick schedule. nil clears the session. A future date yields StatusInvalid
// with no schedule running.
func (s *Session) SetBirthRecord(birth *engine.BirthRecord) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.View()
	}

	s.cancelJobLocked()
	s.state = nil

	if birth == nil {
		s.birth = nil
		s.log.Info(config.MsgBirthCleared)
		return s.publishLocked()
	}

	b := *birth
	s.birth = &b

	now := s.clock.Now().Truncate(time.Second)
	state, err := engine.Recompute(b, now)
	s.metrics.IncrementFullRecompute()
	if err != nil {
		s.metrics.IncrementInvalidInput()
		s.log.Warn(config.MsgBirthInvalid,
			slog.String(config.LogKeyBirth, b.String()),
			slog.Any(config.LogKeyError, err),
		)
		return s.publishLocked()
	}

	s.state = &state
	s.log.Info(config.MsgBirthSet,
		slog.String(config.LogKeyBirth, b.String()),
		slog.Time(config.LogKeyTarget, state.Countdown.Target),
	)
	s.startJobLocked()
	return s.publishLocked()
}

// Subscribe returns a channel that receives the current view and then every
// published view. A slow reader only misses intermediate views: the channel
// always holds the most recent one. Call the returned function to unsubscribe.
func (s *Session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, config.ChannelBufferSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.View()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops the schedule and closes every subscription. The session keeps
// answering View with an empty view.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.cancelJobLocked()
	s.birth, s.state = nil, nil
	s.publishLocked()

	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.log.Info(config.MsgSessionClosed)
}

func (s *Session) startJobLocked() {
	job := &tickJob{stop: make(chan struct{}), done: make(chan struct{})}
	s.job = job
	s.metrics.ScheduleStarted()
	s.log.Debug(config.MsgScheduleStart)

	go s.run(job, s.newTicker(config.TickInterval))
}

func (s *Session) cancelJobLocked() {
	if s.job == nil {
		return
	}
	close(s.job.stop)
	s.job = nil
	s.metrics.ScheduleStopped()
	s.log.Debug(config.MsgScheduleCancel)
}

func (s *Session) run(job *tickJob, ticker Ticker) {
	defer close(job.done)
	defer ticker.Stop()

	for {
		select {
		case <-job.stop:
			return
		case at := <-ticker.C():
			s.applyTick(job, at)
		}
	}
}

// applyTick advances the state by one second if job is still current. When the
// tick instant lies more than one second past the state, ticks were lost
// (dropped by the ticker, host suspended) and the state is recomputed from the
// birth date at that instant instead. A zero instant falls back to the clock.
func (s *Session) applyTick(job *tickJob, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != job || s.state == nil {
		s.log.Debug(config.MsgLateTick)
		return
	}

	prev := *s.state
	if at.IsZero() {
		at = s.clock.Now()
	}
	at = at.In(prev.At().Location()).Truncate(time.Second)

	var next engine.State
	if at.After(prev.At().Add(config.TickInterval)) {
		resynced, err := engine.Recompute(prev.Birth, at)
		if err != nil {
			// Only reachable if the clock jumped back before the birth date.
			next = prev.Tick()
		} else {
			next = resynced
			s.metrics.IncrementFullRecompute()
			s.metrics.IncrementResync()
			s.log.Info(config.MsgResync,
				slog.Time(config.LogKeyFrom, prev.At()),
				slog.Time(config.LogKeyTo, at),
			)
		}
	} else {
		next = prev.Tick()
		s.metrics.IncrementTick()
	}
	s.state = &next

	if !next.Countdown.Target.Equal(prev.Countdown.Target) {
		s.metrics.IncrementRollover()
		s.log.Info(config.MsgRollover, slog.Time(config.LogKeyTarget, next.Countdown.Target))
	}
	if next.BirthdayToday && !prev.BirthdayToday {
		s.log.Info(config.MsgBdayToday, slog.String(config.LogKeyBirth, next.Birth.String()))
	}

	s.publishLocked()
}

// publishLocked snapshots the current state into a new View, stores it and
// hands it to every subscriber.
func (s *Session) publishLocked() View {
	v := View{SessionID: s.id, Status: StatusEmpty}

	if s.birth != nil {
		b := *s.birth
		v.Birth = &b
		v.Status = StatusInvalid
	}
	if s.state != nil {
		age, cd, life := s.state.Age, s.state.Countdown, s.state.Life
		v.Status = StatusLive
		v.Age, v.Countdown, v.Life = &age, &cd, &life
		v.BirthdayToday = s.state.BirthdayToday
	}

	s.view.Store(&v)

	for _, ch := range s.subs {
		select {
		case ch <- v:
		default:
			// Replace the unread view with the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
	return v
}
