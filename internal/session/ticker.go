package session

import "time"

// Ticker delivers one value per interval until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc creates the Ticker driving a tick schedule.
type TickerFunc func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

func (r realTicker) C() <-chan time.Time { return r.t.C }

func (r realTicker) Stop() { r.t.Stop() }
