package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work done by clock sessions. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	FullRecomputes     prometheus.Counter
	Ticks              prometheus.Counter
	InvalidInputs      prometheus.Counter
	CountdownRollovers prometheus.Counter
	Resyncs            prometheus.Counter
	ActiveSchedules    prometheus.Gauge
}

// New registers the collectors on reg. A nil reg creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FullRecomputes: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifeclock_full_recomputes_total",
			Help: "Total number of full recomputes from the birth date",
		}),
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifeclock_ticks_total",
			Help: "Total number of incremental one-second updates applied",
		}),
		InvalidInputs: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifeclock_invalid_inputs_total",
			Help: "Total number of birth dates rejected for lying in the future",
		}),
		CountdownRollovers: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifeclock_countdown_rollovers_total",
			Help: "Total number of countdowns restarted for the following anniversary",
		}),
		Resyncs: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifeclock_resyncs_total",
			Help: "Total number of recomputes after lost ticks",
		}),
		ActiveSchedules: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lifeclock_active_schedules",
			Help: "Number of running tick schedules",
		}),
	}
}

func (m *Metrics) IncrementFullRecompute() {
	if m == nil {
		return
	}
	m.FullRecomputes.Inc()
}

func (m *Metrics) IncrementTick() {
	if m == nil {
		return
	}
	m.Ticks.Inc()
}

func (m *Metrics) IncrementInvalidInput() {
	if m == nil {
		return
	}
	m.InvalidInputs.Inc()
}

func (m *Metrics) IncrementRollover() {
	if m == nil {
		return
	}
	m.CountdownRollovers.Inc()
}

func (m *Metrics) IncrementResync() {
	if m == nil {
		return
	}
	m.Resyncs.Inc()
}

func (m *Metrics) ScheduleStarted() {
	if m == nil {
		return
	}
	m.ActiveSchedules.Inc()
}

func (m *Metrics) ScheduleStopped() {
	if m == nil {
		return
	}
	m.ActiveSchedules.Dec()
}
