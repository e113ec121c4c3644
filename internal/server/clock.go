package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/tartampluch/go-lifeclock/internal/config"
	"github.com/tartampluch/go-lifeclock/internal/engine"
	"github.com/tartampluch/go-lifeclock/internal/session"
)

type birthDateRequest struct {
	BirthDate string `json:"birthDate"`
}

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

type clockResponse struct {
	SessionID       string             `json:"sessionId"`
	Status          session.Status     `json:"status"`
	BirthDate       string             `json:"birthDate,omitempty"`
	IsBirthdayToday bool               `json:"isBirthdayToday"`
	Age             *ageResponse       `json:"age,omitempty"`
	Countdown       *countdownResponse `json:"countdown,omitempty"`
	Life            *lifeResponse      `json:"life,omitempty"`
}

type ageResponse struct {
	At      time.Time      `json:"at"`
	Years   int            `json:"years"`
	Months  int            `json:"months"`
	Days    int            `json:"days"`
	Hours   int            `json:"hours"`
	Minutes int            `json:"minutes"`
	Seconds int            `json:"seconds"`
	Totals  totalsResponse `json:"totals"`
}

type totalsResponse struct {
	Days       int64 `json:"days"`
	Hours      int64 `json:"hours"`
	Minutes    int64 `json:"minutes"`
	Seconds    int64 `json:"seconds"`
	Heartbeats int64 `json:"heartbeats"`
	Breaths    int64 `json:"breaths"`
	SleepDays  int64 `json:"sleepDays"`
}

type countdownResponse struct {
	NextAnniversary time.Time `json:"nextAnniversary"`
	Days            int       `json:"days"`
	Hours           int       `json:"hours"`
	Minutes         int       `json:"minutes"`
	Seconds         int       `json:"seconds"`
}

type lifeResponse struct {
	ExpectedYearsRemaining int     `json:"expectedYearsRemaining"`
	ExpectedDaysRemaining  int64   `json:"expectedDaysRemaining"`
	PercentComplete        float64 `json:"percentComplete"`
}

func newClockResponse(v session.View) clockResponse {
	resp := clockResponse{
		SessionID:       v.SessionID,
		Status:          v.Status,
		IsBirthdayToday: v.BirthdayToday,
	}
	if v.Birth != nil {
		resp.BirthDate = v.Birth.String()
	}
	if v.Age != nil {
		a := v.Age
		resp.Age = &ageResponse{
			At:    a.At,
			Years: a.Years, Months: a.Months, Days: a.Days,
			Hours: a.Hours, Minutes: a.Minutes, Seconds: a.Seconds,
			Totals: totalsResponse{
				Days:       a.Total.Days,
				Hours:      a.Total.Hours,
				Minutes:    a.Total.Minutes,
				Seconds:    a.Total.Seconds,
				Heartbeats: a.Total.HeartbeatCount(),
				Breaths:    a.Total.BreathCount(),
				SleepDays:  a.Total.SleepDays,
			},
		}
	}
	if v.Countdown != nil {
		c := v.Countdown
		resp.Countdown = &countdownResponse{
			NextAnniversary: c.Target,
			Days:            c.Days,
			Hours:           c.Hours,
			Minutes:         c.Minutes,
			Seconds:         c.Seconds,
		}
	}
	if v.Life != nil {
		resp.Life = &lifeResponse{
			ExpectedYearsRemaining: v.Life.ExpectedYearsRemaining,
			ExpectedDaysRemaining:  v.Life.ExpectedDaysRemaining,
			PercentComplete:        v.Life.PercentComplete,
		}
	}
	return resp
}

func (s *Server) handleClock(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	writeJSON(w, http.StatusOK, newClockResponse(s.session.View()))
}

// handleSetBirthDate applies {"birthDate":"YYYY-MM-DD"}. A future date is
// accepted and reported through the "invalid" status.
func (s *Server) handleSetBirthDate(w http.ResponseWriter, r *http.Request) {
	var req birthDateRequest
	body := io.LimitReader(r.Body, config.MaxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:       config.HTTPMsgBadRequest,
			Description: fmt.Sprintf("%s: %v", config.ErrDecodeBody, err),
		})
		return
	}

	v, err := s.session.SetBirthDate(req.BirthDate)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrMalformedDate) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: http.StatusText(status), Description: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, newClockResponse(v))
}

func (s *Server) handleClearBirthDate(w http.ResponseWriter, _ *http.Request) {
	v, err := s.session.SetBirthDate("")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		return
	}
	writeJSON(w, http.StatusOK, newClockResponse(v))
}

func writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	// Headers are sent; an encoding error can only be logged.
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
