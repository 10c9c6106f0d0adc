package warming

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"synergyai.app/internal/ports"
)

// Outcome labels for warm results
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
)

// WarmError is the background failure of one entity warm. Prior cache
// contents are left alone unless FallbackWritten is set.
type WarmError struct {
	Entity          string
	Key             string
	Target          ports.WarmTarget
	Attempts        int
	FallbackWritten bool
	Err             error
}

func (e *WarmError) Error() string {
	msg := fmt.Sprintf("warm %s failed after %d attempt(s)", e.Entity, e.Attempts)
	if e.Key != "" {
		msg += " for " + e.Key
	}
	if e.FallbackWritten {
		msg += " (default written)"
	}
	return msg + ": " + e.Err.Error()
}

func (e *WarmError) Unwrap() error {
	return e.Err
}

type WarmResult struct {
	Entity   string        `json:"entity"`
	Key      string        `json:"key"`
	Attempts int           `json:"attempts"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

func (r WarmResult) Outcome() string {
	if r.Err == nil {
		return OutcomeSuccess
	}
	var we *WarmError
	if errors.As(r.Err, &we) && we.FallbackWritten {
		return OutcomeFallback
	}
	return OutcomeFailed
}

// BatchReport collects the results of one warm batch
type BatchReport struct {
	ID       uuid.UUID
	Target   ports.WarmTarget
	Results  []WarmResult
	TimedOut bool
	Duration time.Duration
}

func (r BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

func (r BatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Err joins every failure in the batch, or returns nil
func (r BatchReport) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}
