// Package engine holds the nutrition and body-metrics calculations shared by
// the API and the nutricalc CLI. Every function is pure: inputs are never
// mutated and nothing here performs I/O.
package engine

import "time"

// Clock returns the current time. Tests inject a fixed clock.
type Clock func() time.Time

// Engine runs the calculations that depend on "now": age, trend windows and
// the chart goal point. Everything else is a package-level function.
type Engine struct {
	now Clock
}

// New creates an engine backed by the wall clock
func New() *Engine {
	return &Engine{now: time.Now}
}

// NewWithClock creates an engine with an injected clock
func NewWithClock(now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Now returns the engine's notion of the current time
func (e *Engine) Now() time.Time {
	return e.now()
}

const day = 24 * time.Hour

// daysBetween returns the fractional number of days from a to b
func daysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
