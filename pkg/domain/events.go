package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventStep      EventType = "step"
	EventUndefined EventType = "undefined_transition"
	EventRunFinish EventType = "run_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	AutomatonID string    `json:"automaton_id"`
}

// StepEvent represents a single transition attempt.
type StepEvent struct {
	EventBase
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to,omitempty"`
}

// RunEvent represents the start or the end of a whole-word run.
type RunEvent struct {
	EventBase
	Word      []string `json:"word"`
	Final     string   `json:"final,omitempty"`
	Accepting bool     `json:"accepting"`
	Err       error    `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRunStart  func(context.Context, *RunEvent)
	OnStep      func(context.Context, *StepEvent)
	OnUndefined func(context.Context, *StepEvent)
	OnRunFinish func(context.Context, *RunEvent)
}
