package observability

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by Hooks.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Undefined   *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	WordLength  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_transitions_total",
				Help: "Total number of transitions taken",
			},
			[]string{"automaton", "from", "symbol"},
		),
		Undefined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_undefined_transitions_total",
				Help: "Total number of lookups on an undefined (state, symbol) pair",
			},
			[]string{"automaton"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of whole-word runs by outcome",
			},
			[]string{"automaton", "outcome"},
		),
		WordLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_word_length",
				Help:    "Length of the words run through each automaton",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"automaton"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Undefined, m.Runs, m.WordLength)
	}
	return m
}

// Outcome labels used by the Runs counter.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Hooks returns lifecycle hooks that record into m.
// Use Chain to combine them with logging hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Transitions.WithLabelValues(e.AutomatonID, e.From, e.Symbol).Inc()
		},
		OnUndefined: func(_ context.Context, e *domain.StepEvent) {
			m.Undefined.WithLabelValues(e.AutomatonID).Inc()
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			outcome := OutcomeRejected
			switch {
			case e.Err != nil:
				outcome = OutcomeFailed
			case e.Accepting:
				outcome = OutcomeAccepted
			}
			m.Runs.WithLabelValues(e.AutomatonID, outcome).Inc()
			m.WordLength.WithLabelValues(e.AutomatonID).Observe(float64(len(e.Word)))
		},
	}
}

// Chain merges several hook sets; each callback runs in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnRunStart = chainRun(out.OnRunStart, h.OnRunStart)
		out.OnRunFinish = chainRun(out.OnRunFinish, h.OnRunFinish)
		out.OnStep = chainStep(out.OnStep, h.OnStep)
		out.OnUndefined = chainStep(out.OnUndefined, h.OnUndefined)
	}
	return out
}

func chainRun(a, b func(context.Context, *domain.RunEvent)) func(context.Context, *domain.RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.RunEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, *domain.StepEvent)) func(context.Context, *domain.StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
