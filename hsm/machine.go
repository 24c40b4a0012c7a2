package hsm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
)

// Dispatch outcome constants used for logging and metrics.
const (
	outcomeTransition = "transition"
	outcomeInternal   = "internal"
	outcomeDropped    = "dropped"
	outcomeTerminated = "terminated"
)

// Machine is a running instance of a chart. It holds the currently active
// leaf state and delegates guards, actions, and entry/exit notifications to
// the host hooks.
//
// Dispatch runs to completion on the calling goroutine; there is no internal
// event queue. Hosts that dispatch from multiple goroutines must serialize
// externally. State and Terminated are safe to read from any goroutine.
type Machine struct {
	chart   *Chart
	hooks   Hooks
	id      string
	logger  Logger
	tracing bool

	current    atomic.String
	terminated atomic.Bool
	started    atomic.Bool
}

// Option configures a machine at construction.
type Option func(*Machine)

// WithID overrides the generated machine identifier.
func WithID(id string) Option {
	return func(m *Machine) {
		m.id = id
	}
}

// WithLogger attaches a logger to the machine's lifecycle and dispatches.
func WithLogger(logger Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithTracing enables or disables otel spans around dispatches. Enabled by
// default; the spans are no-ops unless the host installs a tracer provider.
func WithTracing(enabled bool) Option {
	return func(m *Machine) {
		m.tracing = enabled
	}
}

// NewMachine creates a machine over a compiled chart. The hooks reference is
// borrowed; its lifetime must enclose the machine's. The machine starts in
// the Created phase with State() == Initial.
func NewMachine(chart *Chart, hooks Hooks, opts ...Option) (*Machine, error) {
	if chart == nil {
		return nil, ErrNilChart
	}

	if hooks == nil {
		return nil, ErrNilHooks
	}

	m := &Machine{
		chart:   chart,
		hooks:   hooks,
		id:      uuid.NewString(),
		tracing: true,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.current.Store(string(Initial))

	return m, nil
}

// ID returns the machine identifier.
func (m *Machine) ID() string {
	return m.id
}

// Chart returns the chart the machine runs.
func (m *Machine) Chart() *Chart {
	return m.chart
}

// State returns the currently active leaf state, or Initial before the
// initial descent, or Final after termination.
func (m *Machine) State() State {
	return State(m.current.Load())
}

// Terminated reports whether the machine has reached Final.
func (m *Machine) Terminated() bool {
	return m.terminated.Load()
}

// Reset returns the machine to the Created phase: State() == Initial,
// Terminated() == false. No exits are emitted for states active at the time
// of the reset. A subsequent Start re-runs the initial descent.
func (m *Machine) Reset() {
	m.terminated.Store(false)
	m.started.Store(false)
	m.current.Store(string(Initial))
}

// Start performs the initial descent: entries from the root down to the root
// initial target, default-substate descent to a leaf, then the single initial
// action. Start is idempotent and a no-op after termination. Dispatch starts
// the machine implicitly if the host never calls Start.
func (m *Machine) Start(ctx context.Context) {
	if m.terminated.Load() || m.started.Load() {
		return
	}

	m.started.Store(true)

	path := m.chart.pathFromRoot(m.chart.initial)
	for _, idx := range path {
		m.enter(ctx, idx)
	}

	leaf := m.descend(ctx, m.chart.initial)
	m.current.Store(string(m.chart.states[leaf].name))

	if m.chart.initialAction != "" {
		// The action is attributed to the outermost entered state, with no
		// triggering event.
		m.hooks.Action(ctx, m.chart.states[path[0]].name, Event(""), m.chart.initialAction)
	}

	if m.logger != nil {
		m.logger.Started(ctx, m.id, m.State())
	}
}

// Dispatch processes one event. Unknown events and events whose guards all
// reject are silently dropped. Dispatch after termination is a no-op.
func (m *Machine) Dispatch(ctx context.Context, event Event) {
	if m.terminated.Load() {
		return
	}

	if !m.started.Load() {
		m.Start(ctx)
	}

	from := m.State()

	span := noopSpan()
	if m.tracing {
		ctx, span = startDispatchSpan(ctx, m.id, m.chart.name, from, event)
	}

	start := time.Now()
	outcome := m.dispatch(ctx, event, from)

	dispatchesTotal.WithLabelValues(m.chart.name, string(event), outcome).Inc()
	dispatchDuration.WithLabelValues(m.chart.name, outcome).Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.String("hsm.outcome", outcome),
		attribute.String("hsm.state.after", string(m.State())),
	)
	span.End()
}

// dispatch resolves and executes one event, returning the outcome label.
func (m *Machine) dispatch(ctx context.Context, event Event, from State) string {
	if m.chart.terminate != "" && event == m.chart.terminate {
		// Termination abandons the active states: no exits, no entries.
		m.current.Store(string(Final))
		m.terminated.Store(true)

		if m.logger != nil {
			m.logger.Terminated(ctx, m.id, from)
		}

		return outcomeTerminated
	}

	leaf := m.chart.index[from]

	for idx := leaf; idx >= 0; idx = m.chart.states[idx].parent {
		source := m.chart.states[idx].name

		for _, h := range m.chart.states[idx].handlers[event] {
			if h.guard != "" {
				admitted := m.hooks.Guard(ctx, source, event, h.guard)
				guardEvaluationsTotal.WithLabelValues(m.chart.name, string(h.guard), boolLabel(admitted)).Inc()

				if !admitted {
					continue
				}
			}

			if h.internal {
				if h.action != "" {
					m.hooks.Action(ctx, source, event, h.action)
				}

				transitionsTotal.WithLabelValues(
					m.chart.name,
					string(source),
					string(source),
					KindInternal.String(),
				).Inc()

				return outcomeInternal
			}

			m.transition(ctx, leaf, idx, event, h)

			transitionsTotal.WithLabelValues(
				m.chart.name,
				string(source),
				string(m.chart.states[h.target].name),
				KindExternal.String(),
			).Inc()

			if m.logger != nil {
				m.logger.TransitionExecuted(ctx, m.id, source, m.State(), event)
			}

			return outcomeTransition
		}
	}

	if m.logger != nil {
		m.logger.EventDropped(ctx, m.id, from, event)
	}

	return outcomeDropped
}

// transition executes an external transition whose handler is defined on
// source while the machine rests in leaf. The observable order is fixed:
// exits innermost-first, then the action, then entries outermost-first, then
// default-substate descent.
func (m *Machine) transition(ctx context.Context, leaf, source int, event Event, h handler) {
	target := h.target

	// A self-transition exits and re-enters its own state, so the pivot is
	// the source's parent rather than the common ancestor.
	pivot := m.chart.states[source].parent
	if source != target {
		pivot = m.chart.lca(source, target)
	}

	for idx := leaf; idx != pivot && idx >= 0; idx = m.chart.states[idx].parent {
		m.exit(ctx, idx)
	}

	if h.action != "" {
		m.hooks.Action(ctx, m.chart.states[source].name, event, h.action)
	}

	entries := make([]int, 0, m.chart.states[target].depth+1)
	for idx := target; idx != pivot && idx >= 0; idx = m.chart.states[idx].parent {
		entries = append(entries, idx)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		m.enter(ctx, entries[i])
	}

	final := m.descend(ctx, target)
	m.current.Store(string(m.chart.states[final].name))
}

// descend follows default substates from idx down to a leaf, entering each
// substate along the way, and returns the leaf's index.
func (m *Machine) descend(ctx context.Context, idx int) int {
	for m.chart.states[idx].initial >= 0 {
		idx = m.chart.states[idx].initial
		m.enter(ctx, idx)
	}

	return idx
}

func (m *Machine) enter(ctx context.Context, idx int) {
	state := m.chart.states[idx].name
	m.hooks.OnEntry(ctx, state)

	if m.logger != nil {
		m.logger.StateEntered(ctx, m.id, state)
	}
}

func (m *Machine) exit(ctx context.Context, idx int) {
	state := m.chart.states[idx].name
	m.hooks.OnExit(ctx, state)

	if m.logger != nil {
		m.logger.StateExited(ctx, m.id, state)
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}

	return "false"
}
