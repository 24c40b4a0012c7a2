package hsm

import (
	"context"
	"log/slog"
)

// Logger provides logging hooks for machine lifecycle and dispatch.
type Logger interface {
	Started(ctx context.Context, machineID string, state State)
	StateEntered(ctx context.Context, machineID string, state State)
	StateExited(ctx context.Context, machineID string, state State)
	TransitionExecuted(ctx context.Context, machineID string, source, to State, event Event)
	EventDropped(ctx context.Context, machineID string, state State, event Event)
	Terminated(ctx context.Context, machineID string, state State)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default().
func NewDefaultLogger() *DefaultLogger {
	return NewLoggerWith(slog.Default())
}

// NewLoggerWith creates a logger backed by the given slog logger.
func NewLoggerWith(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{
		logger: logger,
	}
}

func (l *DefaultLogger) Started(ctx context.Context, machineID string, state State) {
	l.logger.InfoContext(ctx, "Machine started",
		"machine_id", machineID,
		"state", string(state),
	)
}

func (l *DefaultLogger) StateEntered(ctx context.Context, machineID string, state State) {
	l.logger.DebugContext(ctx, "State entered",
		"machine_id", machineID,
		"state", string(state),
	)
}

func (l *DefaultLogger) StateExited(ctx context.Context, machineID string, state State) {
	l.logger.DebugContext(ctx, "State exited",
		"machine_id", machineID,
		"state", string(state),
	)
}

func (l *DefaultLogger) TransitionExecuted(ctx context.Context, machineID string, source, to State, event Event) {
	l.logger.InfoContext(ctx, "Transition executed",
		"machine_id", machineID,
		"source", string(source),
		"to", string(to),
		"event", string(event),
	)
}

func (l *DefaultLogger) EventDropped(ctx context.Context, machineID string, state State, event Event) {
	l.logger.DebugContext(ctx, "Event dropped",
		"machine_id", machineID,
		"state", string(state),
		"event", string(event),
	)
}

func (l *DefaultLogger) Terminated(ctx context.Context, machineID string, state State) {
	l.logger.InfoContext(ctx, "Machine terminated",
		"machine_id", machineID,
		"state", string(state),
	)
}

// LoggingHooks wraps host hooks with structured logging of every callback.
type LoggingHooks struct {
	hooks  Hooks
	logger *slog.Logger
}

// NewLoggingHooks wraps hooks so that each entry, exit, guard evaluation, and
// action is logged through the given slog logger. A nil logger falls back to
// slog.Default().
func NewLoggingHooks(hooks Hooks, logger *slog.Logger) *LoggingHooks {
	if logger == nil {
		logger = slog.Default()
	}

	return &LoggingHooks{
		hooks:  hooks,
		logger: logger,
	}
}

func (h *LoggingHooks) OnEntry(ctx context.Context, state State) {
	h.logger.DebugContext(ctx, "Hook entry", "state", string(state))
	h.hooks.OnEntry(ctx, state)
}

func (h *LoggingHooks) OnExit(ctx context.Context, state State) {
	h.logger.DebugContext(ctx, "Hook exit", "state", string(state))
	h.hooks.OnExit(ctx, state)
}

func (h *LoggingHooks) Guard(ctx context.Context, source State, event Event, guard GuardID) bool {
	admitted := h.hooks.Guard(ctx, source, event, guard)
	h.logger.DebugContext(ctx, "Guard evaluated",
		"source", string(source),
		"event", string(event),
		"guard", string(guard),
		"admitted", admitted,
	)

	return admitted
}

func (h *LoggingHooks) Action(ctx context.Context, source State, event Event, action ActionID) {
	h.logger.DebugContext(ctx, "Action executed",
		"source", string(source),
		"event", string(event),
		"action", string(action),
	)
	h.hooks.Action(ctx, source, event, action)
}
