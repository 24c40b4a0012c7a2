// Package hsmtest provides testing utilities for hierarchical state machine
// hosts: a recording hooks implementation and per-dispatch trace assertions.
package hsmtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandrogort/state-surf/hsm"
)

// RecordingHooks records every callback a machine makes, in order. Guard and
// action behavior is pluggable; by default every guard admits and actions
// only record.
type RecordingHooks struct {
	Entries    []hsm.State
	Exits      []hsm.State
	Actions    []hsm.ActionID
	GuardCalls []hsm.GuardID

	// GuardFunc evaluates guards after the call is recorded. Nil admits all.
	GuardFunc func(source hsm.State, event hsm.Event, guard hsm.GuardID) bool

	// ActionFunc runs actions after the call is recorded. Nil does nothing.
	ActionFunc func(source hsm.State, event hsm.Event, action hsm.ActionID)
}

// NewRecordingHooks creates a recorder with empty logs.
func NewRecordingHooks() *RecordingHooks {
	r := &RecordingHooks{}
	r.ResetLogs()

	return r
}

func (r *RecordingHooks) OnEntry(ctx context.Context, state hsm.State) {
	r.Entries = append(r.Entries, state)
}

func (r *RecordingHooks) OnExit(ctx context.Context, state hsm.State) {
	r.Exits = append(r.Exits, state)
}

func (r *RecordingHooks) Guard(ctx context.Context, source hsm.State, event hsm.Event, guard hsm.GuardID) bool {
	r.GuardCalls = append(r.GuardCalls, guard)

	if r.GuardFunc == nil {
		return true
	}

	return r.GuardFunc(source, event, guard)
}

func (r *RecordingHooks) Action(ctx context.Context, source hsm.State, event hsm.Event, action hsm.ActionID) {
	r.Actions = append(r.Actions, action)

	if r.ActionFunc != nil {
		r.ActionFunc(source, event, action)
	}
}

// ResetLogs clears the recorded callback logs without touching the guard and
// action behavior.
func (r *RecordingHooks) ResetLogs() {
	r.Entries = []hsm.State{}
	r.Exits = []hsm.State{}
	r.Actions = []hsm.ActionID{}
	r.GuardCalls = []hsm.GuardID{}
}

// Step is the expected observable trace of a single dispatch.
type Step struct {
	Event   hsm.Event
	Exits   []hsm.State
	Entries []hsm.State
	Actions []hsm.ActionID
	Guards  []hsm.GuardID
	State   hsm.State
}

// ExpectDispatch dispatches the step's event and asserts the recorded trace
// and resulting state, then clears the recorder's logs. Nil expectation
// slices assert that no callbacks of that kind occurred.
func ExpectDispatch(t *testing.T, m *hsm.Machine, rec *RecordingHooks, step Step) {
	t.Helper()

	m.Dispatch(context.Background(), step.Event)

	requireTrace(t, "exits", step.Exits, rec.Exits)
	requireTrace(t, "entries", step.Entries, rec.Entries)
	requireTrace(t, "actions", step.Actions, rec.Actions)
	requireTrace(t, "guards", step.Guards, rec.GuardCalls)

	require.Equal(t, step.State, m.State(), "event %s: resulting state", step.Event)
	require.False(t, m.Terminated(), "event %s: machine should not be terminated", step.Event)

	rec.ResetLogs()
}

func requireTrace[T any](t *testing.T, kind string, expected, recorded []T) {
	t.Helper()

	if expected == nil {
		require.Empty(t, recorded, "%s should be empty", kind)

		return
	}

	require.Equal(t, expected, recorded, "%s mismatch", kind)
}
