package hsm_test

import (
	"context"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/sandrogort/state-surf/hsm"
	"github.com/sandrogort/state-surf/hsm/hsmtest"
)

func TestMachineWithLogger(t *testing.T) {
	t.Parallel()

	chart, err := hsm.Compile(playerDefinition())
	require.NoError(t, err)

	rec := hsmtest.NewRecordingHooks()
	logger := hsm.NewLoggerWith(slogt.New(t))

	machine, err := hsm.NewMachine(chart, rec, hsm.WithLogger(logger), hsm.WithTracing(false))
	require.NoError(t, err)

	ctx := context.Background()
	machine.Start(ctx)
	machine.Dispatch(ctx, "PLAY")
	machine.Dispatch(ctx, "MARK")
	machine.Dispatch(ctx, "NOPE")
	machine.Dispatch(ctx, "SHUTDOWN")

	// Logging must not alter the observable behavior.
	require.True(t, machine.Terminated())
	require.Equal(t, hsm.Final, machine.State())
	require.Equal(t, []hsm.ActionID{"bookmark"}, rec.Actions)
}

func TestLoggingHooksDelegates(t *testing.T) {
	t.Parallel()

	chart, err := hsm.Compile(playerDefinition())
	require.NoError(t, err)

	rec := hsmtest.NewRecordingHooks()
	rec.GuardFunc = func(_ hsm.State, _ hsm.Event, _ hsm.GuardID) bool {
		return true
	}

	machine, err := hsm.NewMachine(chart, hsm.NewLoggingHooks(rec, slogt.New(t)))
	require.NoError(t, err)

	ctx := context.Background()
	machine.Start(ctx)
	machine.Dispatch(ctx, "PLAY")
	machine.Dispatch(ctx, "RATE")

	require.Equal(t, []hsm.GuardID{"canFast"}, rec.GuardCalls)
	require.Equal(t, hsm.State("fast"), machine.State())
	require.Equal(t,
		[]hsm.State{"stopped", "playing", "normal", "fast"},
		rec.Entries)
}

func TestLoggingHooksDefaultLogger(t *testing.T) {
	t.Parallel()

	hooks := hsm.NewLoggingHooks(hsmtest.NewRecordingHooks(), nil)
	require.NotNil(t, hooks)

	// Exercise the wrapped callbacks directly.
	ctx := context.Background()
	hooks.OnEntry(ctx, "a")
	hooks.OnExit(ctx, "a")
	require.True(t, hooks.Guard(ctx, "a", "X", "g"))
	hooks.Action(ctx, "a", "X", "act")
}
