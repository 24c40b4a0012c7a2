package hsm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandrogort/state-surf/hsm"
)

func TestDefinitionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(def *hsm.Definition)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(def *hsm.Definition) {},
			wantErr: nil,
		},
		{
			name: "missing name",
			mutate: func(def *hsm.Definition) {
				def.Name = ""
			},
			wantErr: hsm.ErrChartNameRequired,
		},
		{
			name: "no states",
			mutate: func(def *hsm.Definition) {
				def.States = nil
			},
			wantErr: hsm.ErrStateRequired,
		},
		{
			name: "missing initial",
			mutate: func(def *hsm.Definition) {
				def.Initial = ""
			},
			wantErr: hsm.ErrInitialStateRequired,
		},
		{
			name: "unknown initial",
			mutate: func(def *hsm.Definition) {
				def.Initial = "nowhere"
			},
			wantErr: hsm.ErrInitialStateNotFound,
		},
		{
			name: "unnamed state",
			mutate: func(def *hsm.Definition) {
				def.States = append(def.States, hsm.StateDef{})
			},
			wantErr: hsm.ErrStateNameRequired,
		},
		{
			name: "duplicate state",
			mutate: func(def *hsm.Definition) {
				def.States = append(def.States, hsm.StateDef{Name: "stopped"})
			},
			wantErr: hsm.ErrDuplicateStateName,
		},
		{
			name: "reserved state name",
			mutate: func(def *hsm.Definition) {
				def.States = append(def.States, hsm.StateDef{Name: hsm.Final})
			},
			wantErr: hsm.ErrReservedStateName,
		},
		{
			name: "unknown parent",
			mutate: func(def *hsm.Definition) {
				def.States = append(def.States, hsm.StateDef{Name: "extra", Parent: "ghost"})
			},
			wantErr: hsm.ErrParentNotFound,
		},
		{
			name: "containment cycle",
			mutate: func(def *hsm.Definition) {
				def.States = append(def.States,
					hsm.StateDef{Name: "a", Parent: "b", Initial: "b"},
					hsm.StateDef{Name: "b", Parent: "a", Initial: "a"},
				)
			},
			wantErr: hsm.ErrContainmentCycle,
		},
		{
			name: "unknown default substate",
			mutate: func(def *hsm.Definition) {
				def.States[1].Initial = "ghost"
			},
			wantErr: hsm.ErrDefaultSubstateNotFound,
		},
		{
			name: "default substate not a child",
			mutate: func(def *hsm.Definition) {
				def.States[1].Initial = "stopped"
			},
			wantErr: hsm.ErrDefaultSubstateNotChild,
		},
		{
			name: "composite without default",
			mutate: func(def *hsm.Definition) {
				def.States[1].Initial = ""
			},
			wantErr: hsm.ErrCompositeWithoutDefault,
		},
		{
			name: "transition without source",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions, hsm.TransitionDef{Event: "X", Target: "stopped"})
			},
			wantErr: hsm.ErrTransitionSourceRequired,
		},
		{
			name: "transition without event",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions, hsm.TransitionDef{Source: "stopped", Target: "playing"})
			},
			wantErr: hsm.ErrTransitionEventRequired,
		},
		{
			name: "transition from unknown state",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions, hsm.TransitionDef{Source: "ghost", Event: "X", Target: "stopped"})
			},
			wantErr: hsm.ErrTransitionSourceNotFound,
		},
		{
			name: "transition to unknown state",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions, hsm.TransitionDef{Source: "stopped", Event: "X", Target: "ghost"})
			},
			wantErr: hsm.ErrTransitionTargetNotFound,
		},
		{
			name: "internal transition with target",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions,
					hsm.TransitionDef{Source: "stopped", Event: "X", Target: "playing", Internal: true})
			},
			wantErr: hsm.ErrInternalWithTarget,
		},
		{
			name: "external transition without target",
			mutate: func(def *hsm.Definition) {
				def.Transitions = append(def.Transitions, hsm.TransitionDef{Source: "stopped", Event: "X"})
			},
			wantErr: hsm.ErrExternalWithoutTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := playerDefinition()
			tt.mutate(def)

			err := def.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompileRejectsNilDefinition(t *testing.T) {
	t.Parallel()

	_, err := hsm.Compile(nil)
	require.ErrorIs(t, err, hsm.ErrNilChart)
}

func TestCompiledChartSurface(t *testing.T) {
	t.Parallel()

	chart, err := hsm.Compile(playerDefinition())
	require.NoError(t, err)

	require.Equal(t, "player", chart.Name())
	require.Equal(t, hsm.Event("SHUTDOWN"), chart.Terminate())
	require.True(t, chart.HasState("normal"))
	require.False(t, chart.HasState("ghost"))
	require.False(t, chart.HasState(hsm.Initial))
}

func TestMustCompilePanicsOnInvalidDefinition(t *testing.T) {
	t.Parallel()

	def := playerDefinition()
	def.Initial = "ghost"

	require.Panics(t, func() {
		hsm.MustCompile(def)
	})
}

func TestTransitionDefKind(t *testing.T) {
	t.Parallel()

	require.Equal(t, hsm.KindExternal, hsm.TransitionDef{Source: "a", Event: "X", Target: "b"}.Kind())
	require.Equal(t, hsm.KindInternal, hsm.TransitionDef{Source: "a", Event: "X", Internal: true}.Kind())
	require.Equal(t, "external", hsm.KindExternal.String())
	require.Equal(t, "internal", hsm.KindInternal.String())
}

func TestDefinitionEventAndStateOrder(t *testing.T) {
	t.Parallel()

	def := &hsm.Definition{
		Name:      "ordering",
		Initial:   "s1",
		Terminate: "TERMINATE",
		States: []hsm.StateDef{
			{Name: "s11", Parent: "s1"},
			{Name: "s2"},
			{Name: "s1", Initial: "s11"},
		},
		Transitions: []hsm.TransitionDef{
			{Source: "s2", Event: "B", Target: "s1"},
			{Source: "s1", Event: "A", Target: "s2"},
			{Source: "s1", Event: "B", Target: "s2"},
		},
	}
	require.NoError(t, def.Validate())

	require.Equal(t, []hsm.Event{"A", "B", "TERMINATE"}, def.Events())

	// Natural ordering: s2 before s11.
	require.Equal(t, []hsm.State{"s1", "s2", "s11"}, def.StateNames())
}
