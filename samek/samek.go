// Package samek provides the canonical s/s1/s11/s2/s21/s211 benchmark chart
// described by Samek's hierarchical state machine example, together with a
// convenience constructor for machines running it. The chart exercises every
// engine feature: nested composites, default-substate descent, guarded
// transitions resolved along the ancestor chain, internal transitions,
// external self-transitions, and the terminate trigger.
package samek

import (
	"github.com/sandrogort/state-surf/hsm"
)

// States of the benchmark chart.
const (
	StateS    hsm.State = "s"
	StateS1   hsm.State = "s1"
	StateS11  hsm.State = "s11"
	StateS2   hsm.State = "s2"
	StateS21  hsm.State = "s21"
	StateS211 hsm.State = "s211"
)

// Events of the benchmark chart.
const (
	EventA         hsm.Event = "A"
	EventB         hsm.Event = "B"
	EventC         hsm.Event = "C"
	EventD         hsm.Event = "D"
	EventE         hsm.Event = "E"
	EventF         hsm.Event = "F"
	EventG         hsm.Event = "G"
	EventH         hsm.Event = "H"
	EventI         hsm.Event = "I"
	EventTerminate hsm.Event = "TERMINATE"
)

// Guard identifiers evaluated by benchmark hosts against their foo flag.
const (
	GuardIsFooTrue  hsm.GuardID = "isFooTrue"
	GuardIsFooFalse hsm.GuardID = "isFooFalse"
)

// Action identifiers executed by benchmark hosts against their foo flag.
const (
	ActionSetFooFalse hsm.ActionID = "setFooFalse"
	ActionSetFooTrue  hsm.ActionID = "setFooTrue"
)

// Definition returns the benchmark chart definition. The initial transition
// targets s2 and clears the host's foo flag; s1 shadows the guarded internal
// I handler on s with an unguarded one, so I dispatched under s1 evaluates no
// guards at all.
func Definition() *hsm.Definition {
	return &hsm.Definition{
		Name:          "samek",
		Initial:       StateS2,
		InitialAction: ActionSetFooFalse,
		Terminate:     EventTerminate,
		States: []hsm.StateDef{
			{Name: StateS, Initial: StateS1},
			{Name: StateS1, Parent: StateS, Initial: StateS11},
			{Name: StateS11, Parent: StateS1},
			{Name: StateS2, Parent: StateS, Initial: StateS21},
			{Name: StateS21, Parent: StateS2, Initial: StateS211},
			{Name: StateS211, Parent: StateS21},
		},
		Transitions: []hsm.TransitionDef{
			{Source: StateS, Event: EventE, Target: StateS11},
			{Source: StateS, Event: EventI, Guard: GuardIsFooTrue, Action: ActionSetFooFalse, Internal: true},

			{Source: StateS1, Event: EventA, Target: StateS1},
			{Source: StateS1, Event: EventB, Target: StateS11},
			{Source: StateS1, Event: EventC, Target: StateS2},
			{Source: StateS1, Event: EventD, Guard: GuardIsFooFalse, Action: ActionSetFooTrue, Target: StateS},
			{Source: StateS1, Event: EventF, Target: StateS211},
			{Source: StateS1, Event: EventI, Internal: true},

			{Source: StateS11, Event: EventD, Guard: GuardIsFooTrue, Action: ActionSetFooFalse, Target: StateS1},
			{Source: StateS11, Event: EventG, Target: StateS211},
			{Source: StateS11, Event: EventH, Target: StateS},

			{Source: StateS2, Event: EventC, Target: StateS1},
			{Source: StateS2, Event: EventF, Target: StateS11},
			{Source: StateS2, Event: EventI, Guard: GuardIsFooFalse, Action: ActionSetFooTrue, Internal: true},

			{Source: StateS21, Event: EventA, Target: StateS21},
			{Source: StateS21, Event: EventB, Target: StateS211},
			{Source: StateS21, Event: EventG, Target: StateS1},

			{Source: StateS211, Event: EventD, Target: StateS21},
			{Source: StateS211, Event: EventH, Target: StateS},
		},
	}
}

var chart = hsm.MustCompile(Definition())

// Chart returns the compiled benchmark chart, shared by all machines.
func Chart() *hsm.Chart {
	return chart
}

// New builds a machine running the benchmark chart.
func New(hooks hsm.Hooks, opts ...hsm.Option) (*hsm.Machine, error) {
	return hsm.NewMachine(chart, hooks, opts...)
}
