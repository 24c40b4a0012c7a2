package hsm

import "context"

// Hooks is the contract a host implements to observe and steer a machine.
// All four operations are synchronous and run on the dispatching goroutine.
// Implementations must not call back into the machine; guard results and
// action completion are treated as definitive.
type Hooks interface {
	// OnEntry is called once per entered state, in outer-to-inner order.
	OnEntry(ctx context.Context, state State)

	// OnExit is called once per exited state, in inner-to-outer order.
	OnExit(ctx context.Context, state State)

	// Guard evaluates the named guard for a handler defined on source.
	// Returning false makes the engine continue its ancestor search.
	Guard(ctx context.Context, source State, event Event, guard GuardID) bool

	// Action executes the named action. For transition actions it runs
	// between the exits and the entries; host state mutated here is visible
	// to later guard evaluations.
	Action(ctx context.Context, source State, event Event, action ActionID)
}

// NopHooks implements Hooks with no behavior. Embed it to implement only a
// subset of the callbacks; its Guard admits every handler.
type NopHooks struct{}

func (NopHooks) OnEntry(ctx context.Context, state State) {}

func (NopHooks) OnExit(ctx context.Context, state State) {}

func (NopHooks) Guard(ctx context.Context, source State, event Event, guard GuardID) bool {
	return true
}

func (NopHooks) Action(ctx context.Context, source State, event Event, action ActionID) {}
