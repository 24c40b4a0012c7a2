package hsm

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	ErrNilChart = errors.New("chart cannot be nil")
	ErrNilHooks = errors.New("hooks cannot be nil")

	// ErrChartNameRequired indicates that a chart name is required.
	ErrChartNameRequired = errors.New("chart name is required")
	// ErrInitialStateRequired indicates that the root initial target is missing.
	ErrInitialStateRequired = errors.New("root initial state is required")
	// ErrInitialStateNotFound indicates that the root initial target does not exist.
	ErrInitialStateNotFound = errors.New("root initial state does not exist")
	// ErrStateRequired indicates that at least one state is required.
	ErrStateRequired = errors.New("at least one state is required")
	// ErrStateNameRequired indicates that a state name is required.
	ErrStateNameRequired = errors.New("state name is required")
	// ErrDuplicateStateName indicates that a duplicate state name was found.
	ErrDuplicateStateName = errors.New("duplicate state name")
	// ErrReservedStateName indicates that a chart declares a pseudostate name.
	ErrReservedStateName = errors.New("state name is reserved for a pseudostate")
	// ErrParentNotFound indicates that a state's parent does not exist.
	ErrParentNotFound = errors.New("parent state does not exist")
	// ErrContainmentCycle indicates that the parent relation is not a tree.
	ErrContainmentCycle = errors.New("containment relation contains a cycle")
	// ErrDefaultSubstateNotFound indicates that a default substate does not exist.
	ErrDefaultSubstateNotFound = errors.New("default substate does not exist")
	// ErrDefaultSubstateNotChild indicates that a default substate is not a
	// direct child of its composite.
	ErrDefaultSubstateNotChild = errors.New("default substate is not a child of its composite")
	// ErrCompositeWithoutDefault indicates that a composite state has no
	// default substate to descend into.
	ErrCompositeWithoutDefault = errors.New("composite state has no default substate")
	// ErrTransitionSourceRequired indicates that a transition source is required.
	ErrTransitionSourceRequired = errors.New("transition source state is required")
	// ErrTransitionEventRequired indicates that a transition trigger event is required.
	ErrTransitionEventRequired = errors.New("transition trigger event is required")
	// ErrTransitionSourceNotFound indicates that a transition source does not exist.
	ErrTransitionSourceNotFound = errors.New("transition source state does not exist")
	// ErrTransitionTargetNotFound indicates that a transition target does not exist.
	ErrTransitionTargetNotFound = errors.New("transition target state does not exist")
	// ErrInternalWithTarget indicates that an internal transition declares a target.
	ErrInternalWithTarget = errors.New("internal transition cannot declare a target")
	// ErrExternalWithoutTarget indicates that an external transition has no target.
	ErrExternalWithoutTarget = errors.New("external transition requires a target")
)

// ChartError wraps an error with the name of the offending chart.
type ChartError struct {
	Chart string
	Err   error
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("chart %s: %v", e.Chart, e.Err)
}

func (e *ChartError) Unwrap() error {
	return e.Err
}

// StateError wraps an error with the name of the offending state.
type StateError struct {
	State State
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// TransitionError wraps an error with transition context.
type TransitionError struct {
	Source State
	Event  Event
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s on %s: %v", e.Source, e.Event, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// WrapStateError wraps an error with state context.
func WrapStateError(state State, err error) error {
	if err == nil {
		return nil
	}

	return &StateError{
		State: state,
		Err:   err,
	}
}

// WrapTransitionError wraps an error with transition context.
func WrapTransitionError(source State, event Event, err error) error {
	if err == nil {
		return nil
	}

	return &TransitionError{
		Source: source,
		Event:  event,
		Err:    err,
	}
}
