package hsm

import (
	"fmt"

	"facette.io/natsort"
)

// Definition is the authorable description of a chart: states, their parents
// and default substates, the transitions between them, the synthetic root
// initial transition, and the terminate trigger.
type Definition struct {
	Name          string          `json:"name"          yaml:"name"`
	Initial       State           `json:"initial"       yaml:"initial"`
	InitialAction ActionID        `json:"initialAction" yaml:"initialAction"`
	Terminate     Event           `json:"terminate"     yaml:"terminate"`
	States        []StateDef      `json:"states"        yaml:"states"`
	Transitions   []TransitionDef `json:"transitions"   yaml:"transitions"`
}

// StateDef defines a single state. Parent is empty for top-level states.
// Initial names the default substate taken when the state is entered without
// an explicit deeper target; it must be set on every composite state.
type StateDef struct {
	Name    State `json:"name"              yaml:"name"`
	Parent  State `json:"parent,omitempty"  yaml:"parent,omitempty"`
	Initial State `json:"initial,omitempty" yaml:"initial,omitempty"`
}

// TransitionDef defines a transition rule. Guard and Action are optional.
// Internal transitions carry no target and cause no exits or entries.
type TransitionDef struct {
	Source   State    `json:"source"             yaml:"source"`
	Event    Event    `json:"event"              yaml:"event"`
	Guard    GuardID  `json:"guard,omitempty"    yaml:"guard,omitempty"`
	Action   ActionID `json:"action,omitempty"   yaml:"action,omitempty"`
	Target   State    `json:"target,omitempty"   yaml:"target,omitempty"`
	Internal bool     `json:"internal,omitempty" yaml:"internal,omitempty"`
}

// Kind returns the transition's classification.
func (t TransitionDef) Kind() Kind {
	if t.Internal {
		return KindInternal
	}

	return KindExternal
}

// Events returns every trigger event named by the definition, including the
// terminate event, in natural sort order.
func (d *Definition) Events() []Event {
	seen := make(map[Event]bool)
	names := make([]string, 0, len(d.Transitions)+1)

	for _, t := range d.Transitions {
		if t.Event != "" && !seen[t.Event] {
			seen[t.Event] = true
			names = append(names, string(t.Event))
		}
	}

	if d.Terminate != "" && !seen[d.Terminate] {
		names = append(names, string(d.Terminate))
	}

	natsort.Sort(names)

	events := make([]Event, len(names))
	for i, n := range names {
		events[i] = Event(n)
	}

	return events
}

// StateNames returns the declared state names in natural sort order, so that
// s2 sorts before s11.
func (d *Definition) StateNames() []State {
	names := make([]string, len(d.States))
	for i, s := range d.States {
		names[i] = string(s.Name)
	}

	natsort.Sort(names)

	states := make([]State, len(names))
	for i, n := range names {
		states[i] = State(n)
	}

	return states
}

// Validate checks that the definition describes a well-formed chart.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrChartNameRequired
	}

	if len(d.States) == 0 {
		return d.wrap(ErrStateRequired)
	}

	if d.Initial == "" {
		return d.wrap(ErrInitialStateRequired)
	}

	byName := make(map[State]StateDef, len(d.States))

	for _, s := range d.States {
		if s.Name == "" {
			return d.wrap(ErrStateNameRequired)
		}

		if reserved(s.Name) {
			return d.wrap(WrapStateError(s.Name, ErrReservedStateName))
		}

		if _, dup := byName[s.Name]; dup {
			return d.wrap(WrapStateError(s.Name, ErrDuplicateStateName))
		}

		byName[s.Name] = s
	}

	if _, ok := byName[d.Initial]; !ok {
		return d.wrap(fmt.Errorf("%w: %s", ErrInitialStateNotFound, d.Initial))
	}

	for _, s := range d.States {
		if s.Parent != "" {
			if _, ok := byName[s.Parent]; !ok {
				return d.wrap(WrapStateError(s.Name, fmt.Errorf("%w: %s", ErrParentNotFound, s.Parent)))
			}
		}

		if s.Initial != "" {
			child, ok := byName[s.Initial]
			if !ok {
				return d.wrap(WrapStateError(s.Name, fmt.Errorf("%w: %s", ErrDefaultSubstateNotFound, s.Initial)))
			}

			if child.Parent != s.Name {
				return d.wrap(WrapStateError(s.Name, fmt.Errorf("%w: %s", ErrDefaultSubstateNotChild, s.Initial)))
			}
		}
	}

	// The parent relation must form a tree rooted at the machine itself.
	for _, s := range d.States {
		slow, fast := s, s
		for fast.Parent != "" {
			fast = byName[fast.Parent]
			if fast.Parent == "" {
				break
			}

			fast = byName[fast.Parent]
			slow = byName[slow.Parent]

			if slow.Name == fast.Name {
				return d.wrap(WrapStateError(s.Name, ErrContainmentCycle))
			}
		}
	}

	// Every composite (a state some other state names as parent) needs a
	// default substate, or entry into it could not reach a leaf.
	composite := make(map[State]bool)
	for _, s := range d.States {
		if s.Parent != "" {
			composite[s.Parent] = true
		}
	}

	for _, s := range d.States {
		if composite[s.Name] && s.Initial == "" {
			return d.wrap(WrapStateError(s.Name, ErrCompositeWithoutDefault))
		}
	}

	for _, t := range d.Transitions {
		if t.Source == "" {
			return d.wrap(WrapTransitionError(t.Source, t.Event, ErrTransitionSourceRequired))
		}

		if t.Event == "" {
			return d.wrap(WrapTransitionError(t.Source, t.Event, ErrTransitionEventRequired))
		}

		if _, ok := byName[t.Source]; !ok {
			return d.wrap(WrapTransitionError(t.Source, t.Event, ErrTransitionSourceNotFound))
		}

		if t.Internal {
			if t.Target != "" {
				return d.wrap(WrapTransitionError(t.Source, t.Event, ErrInternalWithTarget))
			}

			continue
		}

		if t.Target == "" {
			return d.wrap(WrapTransitionError(t.Source, t.Event, ErrExternalWithoutTarget))
		}

		if _, ok := byName[t.Target]; !ok {
			return d.wrap(WrapTransitionError(t.Source, t.Event, fmt.Errorf("%w: %s", ErrTransitionTargetNotFound, t.Target)))
		}
	}

	return nil
}

func (d *Definition) wrap(err error) error {
	return &ChartError{Chart: d.Name, Err: err}
}

// handler is one compiled transition rule attached to a (state, event) slot.
type handler struct {
	guard    GuardID
	action   ActionID
	target   int // state index; -1 for internal transitions
	internal bool
}

// stateRecord is the compiled form of one state: parent and default-substate
// indices, depth below the root, and the per-event handler lists.
type stateRecord struct {
	name     State
	parent   int // -1 for top-level states
	initial  int // -1 for leaves
	depth    int
	handlers map[Event][]handler
}

// Chart is the compiled, immutable form of a Definition. States are indexed
// by small integers; the containment tree is a tree of parent indices.
// A Chart is safe for concurrent use by any number of machines.
type Chart struct {
	name          string
	states        []stateRecord
	index         map[State]int
	initial       int
	initialAction ActionID
	terminate     Event
}

// Compile validates a definition and builds its runtime chart.
func Compile(def *Definition) (*Chart, error) {
	if def == nil {
		return nil, ErrNilChart
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	chart := &Chart{
		name:          def.Name,
		states:        make([]stateRecord, len(def.States)),
		index:         make(map[State]int, len(def.States)),
		initialAction: def.InitialAction,
		terminate:     def.Terminate,
	}

	for i, s := range def.States {
		chart.index[s.Name] = i
		chart.states[i] = stateRecord{
			name:     s.Name,
			parent:   -1,
			initial:  -1,
			handlers: make(map[Event][]handler),
		}
	}

	for i, s := range def.States {
		if s.Parent != "" {
			chart.states[i].parent = chart.index[s.Parent]
		}

		if s.Initial != "" {
			chart.states[i].initial = chart.index[s.Initial]
		}
	}

	for i := range chart.states {
		chart.states[i].depth = chart.depth(i)
	}

	for _, t := range def.Transitions {
		src := chart.index[t.Source]

		h := handler{
			guard:    t.Guard,
			action:   t.Action,
			target:   -1,
			internal: t.Internal,
		}
		if !t.Internal {
			h.target = chart.index[t.Target]
		}

		chart.states[src].handlers[t.Event] = append(chart.states[src].handlers[t.Event], h)
	}

	chart.initial = chart.index[def.Initial]

	return chart, nil
}

// MustCompile is like Compile but panics on an invalid definition. Intended
// for charts compiled into the binary.
func MustCompile(def *Definition) *Chart {
	chart, err := Compile(def)
	if err != nil {
		panic(err)
	}

	return chart
}

// Name returns the chart's name.
func (c *Chart) Name() string {
	return c.name
}

// Terminate returns the event that forces a transition to Final, or the empty
// event when the chart has no terminate trigger.
func (c *Chart) Terminate() Event {
	return c.terminate
}

// HasState reports whether the chart declares the given state.
func (c *Chart) HasState(s State) bool {
	_, ok := c.index[s]

	return ok
}

// depth counts containment edges between a state and the root.
func (c *Chart) depth(idx int) int {
	d := 0
	for p := c.states[idx].parent; p >= 0; p = c.states[p].parent {
		d++
	}

	return d
}

// lca returns the index of the least common ancestor of two states, or -1
// when their chains only meet at the root. Both chains are walked to equal
// depth, then stepped in lockstep.
func (c *Chart) lca(a, b int) int {
	for c.states[a].depth > c.states[b].depth {
		a = c.states[a].parent
	}

	for c.states[b].depth > c.states[a].depth {
		b = c.states[b].parent
	}

	for a != b {
		a = c.states[a].parent
		b = c.states[b].parent

		if a < 0 || b < 0 {
			return -1
		}
	}

	return a
}

// pathFromRoot returns the state indices from the outermost ancestor down to
// and including idx.
func (c *Chart) pathFromRoot(idx int) []int {
	path := make([]int, 0, c.states[idx].depth+1)
	for i := idx; i >= 0; i = c.states[i].parent {
		path = append(path, i)
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}
