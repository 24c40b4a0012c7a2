package visualizer

import "github.com/sandrogort/state-surf/hsm"

// Options configures the visualization output.
type Options struct {
	// Direction is appended to the diagram header as stateDiagram-<Direction>;
	// "v2" selects Mermaid's v2 state diagram, which renders top-down.
	Direction string

	// ShowGuards shows guard identifiers as transition labels.
	ShowGuards bool

	// ShowActions shows action identifiers as transition labels.
	ShowActions bool

	// HighlightPath highlights the given states, typically a recorded
	// dispatch trace.
	HighlightPath []hsm.State
}

// DefaultOptions returns the default visualization options.
func DefaultOptions() Options {
	return Options{
		Direction:   "v2",
		ShowGuards:  true,
		ShowActions: true,
	}
}
