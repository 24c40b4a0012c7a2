// Package visualizer generates Mermaid state diagrams from chart definitions.
//
//nolint:varnamelen // short names idiomatic for builders
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandrogort/state-surf/hsm"
)

// Visualizer errors.
var (
	ErrDefinitionNil  = errors.New("definition cannot be nil")
	ErrNoInitialState = errors.New("definition must have a root initial state")
)

// GenerateMermaid converts a chart definition to a Mermaid state diagram.
func GenerateMermaid(def *hsm.Definition) (string, error) {
	return GenerateMermaidWithOptions(def, DefaultOptions())
}

// GenerateMermaidFromFile loads a chart definition from a YAML file and
// generates a Mermaid diagram.
func GenerateMermaidFromFile(path string) (string, error) {
	def, err := hsm.LoadDefinition(path)
	if err != nil {
		return "", fmt.Errorf("failed to load chart: %w", err)
	}

	return GenerateMermaid(def)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
// Composite states render as nested blocks with their own initial markers;
// internal transitions render as description lines on their state.
func GenerateMermaidWithOptions(def *hsm.Definition, opts Options) (string, error) {
	if def == nil {
		return "", ErrDefinitionNil
	}

	if def.Initial == "" {
		return "", ErrNoInitialState
	}

	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("stateDiagram-%s\n", opts.Direction))

	// Group states under their parents to emit nested blocks.
	children := make(map[hsm.State][]hsm.State)
	byName := make(map[hsm.State]hsm.StateDef, len(def.States))

	for _, s := range def.States {
		byName[s.Name] = s
		children[s.Parent] = append(children[s.Parent], s.Name)
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", def.Initial))

	var writeState func(name hsm.State, indent string)
	writeState = func(name hsm.State, indent string) {
		kids := children[name]
		if len(kids) == 0 {
			sb.WriteString(fmt.Sprintf("%sstate %s\n", indent, name))

			return
		}

		sb.WriteString(fmt.Sprintf("%sstate %s {\n", indent, name))

		if initial := byName[name].Initial; initial != "" {
			sb.WriteString(fmt.Sprintf("%s    [*] --> %s\n", indent, initial))
		}

		for _, kid := range kids {
			writeState(kid, indent+"    ")
		}

		sb.WriteString(indent + "}\n")
	}

	for _, top := range children[hsm.State("")] {
		writeState(top, "    ")
	}

	highlightMap := make(map[hsm.State]bool)
	for _, state := range opts.HighlightPath {
		highlightMap[state] = true
	}

	for _, t := range def.Transitions {
		if t.Internal {
			sb.WriteString(fmt.Sprintf("    %s : %s%s\n", t.Source, t.Event, transitionSuffix(t, opts)))

			continue
		}

		sb.WriteString(fmt.Sprintf("    %s --> %s : %s%s\n", t.Source, t.Target, t.Event, transitionSuffix(t, opts)))
	}

	// The terminate trigger fires from anywhere; draw it from each top-level
	// state into the final marker.
	if def.Terminate != "" {
		for _, top := range children[hsm.State("")] {
			sb.WriteString(fmt.Sprintf("    %s --> [*] : %s\n", top, def.Terminate))
		}
	}

	for state := range highlightMap {
		sb.WriteString(fmt.Sprintf("    class %s highlighted\n", state))
	}

	if len(highlightMap) > 0 {
		sb.WriteString("\n")
		sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
	}

	sb.WriteString("```\n")

	return sb.String(), nil
}

// transitionSuffix renders the optional guard and action annotations.
func transitionSuffix(t hsm.TransitionDef, opts Options) string {
	var sb strings.Builder

	if opts.ShowGuards && t.Guard != "" {
		sb.WriteString(fmt.Sprintf(" [%s]", t.Guard))
	}

	if opts.ShowActions && t.Action != "" {
		sb.WriteString(fmt.Sprintf(" / %s", t.Action))
	}

	return sb.String()
}
