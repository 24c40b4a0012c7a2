// Command statesurf drives hierarchical state machine charts from the
// terminal: simulate dispatches events interactively, visualize renders a
// Mermaid diagram, and validate checks a chart definition.
//
// Usage:
//
//	statesurf simulate [-chart chart.yaml]
//	statesurf visualize [-chart chart.yaml]
//	statesurf validate -chart chart.yaml
//
// Without -chart, the built-in benchmark chart is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sandrogort/state-surf/cli"
	"github.com/sandrogort/state-surf/hsm"
	"github.com/sandrogort/state-surf/samek"
	"github.com/sandrogort/state-surf/visualizer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("statesurf failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: statesurf <simulate|visualize|validate> [-chart chart.yaml]")
	}

	verb := args[0]

	flags := flag.NewFlagSet(verb, flag.ContinueOnError)
	chartPath := flags.String("chart", "", "path to a YAML chart definition (default: built-in benchmark chart)")

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	def, err := loadDefinition(*chartPath)
	if err != nil {
		return err
	}

	switch verb {
	case "simulate":
		return simulate(def)
	case "visualize":
		return visualize(def)
	case "validate":
		fmt.Printf("chart %s: OK\n", def.Name)

		return nil
	default:
		return fmt.Errorf("unknown command %q", verb)
	}
}

func loadDefinition(path string) (*hsm.Definition, error) {
	if path == "" {
		return samek.Definition(), nil
	}

	return hsm.LoadDefinition(path)
}

func visualize(def *hsm.Definition) error {
	out, err := visualizer.GenerateMermaid(def)
	if err != nil {
		return err
	}

	fmt.Print(out)

	return nil
}

// promptHooks narrates every callback and asks the user to decide guards.
type promptHooks struct{}

func (promptHooks) OnEntry(_ context.Context, state hsm.State) {
	fmt.Printf("  enter %s\n", state)
}

func (promptHooks) OnExit(_ context.Context, state hsm.State) {
	fmt.Printf("  exit  %s\n", state)
}

func (promptHooks) Guard(_ context.Context, source hsm.State, event hsm.Event, guard hsm.GuardID) bool {
	admitted, err := cli.PromptConfirm(fmt.Sprintf("guard %s on %s/%s", guard, source, event))
	if err != nil {
		return false
	}

	return admitted
}

func (promptHooks) Action(_ context.Context, source hsm.State, event hsm.Event, action hsm.ActionID) {
	fmt.Printf("  run   %s (from %s)\n", action, source)
}

func simulate(def *hsm.Definition) error {
	chart, err := hsm.Compile(def)
	if err != nil {
		return err
	}

	machine, err := hsm.NewMachine(chart, promptHooks{})
	if err != nil {
		return err
	}

	fmt.Print(cli.Banner(fmt.Sprintf("statesurf simulator\nchart: %s", def.Name)))

	ctx := context.Background()
	machine.Start(ctx)

	events := def.Events()

	for !machine.Terminated() {
		event, err := cli.SelectEvent(fmt.Sprintf("state %s, next event", machine.State()), events)
		if err != nil {
			if errors.Is(err, cli.ErrQuit) {
				return nil
			}

			return err
		}

		machine.Dispatch(ctx, event)
		fmt.Printf("state: %s\n", machine.State())
	}

	fmt.Println("machine terminated")

	return nil
}
