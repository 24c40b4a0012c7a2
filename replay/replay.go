// Package replay runs scripted event sequences against hierarchical state
// machines and reports the states they settle in. Scripts are authored in
// YAML next to their charts; batches run concurrently on a worker pool, one
// fresh machine per script.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sandrogort/state-surf/hsm"
)

// Replay errors.
var (
	ErrNilScript          = errors.New("script cannot be nil")
	ErrScriptNameRequired = errors.New("script name is required")
	ErrNoSteps            = errors.New("script has no steps")
)

// Step is one scripted dispatch. ExpectState is optional; when set, the
// run records whether the machine settled there.
type Step struct {
	Event       hsm.Event `json:"event"                 yaml:"event"`
	ExpectState hsm.State `json:"expectState,omitempty" yaml:"expectState,omitempty"`
}

// Script is a named sequence of events to dispatch into a fresh machine.
type Script struct {
	Name  string `json:"name"  yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Validate checks that the script is runnable.
func (s *Script) Validate() error {
	if s == nil {
		return ErrNilScript
	}

	if s.Name == "" {
		return ErrScriptNameRequired
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("script %s: %w", s.Name, ErrNoSteps)
	}

	return nil
}

// LoadScript loads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read script file %q: %w", path, err)
	}

	return LoadScriptFromBytes(data)
}

// LoadScriptFromBytes loads a script from YAML bytes.
func LoadScriptFromBytes(data []byte) (*Script, error) {
	var script Script

	err := yaml.Unmarshal(data, &script)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = script.Validate()
	if err != nil {
		return nil, err
	}

	return &script, nil
}

// StepResult records the machine's state after one scripted dispatch.
type StepResult struct {
	Event    hsm.Event
	State    hsm.State
	Expected hsm.State
	Matched  bool
}

// Result is the outcome of one script run.
type Result struct {
	RunID      string
	Script     string
	Final      hsm.State
	Terminated bool
	Steps      []StepResult
	Mismatches int
}

// HooksFactory builds the host hooks for one machine. Each run gets its own
// hooks so scripts never share host state.
type HooksFactory func() hsm.Hooks

// Run executes one script on a fresh machine over the chart and returns the
// recorded outcomes. A nil factory runs with no-op hooks.
func Run(ctx context.Context, chart *hsm.Chart, script *Script, factory HooksFactory, opts ...hsm.Option) (*Result, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	if factory == nil {
		factory = func() hsm.Hooks { return hsm.NopHooks{} }
	}

	machine, err := hsm.NewMachine(chart, factory(), opts...)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", script.Name, err)
	}

	machine.Start(ctx)

	result := &Result{
		RunID:  uuid.NewString(),
		Script: script.Name,
		Steps:  make([]StepResult, 0, len(script.Steps)),
	}

	for _, step := range script.Steps {
		machine.Dispatch(ctx, step.Event)

		state := machine.State()
		matched := step.ExpectState == "" || step.ExpectState == state

		if !matched {
			result.Mismatches++
		}

		result.Steps = append(result.Steps, StepResult{
			Event:    step.Event,
			State:    state,
			Expected: step.ExpectState,
			Matched:  matched,
		})
	}

	result.Final = machine.State()
	result.Terminated = machine.Terminated()

	return result, nil
}

// Runner executes script batches on a bounded worker pool.
type Runner struct {
	pool pond.Pool
}

// NewRunner creates a runner with the given worker count.
func NewRunner(workers int) *Runner {
	return &Runner{
		pool: pond.NewPool(workers),
	}
}

// RunAll executes every script concurrently, each on its own machine, and
// returns the results in script order.
func (r *Runner) RunAll(
	ctx context.Context,
	chart *hsm.Chart,
	scripts []*Script,
	factory HooksFactory,
) ([]*Result, error) {
	results := make([]*Result, len(scripts))
	runErrs := make([]error, len(scripts))
	tasks := make([]pond.Task, len(scripts))

	for i, script := range scripts {
		tasks[i] = r.pool.Submit(func() {
			results[i], runErrs[i] = Run(ctx, chart, script, factory)
		})
	}

	for _, task := range tasks {
		_ = task.Wait()
	}

	if err := errors.Join(runErrs...); err != nil {
		return nil, err
	}

	return results, nil
}

// Close stops the worker pool and waits for in-flight runs.
func (r *Runner) Close() {
	r.pool.StopAndWait()
}
