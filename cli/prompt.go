// Package cli provides the interactive prompts used by the statesurf
// simulator.
package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/sandrogort/state-surf/hsm"
)

// ErrQuit is returned by SelectEvent when the user picks the quit item.
var ErrQuit = errors.New("simulation ended by user")

// quitItem is the synthetic first entry of the event selector.
const quitItem = "[Quit]"

// PromptConfirm asks a yes/no question. Aborting counts as no.
func PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// SelectEvent asks the user to pick the next event to dispatch. The list is
// searchable by prefix; the first item quits the simulation.
func SelectEvent(label string, events []hsm.Event) (hsm.Event, error) {
	items := make([]string, 0, len(events)+1)
	items = append(items, quitItem)

	for _, event := range events {
		items = append(items, string(event))
	}

	sel := &promptui.Select{
		Label: label,
		Items: items,
		Searcher: func(input string, index int) bool {
			if index == 0 || input == "" {
				return false
			}

			return strings.HasPrefix(items[index], input)
		},
	}

	idx, value, err := sel.Run()
	if err != nil {
		return "", err
	}

	if idx == 0 {
		return "", ErrQuit
	}

	return hsm.Event(value), nil
}
