package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when prompts are requested without a TTY.
var ErrNotInteractive = errors.New("standard input is not a terminal")

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompter implements the workflow's interaction surface on promptui. Every
// method blocks until the user answers; there are no timeouts.
type Prompter struct{}

// NewPrompter fails fast when no TTY is attached so the run aborts before the
// first prompt rather than mid-wizard.
func NewPrompter() (*Prompter, error) {
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}
	return &Prompter{}, nil
}

// Input collects a single free-text line. Empty input is accepted.
func (p *Prompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{Label: label, AllowEdit: true}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", label, err)
	}
	return value, nil
}

// InputSecret collects a masked line, for credential entry.
func (p *Prompter) InputSecret(label string) (string, error) {
	prompt := promptui.Prompt{Label: label, Mask: '*'}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", label, err)
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question. Declining is not an error.
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt %q: %w", label, err)
	}
	return true, nil
}

// Select asks a single choice from options and returns its index.
func (p *Prompter) Select(label string, options []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: options,
		Size:  selectSize(len(options)),
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("prompt %q: %w", label, err)
	}
	return idx, nil
}

const multiSelectDone = "Done"

// MultiSelect asks for any number of options by re-running a select that
// toggles entries until the Done sentinel is chosen. Returned indices are in
// option order.
func (p *Prompter) MultiSelect(label string, options []string) ([]int, error) {
	selected := make([]bool, len(options))
	cursor := 0
	for {
		items := make([]string, 0, len(options)+1)
		for i, option := range options {
			mark := "[ ]"
			if selected[i] {
				mark = "[x]"
			}
			items = append(items, mark+" "+option)
		}
		items = append(items, multiSelectDone)

		prompt := promptui.Select{
			Label:     label + " (Enter toggles, Done finishes)",
			Items:     items,
			Size:      selectSize(len(items)),
			CursorPos: cursor,
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", label, err)
		}
		if idx == len(options) {
			break
		}
		selected[idx] = !selected[idx]
		cursor = idx
	}

	chosen := make([]int, 0, len(options))
	for i, on := range selected {
		if on {
			chosen = append(chosen, i)
		}
	}
	return chosen, nil
}

func selectSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
