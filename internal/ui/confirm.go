package ui

import (
	"github.com/pterm/pterm"
)

// Confirmer is the yes/no gate in front of operations with side effects on the device.
type Confirmer interface {
	Confirm(question string) bool
}

// PromptConfirmer asks interactively on the terminal.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(question string) bool {
	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(question).
		WithDefaultValue(false).
		Show()
	if err != nil {
		Warning("Unable to read confirmation: %v", err)
		return false
	}
	return result
}

// AutoConfirmer answers every question with the same value, e.g. for --yes.
type AutoConfirmer struct {
	Answer bool
}

func (c AutoConfirmer) Confirm(question string) bool {
	Debug("%s -> %v", question, c.Answer)
	return c.Answer
}
