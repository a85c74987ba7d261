// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCalculator is the GPA form.
	ViewCalculator ViewType = iota
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCalculator:
		return "calculator"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// BoundsLoaded carries the form bounds from the settings service.
type BoundsLoaded struct {
	Bounds domain.FormBounds
	Err    error
}

// ConfigChanged signals that the config file changed on disk.
type ConfigChanged struct{}

// CalculationCompleted carries computed averages back to the model.
type CalculationCompleted struct {
	Averages domain.Averages
	Subjects int
	Err      error

	// Generation identifies the form state the calculation was started from.
	Generation int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
