// Package tui provides the interactive GPA form for cgpa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Averager computes term and cumulative averages.
	Averager driving.GradeAverager

	// Settings provides form bounds. Optional; defaults apply when nil.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(averager driving.GradeAverager, settings driving.SettingsService) *Ports {
	return &Ports{
		Averager: averager,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Averager == nil {
		return ErrMissingAverager
	}
	return nil
}
