package tui

import "errors"

// ErrMissingAverager is returned when the grade averager is not provided.
var ErrMissingAverager = errors.New("tui: grade averager is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
