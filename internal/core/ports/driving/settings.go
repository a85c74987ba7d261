package driving

import "github.com/custodia-labs/cgpa-cli/internal/core/domain"

// SettingsService manages the form bounds used by the driving adapters.
type SettingsService interface {
	// Bounds retrieves the current form bounds.
	// Missing or invalid stored values fall back to defaults.
	Bounds() (domain.FormBounds, error)

	// SaveBounds validates and persists form bounds.
	SaveBounds(bounds domain.FormBounds) error

	// Set updates a single bound by its config key (e.g. "form.max_subjects").
	// The resulting bounds must validate.
	Set(key, value string) error

	// Value returns the current value of a single bound formatted for display.
	Value(key string) (string, error)

	// Reset removes all stored bounds so defaults apply.
	Reset() error

	// Keys returns the settable config keys in display order.
	Keys() []string

	// ConfigPath returns the path of the backing configuration file.
	ConfigPath() string
}
