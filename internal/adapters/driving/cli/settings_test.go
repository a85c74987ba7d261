package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
	"github.com/custodia-labs/cgpa-cli/internal/core/services"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range settingsCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["show"])
	assert.True(t, names["set"])
	assert.True(t, names["reset"])
	assert.True(t, names["wizard"])
}

func TestSettingsShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Config file: :memory:")
	assert.Contains(t, out, services.KeyMaxSubjects)
	assert.Contains(t, out, services.KeyDefaultGrade)
	assert.Regexp(t, `form\.max_subjects\s+10\n`, out)
	assert.Regexp(t, `form\.default_grade\s+O\n`, out)
}

func TestSettingsSet(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "set", services.KeyMaxSubjects, "12")
	require.NoError(t, err)
	assert.Equal(t, "form.max_subjects set to 12\n", out)

	bounds, err := settingsService.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 12, bounds.MaxSubjects)
}

func TestSettingsSet_Invalid(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", services.KeyMinCredit, "0")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBounds))
}

func TestSettingsSet_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "settings", "set", services.KeyMaxSubjects)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingsReset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.Set(services.KeyMaxSubjects, "12"))

	out, err := execute(t, "settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "restored to defaults")
	bounds, err := settingsService.Bounds()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFormBounds(), bounds)
}

func TestSettingsWizard(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	// keep min, set max to 8, then an invalid default, keep the rest
	input := "\n8\n99\n" + strings.Repeat("\n", 9)
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)

	out, err := execute(t, "settings", "wizard")

	require.NoError(t, err)
	assert.Contains(t, out, "skipped:")
	assert.Contains(t, out, "Updated 1 setting(s).")
	bounds, err := settingsService.Bounds()
	require.NoError(t, err)
	assert.Equal(t, 8, bounds.MaxSubjects)
	assert.Equal(t, 7, bounds.DefaultSubjects)
}

func TestSettings_NotConfigured(t *testing.T) {
	orig := settingsService
	settingsService = nil
	defer func() { settingsService = orig }()

	for _, args := range [][]string{
		{"settings", "show"},
		{"settings", "set", "a", "b"},
		{"settings", "reset"},
		{"settings", "wizard"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "settings service not configured")
	}
}
