package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cgpa-cli/internal/logger"
)

// WatchFunc blocks watching configuration until ctx is done,
// calling onChange after each reload.
type WatchFunc func(ctx context.Context, onChange func()) error

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	// Watch, when set, reloads form bounds while the form is open.
	Watch WatchFunc

	// ProgramOptions are passed to the bubbletea program after the defaults.
	ProgramOptions []tea.ProgramOption
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive GPA form.

Enter the previous CGPA and credits, pick the number of subjects, then
set a grade and credits for each subject and press enter.

Controls:
  ↑/↓, tab   Move between fields
  ←/→        Change grade or step a counter
  +/-        Step the focused value
  enter, c   Calculate
  g          Toggle the grade table
  ctrl+r     Reset the form
  ?          Help
  q          Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(averager, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	app.WithContext(ctx)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if tuiConfig != nil {
		opts = append(opts, tuiConfig.ProgramOptions...)
	}
	p := tea.NewProgram(app, opts...)

	if tuiConfig != nil && tuiConfig.Watch != nil {
		watch := tuiConfig.Watch
		go func() {
			err := watch(ctx, func() { p.Send(messages.ConfigChanged{}) })
			if err != nil && !errors.Is(err, context.Canceled) {
				// Watch errors shouldn't block the form
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
