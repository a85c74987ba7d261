// Package cli provides the cobra command tree for the cgpa binary.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cgpa-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verbose bool

// Services used by the commands. Set via SetServices before Execute.
var (
	averager        driving.GradeAverager
	settingsService driving.SettingsService
)

// isInteractive reports whether stdin is a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "cgpa",
	Short: "Semester and cumulative GPA calculator",
	Long: `cgpa computes a semester GPA and a cumulative GPA from letter grades
and credit hours on the ten-point scale (O, A+, A, B+, B, C).

Run without arguments in a terminal to open the interactive form,
or use 'cgpa calc' for one-shot calculations.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if isInteractive() {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices wires the core services into the command tree.
func SetServices(avg driving.GradeAverager, settings driving.SettingsService) {
	averager = avg
	settingsService = settings
}

// SetVersion sets the version reported by 'cgpa version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
