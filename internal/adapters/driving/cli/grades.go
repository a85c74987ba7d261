package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/report"
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

var gradesMarks int

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Show the grade table",
	Long: `Show the marks range and grade points for every grade on the scale.

Use --marks to look up the grade for a single mark.`,
	Args: cobra.NoArgs,
	RunE: runGrades,
}

func init() {
	gradesCmd.Flags().IntVarP(&gradesMarks, "marks", "m", -1, "print the grade for a mark out of 100")
	rootCmd.AddCommand(gradesCmd)
}

func runGrades(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("marks") {
		g, err := domain.GradeForMarks(gradesMarks)
		if err != nil {
			return err
		}
		cmd.Printf("%d marks: grade %s (%d points)\n", gradesMarks, g, g.Points())
		return nil
	}

	cmd.Println(gradeTable().String())
	return nil
}

func gradeTable() *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return report.GradeTable(header, cell, lipgloss.NewStyle())
}
