package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

// GradeHeaders are the column titles of the grade table.
var GradeHeaders = []string{"Marks", "Grade", "Points"}

// GradeRows returns one row per grade, best first.
func GradeRows() [][]string {
	labels := domain.AllGradeLabels()
	rows := make([][]string, 0, len(labels))
	for _, g := range labels {
		lo, hi := g.MarksRange()
		rows = append(rows, []string{fmt.Sprintf("%d-%d", lo, hi), g.String(), fmt.Sprint(g.Points())})
	}
	return rows
}

// GradeTable renders the grade scale as a bordered table.
func GradeTable(header, cell, border lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		Headers(GradeHeaders...).
		Rows(GradeRows()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
