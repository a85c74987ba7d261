// Package report formats computed averages for display.
// The CLI and the TUI share it so both round the same way.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

// Places is the number of decimal places shown for an average.
const Places = 2

// FormatAverage renders an average rounded half away from zero to two places.
func FormatAverage(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Places)
}

// FormatCredits renders a credit total without trailing zeros.
func FormatCredits(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// TermLine is the sentence shown for the semester average.
func TermLine(a domain.Averages) string {
	return fmt.Sprintf("Your semester GPA is %s", FormatAverage(a.Term))
}

// CumulativeLine is the sentence shown for the cumulative average.
func CumulativeLine(a domain.Averages) string {
	return fmt.Sprintf("Your Cumulative GPA is %s", FormatAverage(a.Cumulative))
}

// Result is the machine-readable form of a computation.
// Averages are emitted as fixed two-place numbers.
type Result struct {
	TermGPA       json.Number `json:"term_gpa"`
	CumulativeGPA json.Number `json:"cumulative_gpa"`
	TermCredits   json.Number `json:"term_credits"`
	TotalCredits  json.Number `json:"total_credits"`
	Subjects      int         `json:"subjects"`
}

// NewResult builds a Result from computed averages.
func NewResult(a domain.Averages, subjects int) Result {
	return Result{
		TermGPA:       json.Number(FormatAverage(a.Term)),
		CumulativeGPA: json.Number(FormatAverage(a.Cumulative)),
		TermCredits:   json.Number(FormatCredits(a.TermCredits)),
		TotalCredits:  json.Number(FormatCredits(a.TotalCredits)),
		Subjects:      subjects,
	}
}

// WriteText writes the two result sentences, one per line.
func WriteText(w io.Writer, a domain.Averages) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", TermLine(a), CumulativeLine(a))
	return err
}

// WriteJSON writes the result as indented JSON.
func WriteJSON(w io.Writer, a domain.Averages, subjects int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewResult(a, subjects)); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
