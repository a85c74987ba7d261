package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/report"
	"github.com/custodia-labs/cgpa-cli/internal/adapters/driving/termfile"
	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

var (
	calcSubjects   []string
	calcPrevCGPA   float64
	calcPrevCredit float64
	calcFile       string
	calcJSON       bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate semester and cumulative GPA",
	Long: `Calculate the semester GPA for a set of subjects and the cumulative GPA
including previous terms.

Each subject is given as GRADE:CREDITS, for example:

  cgpa calc -s O:4 -s A:3
  cgpa calc -s B:4 --prev-cgpa 8.0 --prev-credit 20

Subjects can also be read from a YAML or JSON file with --file.`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVarP(&calcSubjects, "subject", "s", nil, "subject as GRADE:CREDITS (repeatable)")
	calcCmd.Flags().Float64Var(&calcPrevCGPA, "prev-cgpa", 0, "cumulative GPA of previous terms")
	calcCmd.Flags().Float64Var(&calcPrevCredit, "prev-credit", 0, "credits earned in previous terms")
	calcCmd.Flags().StringVarP(&calcFile, "file", "f", "", "read subjects from a YAML or JSON file")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	if averager == nil {
		return errors.New("grade averager not configured")
	}

	bounds := domain.DefaultFormBounds()
	if settingsService != nil {
		b, err := settingsService.Bounds()
		if err != nil {
			return fmt.Errorf("failed to load form bounds: %w", err)
		}
		bounds = b
	}

	record, prior, err := calcInput(cmd)
	if err != nil {
		return err
	}
	if err := checkBounds(bounds, record, prior); err != nil {
		return err
	}

	avg, err := averager.Compute(record, prior)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if calcJSON {
		return report.WriteJSON(cmd.OutOrStdout(), avg, record.Len())
	}
	return report.WriteText(cmd.OutOrStdout(), avg)
}

// calcInput gathers the term and prior state from flags or a term file.
// Explicit --prev-* flags override the previous block of a file.
func calcInput(cmd *cobra.Command) (domain.TermRecord, *domain.PriorAcademicState, error) {
	var (
		record domain.TermRecord
		prior  *domain.PriorAcademicState
	)

	switch {
	case calcFile != "" && len(calcSubjects) > 0:
		return record, nil, fmt.Errorf("%w: use either --file or --subject, not both", domain.ErrInvalidInput)
	case calcFile != "":
		term, err := termfile.ReadFile(calcFile)
		if err != nil {
			return record, nil, err
		}
		record, prior = term.Record, term.Prior
	default:
		entries, err := parseSubjects(calcSubjects)
		if err != nil {
			return record, nil, err
		}
		record = domain.NewTermRecord(entries...)
	}

	flags := cmd.Flags()
	if flags.Changed("prev-cgpa") || flags.Changed("prev-credit") {
		p := domain.PriorAcademicState{}
		if prior != nil {
			p = *prior
		}
		if flags.Changed("prev-cgpa") {
			p.CumulativeAverage = calcPrevCGPA
		}
		if flags.Changed("prev-credit") {
			p.CreditTotal = calcPrevCredit
		}
		prior = &p
	}

	return record, prior, nil
}

func parseSubjects(raw []string) ([]domain.SubjectEntry, error) {
	entries := make([]domain.SubjectEntry, 0, len(raw))
	for i, s := range raw {
		entry, err := parseSubject(s)
		if err != nil {
			return nil, fmt.Errorf("subject %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseSubject parses a GRADE:CREDITS pair such as "A+:3.5".
func parseSubject(s string) (domain.SubjectEntry, error) {
	label, credits, ok := strings.Cut(s, ":")
	if !ok {
		return domain.SubjectEntry{}, fmt.Errorf("%w: %q is not GRADE:CREDITS", domain.ErrInvalidInput, s)
	}

	grade, err := domain.ParseGradeLabel(label)
	if err != nil {
		return domain.SubjectEntry{}, err
	}

	c, err := strconv.ParseFloat(strings.TrimSpace(credits), 64)
	if err != nil {
		return domain.SubjectEntry{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidCredit, credits)
	}

	return domain.SubjectEntry{Grade: grade, Credits: c}, nil
}

// checkBounds applies the configured input limits. The minimum subject
// count only constrains the interactive form stepper.
func checkBounds(b domain.FormBounds, record domain.TermRecord, prior *domain.PriorAcademicState) error {
	if record.Len() == 0 {
		return fmt.Errorf("calculation failed: %w", domain.ErrEmptyTerm)
	}
	if record.Len() > b.MaxSubjects {
		return fmt.Errorf("%w: %d subjects, at most %d allowed", domain.ErrInvalidInput, record.Len(), b.MaxSubjects)
	}
	for i, s := range record.Subjects {
		if err := b.CheckCredit(s.Credits); err != nil {
			return fmt.Errorf("subject %d: %w", i+1, err)
		}
	}
	if prior != nil {
		if err := b.CheckPrior(*prior); err != nil {
			return err
		}
	}
	return nil
}
