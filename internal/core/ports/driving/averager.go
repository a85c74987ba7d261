package driving

import "github.com/custodia-labs/cgpa-cli/internal/core/domain"

// GradeAverager computes credit-weighted grade-point averages.
type GradeAverager interface {
	// Compute returns the term and cumulative averages for term.
	// prior may be nil when there is no earlier credit.
	// Errors match the domain sentinels with errors.Is.
	Compute(term domain.TermRecord, prior *domain.PriorAcademicState) (domain.Averages, error)
}
