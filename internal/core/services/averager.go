package services

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cgpa-cli/internal/logger"
)

// Ensure GradeAverager implements the interface.
var _ driving.GradeAverager = (*GradeAverager)(nil)

// GradeAverager computes credit-weighted averages of grade points.
// It holds no state and is safe for concurrent use.
type GradeAverager struct{}

// NewGradeAverager creates a new grade averager.
func NewGradeAverager() *GradeAverager {
	return &GradeAverager{}
}

// Compute returns the term average of term and the cumulative average of
// term combined with prior. A nil prior contributes no credit.
//
// All inputs are validated before any arithmetic runs. Sums are accumulated
// as decimals so the result does not depend on subject order. Credit totals
// that do not fit in a float64 are rejected with ErrInvalidCredit.
func (a *GradeAverager) Compute(
	term domain.TermRecord, prior *domain.PriorAcademicState,
) (domain.Averages, error) {
	if err := validateTerm(term); err != nil {
		return domain.Averages{}, fmt.Errorf("compute averages: %w", err)
	}
	if err := validatePrior(prior); err != nil {
		return domain.Averages{}, fmt.Errorf("compute averages: %w", err)
	}

	points := decimal.Zero
	credits := decimal.Zero
	for _, s := range term.Subjects {
		c := decimal.NewFromFloat(s.Credits)
		points = points.Add(decimal.NewFromInt(int64(s.Grade.Points())).Mul(c))
		credits = credits.Add(c)
	}

	priorPoints := decimal.Zero
	priorCredits := decimal.Zero
	if prior != nil {
		priorCredits = decimal.NewFromFloat(prior.CreditTotal)
		priorPoints = decimal.NewFromFloat(prior.CumulativeAverage).Mul(priorCredits)
	}

	totalCredits := credits.Add(priorCredits)
	termAvg, err := weightedAverage(points, credits)
	if err != nil {
		return domain.Averages{}, fmt.Errorf("compute term average: %w", err)
	}
	cumAvg, err := weightedAverage(points.Add(priorPoints), totalCredits)
	if err != nil {
		return domain.Averages{}, fmt.Errorf("compute cumulative average: %w", err)
	}

	result := domain.Averages{
		Term:         termAvg.InexactFloat64(),
		Cumulative:   cumAvg.InexactFloat64(),
		TermCredits:  credits.InexactFloat64(),
		TotalCredits: totalCredits.InexactFloat64(),
	}
	if !isFinite(result.TermCredits) || !isFinite(result.TotalCredits) ||
		!isFinite(result.Term) || !isFinite(result.Cumulative) {
		return domain.Averages{}, fmt.Errorf("compute averages: %w: credit total %s exceeds float64 range",
			domain.ErrInvalidCredit, totalCredits)
	}

	logger.Debug("term: %d subjects, %s points over %s credits", term.Len(), points, credits)
	logger.Debug("prior: %s points over %s credits", priorPoints, priorCredits)
	logger.Debug("averages: term=%s cumulative=%s", termAvg.StringFixed(4), cumAvg.StringFixed(4))

	return result, nil
}

// weightedAverage divides total points by total weight.
func weightedAverage(points, weight decimal.Decimal) (decimal.Decimal, error) {
	if weight.IsZero() {
		return decimal.Zero, domain.ErrDivisionByZero
	}
	return points.Div(weight), nil
}

func validateTerm(term domain.TermRecord) error {
	if term.Len() == 0 {
		return domain.ErrEmptyTerm
	}
	for i, s := range term.Subjects {
		if !s.Grade.IsValid() {
			return fmt.Errorf("subject %d: %w: %q", i+1, domain.ErrUnknownGradeLabel, s.Grade)
		}
		if !isFinite(s.Credits) || s.Credits <= 0 {
			return fmt.Errorf("subject %d: %w: %g must be positive", i+1, domain.ErrInvalidCredit, s.Credits)
		}
	}
	return nil
}

func validatePrior(prior *domain.PriorAcademicState) error {
	if prior == nil {
		return nil
	}
	if !isFinite(prior.CreditTotal) || prior.CreditTotal < 0 {
		return fmt.Errorf("previous credit: %w: %g must not be negative", domain.ErrInvalidCredit, prior.CreditTotal)
	}
	if !isFinite(prior.CumulativeAverage) || prior.CumulativeAverage < 0 {
		return fmt.Errorf("previous CGPA: %w: %g must not be negative", domain.ErrInvalidInput, prior.CumulativeAverage)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
