package domain

import "fmt"

// FormBounds holds the input limits the driving adapters enforce on raw
// user input before handing it to the core. None of them are intrinsic to
// the averaging formula.
type FormBounds struct {
	MinSubjects     int `validate:"gte=1"`
	MaxSubjects     int `validate:"gtefield=MinSubjects"`
	DefaultSubjects int `validate:"gtefield=MinSubjects,ltefield=MaxSubjects"`

	MinCredit     float64 `validate:"gt=0"`
	MaxCredit     float64 `validate:"gtefield=MinCredit"`
	DefaultCredit float64 `validate:"gtefield=MinCredit,ltefield=MaxCredit"`
	CreditStep    float64 `validate:"gt=0"`

	MaxPriorAverage  float64 `validate:"gt=0"`
	PriorAverageStep float64 `validate:"gt=0"`
	PriorCreditStep  float64 `validate:"gt=0"`

	// PriorCreditHint is the typical prior credit total shown as a hint.
	// Zero hides the hint.
	PriorCreditHint float64 `validate:"gte=0"`

	DefaultGrade GradeLabel `validate:"grade"`
}

// DefaultFormBounds returns the stock calculator form bounds.
func DefaultFormBounds() FormBounds {
	return FormBounds{
		MinSubjects:      5,
		MaxSubjects:      10,
		DefaultSubjects:  7,
		MinCredit:        1.0,
		MaxCredit:        10.0,
		DefaultCredit:    4.0,
		CreditStep:       0.5,
		MaxPriorAverage:  10.0,
		PriorAverageStep: 0.01,
		PriorCreditStep:  0.5,
		PriorCreditHint:  87,
		DefaultGrade:     GradeO,
	}
}

// CheckSubjectCount reports whether n subjects fit the bounds.
func (b FormBounds) CheckSubjectCount(n int) error {
	if n < b.MinSubjects || n > b.MaxSubjects {
		return fmt.Errorf("%w: %d subjects, expected %d to %d",
			ErrInvalidInput, n, b.MinSubjects, b.MaxSubjects)
	}
	return nil
}

// CheckCredit reports whether a subject credit fits the bounds.
func (b FormBounds) CheckCredit(c float64) error {
	if c < b.MinCredit || c > b.MaxCredit {
		return fmt.Errorf("%w: %g credits, expected %g to %g",
			ErrInvalidCredit, c, b.MinCredit, b.MaxCredit)
	}
	return nil
}

// CheckPrior reports whether a prior state fits the bounds.
func (b FormBounds) CheckPrior(p PriorAcademicState) error {
	if p.CumulativeAverage < 0 || p.CumulativeAverage > b.MaxPriorAverage {
		return fmt.Errorf("%w: previous CGPA %g, expected 0 to %g",
			ErrInvalidInput, p.CumulativeAverage, b.MaxPriorAverage)
	}
	if p.CreditTotal < 0 {
		return fmt.Errorf("%w: previous credit %g is negative", ErrInvalidCredit, p.CreditTotal)
	}
	return nil
}

// ClampSubjects limits n to the subject count bounds.
func (b FormBounds) ClampSubjects(n int) int {
	return min(max(n, b.MinSubjects), b.MaxSubjects)
}

// ClampCredit limits c to the credit bounds.
func (b FormBounds) ClampCredit(c float64) float64 {
	return min(max(c, b.MinCredit), b.MaxCredit)
}

// CreditLabel returns the form label for the prior credit field.
func (b FormBounds) CreditLabel() string {
	if b.PriorCreditHint > 0 {
		return fmt.Sprintf("Previous Credit (%g if AI-ML)", b.PriorCreditHint)
	}
	return "Previous Credit"
}
