package domain

// SubjectEntry is one subject taken in the current term.
type SubjectEntry struct {
	// Grade is the letter grade awarded.
	Grade GradeLabel

	// Credits is the weight of the subject. Must be positive.
	Credits float64
}

// TermRecord holds the subjects of the current term, in entry order.
type TermRecord struct {
	Subjects []SubjectEntry
}

// NewTermRecord builds a term record from entries.
// The entries are copied so later changes to the slice do not leak in.
func NewTermRecord(entries ...SubjectEntry) TermRecord {
	subjects := make([]SubjectEntry, len(entries))
	copy(subjects, entries)
	return TermRecord{Subjects: subjects}
}

// Len returns the number of subjects.
func (t TermRecord) Len() int {
	return len(t.Subjects)
}

// PriorAcademicState summarises all credit accumulated before the current term.
type PriorAcademicState struct {
	// CumulativeAverage is the CGPA up to the previous term.
	CumulativeAverage float64

	// CreditTotal is the number of credits behind CumulativeAverage.
	CreditTotal float64
}

// Averages is the result of a grade-point computation.
type Averages struct {
	// Term is the credit-weighted average of the current term only.
	Term float64

	// Cumulative is the average across the current and all prior terms.
	Cumulative float64

	// TermCredits is the sum of credits in the current term.
	TermCredits float64

	// TotalCredits is TermCredits plus the prior credit total.
	TotalCredits float64
}
