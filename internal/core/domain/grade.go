package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// GradeLabel is a letter grade on the fixed six-tier scale.
type GradeLabel string

// Grade labels, best first.
const (
	// GradeO is awarded for 90-100 marks.
	GradeO GradeLabel = "O"

	// GradeAPlus is awarded for 80-89 marks.
	GradeAPlus GradeLabel = "A+"

	// GradeA is awarded for 70-79 marks.
	GradeA GradeLabel = "A"

	// GradeBPlus is awarded for 60-69 marks.
	GradeBPlus GradeLabel = "B+"

	// GradeB is awarded for 50-59 marks.
	GradeB GradeLabel = "B"

	// GradeC is awarded for 40-49 marks.
	GradeC GradeLabel = "C"
)

// AllGradeLabels returns every grade label, best first.
func AllGradeLabels() []GradeLabel {
	return []GradeLabel{GradeO, GradeAPlus, GradeA, GradeBPlus, GradeB, GradeC}
}

// ParseGradeLabel converts free text to a grade label.
// Surrounding whitespace is ignored and the match is case-insensitive.
func ParseGradeLabel(s string) (GradeLabel, error) {
	g := GradeLabel(strings.ToUpper(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownGradeLabel, s)
	}
	return g, nil
}

// IsValid returns true if the label is on the grade scale.
func (g GradeLabel) IsValid() bool {
	switch g {
	case GradeO, GradeAPlus, GradeA, GradeBPlus, GradeB, GradeC:
		return true
	default:
		return false
	}
}

// Points returns the grade point for the label, or 0 for an unknown label.
func (g GradeLabel) Points() int {
	switch g {
	case GradeO:
		return 10
	case GradeAPlus:
		return 9
	case GradeA:
		return 8
	case GradeBPlus:
		return 7
	case GradeB:
		return 6
	case GradeC:
		return 5
	default:
		return 0
	}
}

// MarksRange returns the inclusive marks band that earns the label.
func (g GradeLabel) MarksRange() (lowest, highest int) {
	switch g {
	case GradeO:
		return 90, 100
	case GradeAPlus:
		return 80, 89
	case GradeA:
		return 70, 79
	case GradeBPlus:
		return 60, 69
	case GradeB:
		return 50, 59
	case GradeC:
		return 40, 49
	default:
		return 0, 0
	}
}

// String returns the string representation.
func (g GradeLabel) String() string {
	return string(g)
}

// Description returns the label with its marks band, e.g. "A+ (80-89)".
func (g GradeLabel) Description() string {
	if !g.IsValid() {
		return unknownDescription
	}
	lo, hi := g.MarksRange()
	return fmt.Sprintf("%s (%d-%d)", g, lo, hi)
}

// Next returns the label after g in scale order, wrapping to the best grade.
func (g GradeLabel) Next() GradeLabel {
	return g.shift(1)
}

// Prev returns the label before g in scale order, wrapping to the lowest grade.
func (g GradeLabel) Prev() GradeLabel {
	return g.shift(-1)
}

func (g GradeLabel) shift(delta int) GradeLabel {
	labels := AllGradeLabels()
	for i, l := range labels {
		if l == g {
			return labels[(i+delta+len(labels))%len(labels)]
		}
	}
	return labels[0]
}

// GradeForMarks returns the label whose marks band contains marks.
func GradeForMarks(marks int) (GradeLabel, error) {
	for _, g := range AllGradeLabels() {
		lo, hi := g.MarksRange()
		if marks >= lo && marks <= hi {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %d", ErrMarksOutOfScale, marks)
}
