package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent validation failures of a single computation.
// None of them are fatal; the caller decides how to present them.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTerm indicates a term record with no subjects.
	ErrEmptyTerm = errors.New("term has no subjects")

	// ErrUnknownGradeLabel indicates a grade label outside the grade scale.
	ErrUnknownGradeLabel = errors.New("unknown grade label")

	// ErrInvalidCredit indicates a non-positive subject credit, a negative
	// prior credit total, or credit totals too large to represent.
	ErrInvalidCredit = errors.New("invalid credit")

	// ErrDivisionByZero indicates the total credit weight is zero.
	// It wraps ErrInvalidInput so either sentinel matches with errors.Is.
	ErrDivisionByZero = fmt.Errorf("%w: total credit weight is zero", ErrInvalidInput)

	// ErrMarksOutOfScale indicates marks that map to no grade on the scale.
	ErrMarksOutOfScale = errors.New("marks out of grade scale")

	// ErrInvalidBounds indicates form bounds that contradict each other.
	ErrInvalidBounds = errors.New("invalid form bounds")
)
