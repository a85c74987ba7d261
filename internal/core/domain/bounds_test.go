package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFormBounds(t *testing.T) {
	b := DefaultFormBounds()

	assert.Equal(t, 5, b.MinSubjects)
	assert.Equal(t, 10, b.MaxSubjects)
	assert.Equal(t, 7, b.DefaultSubjects)
	assert.Equal(t, 1.0, b.MinCredit)
	assert.Equal(t, 10.0, b.MaxCredit)
	assert.Equal(t, 4.0, b.DefaultCredit)
	assert.Equal(t, 0.5, b.CreditStep)
	assert.Equal(t, GradeO, b.DefaultGrade)
}

func TestFormBounds_CheckSubjectCount(t *testing.T) {
	b := DefaultFormBounds()

	assert.NoError(t, b.CheckSubjectCount(5))
	assert.NoError(t, b.CheckSubjectCount(10))
	assert.True(t, errors.Is(b.CheckSubjectCount(4), ErrInvalidInput))
	assert.True(t, errors.Is(b.CheckSubjectCount(11), ErrInvalidInput))
}

func TestFormBounds_CheckCredit(t *testing.T) {
	b := DefaultFormBounds()

	assert.NoError(t, b.CheckCredit(1.0))
	assert.NoError(t, b.CheckCredit(10.0))
	assert.True(t, errors.Is(b.CheckCredit(0.5), ErrInvalidCredit))
	assert.True(t, errors.Is(b.CheckCredit(10.5), ErrInvalidCredit))
}

func TestFormBounds_CheckPrior(t *testing.T) {
	b := DefaultFormBounds()

	assert.NoError(t, b.CheckPrior(PriorAcademicState{CumulativeAverage: 8, CreditTotal: 20}))
	assert.NoError(t, b.CheckPrior(PriorAcademicState{}))
	assert.True(t, errors.Is(b.CheckPrior(PriorAcademicState{CumulativeAverage: 11}), ErrInvalidInput))
	assert.True(t, errors.Is(b.CheckPrior(PriorAcademicState{CreditTotal: -1}), ErrInvalidCredit))
}

func TestFormBounds_Clamp(t *testing.T) {
	b := DefaultFormBounds()

	assert.Equal(t, 5, b.ClampSubjects(1))
	assert.Equal(t, 10, b.ClampSubjects(50))
	assert.Equal(t, 7, b.ClampSubjects(7))
	assert.Equal(t, 1.0, b.ClampCredit(0))
	assert.Equal(t, 10.0, b.ClampCredit(12))
	assert.Equal(t, 3.5, b.ClampCredit(3.5))
}

func TestFormBounds_CreditLabel(t *testing.T) {
	b := DefaultFormBounds()
	assert.Equal(t, "Previous Credit (87 if AI-ML)", b.CreditLabel())

	b.PriorCreditHint = 0
	assert.Equal(t, "Previous Credit", b.CreditLabel())
}

func TestNewTermRecord_CopiesEntries(t *testing.T) {
	entries := []SubjectEntry{{Grade: GradeO, Credits: 4}}
	term := NewTermRecord(entries...)
	entries[0].Grade = GradeC

	assert.Equal(t, 1, term.Len())
	assert.Equal(t, GradeO, term.Subjects[0].Grade)
}
