// Package termfile decodes a term description from a YAML or JSON file.
//
// The accepted shape is:
//
//	previous:
//	  cgpa: 8.0
//	  credit: 20
//	subjects:
//	  - grade: O
//	    credits: 4
//
// The previous block is optional. JSON is valid YAML, so JSON files with
// the same keys decode too.
package termfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
)

type fileDoc struct {
	Previous *previousDoc `yaml:"previous"`
	Subjects []subjectDoc `yaml:"subjects" validate:"required,min=1,dive"`
}

type previousDoc struct {
	CGPA   *float64 `yaml:"cgpa" validate:"required,gte=0"`
	Credit *float64 `yaml:"credit" validate:"required,gte=0"`
}

type subjectDoc struct {
	Grade   string  `yaml:"grade" validate:"required"`
	Credits float64 `yaml:"credits" validate:"gt=0"`
}

// Term is a decoded term file.
type Term struct {
	Record domain.TermRecord
	Prior  *domain.PriorAcademicState
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadFile decodes the term file at path.
func ReadFile(path string) (Term, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Term{}, fmt.Errorf("read term file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a term description from r.
func Decode(r io.Reader) (Term, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Term{}, fmt.Errorf("decode term file: %w", domain.ErrEmptyTerm)
		}
		return Term{}, fmt.Errorf("%w: decode term file: %v", domain.ErrInvalidInput, err)
	}

	if err := validate.Struct(doc); err != nil {
		return Term{}, describe(err)
	}

	entries := make([]domain.SubjectEntry, 0, len(doc.Subjects))
	for i, s := range doc.Subjects {
		g, err := domain.ParseGradeLabel(s.Grade)
		if err != nil {
			return Term{}, fmt.Errorf("subject %d: %w", i+1, err)
		}
		entries = append(entries, domain.SubjectEntry{Grade: g, Credits: s.Credits})
	}

	term := Term{Record: domain.NewTermRecord(entries...)}
	if doc.Previous != nil {
		term.Prior = &domain.PriorAcademicState{
			CumulativeAverage: *doc.Previous.CGPA,
			CreditTotal:       *doc.Previous.Credit,
		}
	}
	return term, nil
}

// describe maps validator errors onto domain sentinels.
func describe(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	fe := ve[0]
	path := strings.TrimPrefix(fe.Namespace(), "fileDoc.")
	switch {
	case fe.Field() == "Subjects":
		return fmt.Errorf("term file: %w", domain.ErrEmptyTerm)
	case fe.Field() == "Credits":
		return fmt.Errorf("%w: %s must be greater than zero", domain.ErrInvalidCredit, path)
	case fe.Field() == "Credit":
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, path)
		}
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidCredit, path)
	case fe.Tag() == "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, path)
	default:
		return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, path, fe.Tag())
	}
}
