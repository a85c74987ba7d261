package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/cgpa-cli/internal/core/domain"
	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/cgpa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/cgpa-cli/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for form bounds storage.
const (
	KeyMinSubjects      = "form.min_subjects"
	KeyMaxSubjects      = "form.max_subjects"
	KeyDefaultSubjects  = "form.default_subjects"
	KeyMinCredit        = "form.min_credit"
	KeyMaxCredit        = "form.max_credit"
	KeyDefaultCredit    = "form.default_credit"
	KeyCreditStep       = "form.credit_step"
	KeyMaxPriorAverage  = "form.max_prior_cgpa"
	KeyPriorAverageStep = "form.prior_cgpa_step"
	KeyPriorCreditStep  = "form.prior_credit_step"
	KeyPriorCreditHint  = "form.prior_credit_hint"
	KeyDefaultGrade     = "form.default_grade"
)

var boundKeys = []string{
	KeyMinSubjects, KeyMaxSubjects, KeyDefaultSubjects,
	KeyMinCredit, KeyMaxCredit, KeyDefaultCredit, KeyCreditStep,
	KeyMaxPriorAverage, KeyPriorAverageStep, KeyPriorCreditStep, KeyPriorCreditHint,
	KeyDefaultGrade,
}

// SettingsService manages form bounds persisted in a config store.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return domain.GradeLabel(fl.Field().String()).IsValid()
	})

	return &SettingsService{
		configStore: configStore,
		validate:    v,
	}
}

// Bounds retrieves the current form bounds.
// A stored value of the wrong type, or a combination that fails
// validation, falls back to the defaults.
func (s *SettingsService) Bounds() (domain.FormBounds, error) {
	defaults := domain.DefaultFormBounds()
	bounds := defaults

	for _, key := range boundKeys {
		raw, ok := s.configStore.Get(key)
		if !ok {
			continue
		}
		if err := applyBound(&bounds, key, raw); err != nil {
			logger.Warn("ignoring %s: %v", key, err)
			return defaults, nil
		}
	}

	if err := s.check(bounds); err != nil {
		logger.Warn("stored form bounds are invalid, using defaults: %v", err)
		return defaults, nil
	}
	return bounds, nil
}

// SaveBounds validates and persists form bounds.
func (s *SettingsService) SaveBounds(bounds domain.FormBounds) error {
	if err := s.check(bounds); err != nil {
		return err
	}

	for _, key := range boundKeys {
		if err := s.configStore.Set(key, boundValue(bounds, key)); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set updates a single bound by config key.
func (s *SettingsService) Set(key, value string) error {
	typed, err := parseBound(key, value)
	if err != nil {
		return err
	}

	bounds, err := s.Bounds()
	if err != nil {
		return err
	}
	if err := applyBound(&bounds, key, typed); err != nil {
		return err
	}
	if err := s.check(bounds); err != nil {
		return err
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the current value of a single bound formatted for display.
func (s *SettingsService) Value(key string) (string, error) {
	if !isKnownKey(key) {
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	bounds, err := s.Bounds()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(boundValue(bounds, key)), nil
}

// Reset removes all stored bounds so defaults apply.
func (s *SettingsService) Reset() error {
	for _, key := range boundKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns the settable config keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(boundKeys))
	copy(keys, boundKeys)
	return keys
}

// ConfigPath returns the path of the backing configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// check validates bounds and converts validator errors to ErrInvalidBounds.
func (s *SettingsService) check(bounds domain.FormBounds) error {
	err := s.validate.Struct(bounds)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBounds, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidBounds, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", fe.Field(), fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not be greater than %s", fe.Field(), fe.Param())
	case "grade":
		return fmt.Sprintf("%s must be a grade label", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func isIntKey(key string) bool {
	return key == KeyMinSubjects || key == KeyMaxSubjects || key == KeyDefaultSubjects
}

// parseBound converts a user-supplied string to the stored type for key.
func parseBound(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch {
	case key == KeyDefaultGrade:
		g, err := domain.ParseGradeLabel(value)
		if err != nil {
			return nil, err
		}
		return g.String(), nil
	case isIntKey(key):
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil
	case isKnownKey(key):
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, key, value)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

func isKnownKey(key string) bool {
	for _, k := range boundKeys {
		if k == key {
			return true
		}
	}
	return false
}

// applyBound writes a raw config value into the matching bounds field.
// raw may be any numeric type produced by TOML decoding or parseBound.
//
//nolint:gocyclo // one case per field
func applyBound(b *domain.FormBounds, key string, raw any) error {
	if key == KeyDefaultGrade {
		str, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a grade label", domain.ErrInvalidInput, key)
		}
		b.DefaultGrade = domain.GradeLabel(str)
		return nil
	}

	if isIntKey(key) {
		n, ok := toInt(raw)
		if !ok {
			return fmt.Errorf("%w: %s expects an integer", domain.ErrInvalidInput, key)
		}
		switch key {
		case KeyMinSubjects:
			b.MinSubjects = n
		case KeyMaxSubjects:
			b.MaxSubjects = n
		case KeyDefaultSubjects:
			b.DefaultSubjects = n
		}
		return nil
	}

	f, ok := toFloat(raw)
	if !ok {
		return fmt.Errorf("%w: %s expects a number", domain.ErrInvalidInput, key)
	}
	switch key {
	case KeyMinCredit:
		b.MinCredit = f
	case KeyMaxCredit:
		b.MaxCredit = f
	case KeyDefaultCredit:
		b.DefaultCredit = f
	case KeyCreditStep:
		b.CreditStep = f
	case KeyMaxPriorAverage:
		b.MaxPriorAverage = f
	case KeyPriorAverageStep:
		b.PriorAverageStep = f
	case KeyPriorCreditStep:
		b.PriorCreditStep = f
	case KeyPriorCreditHint:
		b.PriorCreditHint = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

// boundValue reads the field for key from bounds in its stored type.
func boundValue(b domain.FormBounds, key string) any {
	switch key {
	case KeyMinSubjects:
		return b.MinSubjects
	case KeyMaxSubjects:
		return b.MaxSubjects
	case KeyDefaultSubjects:
		return b.DefaultSubjects
	case KeyMinCredit:
		return b.MinCredit
	case KeyMaxCredit:
		return b.MaxCredit
	case KeyDefaultCredit:
		return b.DefaultCredit
	case KeyCreditStep:
		return b.CreditStep
	case KeyMaxPriorAverage:
		return b.MaxPriorAverage
	case KeyPriorAverageStep:
		return b.PriorAverageStep
	case KeyPriorCreditStep:
		return b.PriorCreditStep
	case KeyPriorCreditHint:
		return b.PriorCreditHint
	case KeyDefaultGrade:
		return b.DefaultGrade.String()
	default:
		return nil
	}
}


func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
