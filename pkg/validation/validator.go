package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Limits on analysis parameters
	MinRingSize      = 3
	MaxRingSize      = 64
	MaxPathLength    = 64
	MaxBatchWorkers  = 256
	MaxAtomNameChars = 8

	elementPattern = regexp.MustCompile(`^[A-Za-z]{1,3}$`)
)

func init() {
	validate = validator.New()
}

// AnalysisRequest carries the tunable parameters of one ring analysis.
type AnalysisRequest struct {
	MaxPathLength int    `json:"maxPathLength" yaml:"max_path_length" validate:"min=1,max=64"`
	MaxRingSize   int    `json:"maxRingSize" yaml:"max_ring_size" validate:"min=3,max=64"`
	Method        string `json:"method" yaml:"method" validate:"omitempty,oneof=hill-reilly cremer-pople"`
}

// AtomRecord is one atom as read from a structure file.
type AtomRecord struct {
	Element string  `json:"element" yaml:"element" validate:"required,max=3"`
	Name    string  `json:"name" yaml:"name" validate:"max=8"`
	Type    string  `json:"type" yaml:"type" validate:"max=8"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Z       float64 `json:"z" yaml:"z"`
}

// ValidateAnalysisRequest validates ring analysis parameters
func ValidateAnalysisRequest(req *AnalysisRequest) error {
	if req == nil {
		return errors.New("analysis request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAtomRecord validates an atom read from an input file
func ValidateAtomRecord(rec *AtomRecord) error {
	if rec == nil {
		return errors.New("atom record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	if !elementPattern.MatchString(rec.Element) {
		return fmt.Errorf("Element: '%s' is not an element symbol", rec.Element)
	}
	return nil
}

// ValidateWorkers validates a worker count for batch analysis
func ValidateWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", n)
	}
	if n > MaxBatchWorkers {
		return fmt.Errorf("workers must not exceed %d, got %d", MaxBatchWorkers, n)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failing field
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
