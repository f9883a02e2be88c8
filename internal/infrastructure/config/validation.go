package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks `validate` tags on config sections and content tables
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that names fields by their mapstructure
// or yaml key, so errors read "game.starting_credits" rather than "StartingCredits"
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "yaml"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return &Validator{validate: v}
}

// Validate reports every violated tag of i in one error
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%d invalid field(s):\n  %s", len(problems), strings.Join(problems, "\n  "))
}

// describe renders one violation as "key: rule (got value)"
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if i := strings.Index(key, "."); i >= 0 {
		key = key[i+1:]
	}

	rule := fe.Tag()
	switch fe.Tag() {
	case "required", "required_if":
		rule = "is required"
	case "min":
		rule = "must be at least " + fe.Param()
	case "max":
		rule = "must be at most " + fe.Param()
	case "oneof":
		rule = "must be one of [" + fe.Param() + "]"
	case "gt":
		rule = "must be greater than " + fe.Param()
	case "gte":
		rule = "must be at least " + fe.Param()
	}
	return fmt.Sprintf("%s: %s (got %v)", key, rule, fe.Value())
}

// ValidateConfig validates every section of cfg
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
