package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator. Field names are reported by
// their koanf key so errors point at the config path.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks cfg against its struct tags. The first violation is returned
// as a *ConfigError naming the config path.
func Validate(cfg *Config) error {
	err := structValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	return fieldError(validationErrors[0])
}

func fieldError(fe validator.FieldError) *ConfigError {
	// Namespace is "Config.dialect.driver"; drop the root type.
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	switch fe.Tag() {
	case "required":
		return NewMissingFieldError(field, envVarFor(field), field)
	case "oneof":
		return NewInvalidFieldError(field, fmt.Sprintf("unsupported value '%v'", fe.Value()), strings.Fields(fe.Param()))
	case "gte":
		return NewInvalidFieldError(field, "must be at least "+fe.Param(), nil)
	default:
		return NewValidationError(field, "failed '"+fe.Tag()+"' validation")
	}
}

// envVarFor returns the environment variable overriding a config path.
func envVarFor(field string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))
}
