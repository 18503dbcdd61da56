package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the bot's struct-level rules
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(validateRoute, RouteConfig{})
	return &Validator{validate: v}
}

// validateRoute checks rules that span several route fields.
// A transport route whose home equals its target is not rejected here:
// it only idles that fleet, so it is reported by MisconfiguredRoutes.
func validateRoute(sl validator.StructLevel) {
	route := sl.Current().Interface().(RouteConfig)

	if route.Goal == "mine" && len(route.Resources) == 0 {
		sl.ReportError(route.Resources, "Resources", "resources", "mine_needs_mint", "")
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Namespace(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// ValidateForRun checks what the run command needs on top of ValidateConfig
func ValidateForRun(cfg *Config) error {
	if cfg.Bot.ProfileKey == "" {
		return fmt.Errorf("bot.profile_key is required (or set %s_BOT_PROFILE_KEY)", EnvPrefix)
	}
	if len(cfg.Bot.Routes) == 0 {
		return fmt.Errorf("bot.routes is empty: nothing to run")
	}
	return nil
}
