package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/models"
	"github.com/aleister1102/newswatch/internal/urlhandler"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
// Every returned error matches common.ErrInvalidConfiguration.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewValidationError("config", nil, "configuration is nil")
	}

	validate := newValidator()

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, formatFieldError(e))
			}
			return fmt.Errorf("%w:\n  %s", common.ErrInvalidConfiguration, strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidConfiguration, err)
	}

	return validateUniqueKeys(cfg.Targets)
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("extractionmode", func(fl validator.FieldLevel) bool {
		switch models.ExtractionMode(fl.Field().String()) {
		case "", models.ModeHTMLElement, models.ModeScriptPayload:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("payloadsubtype", func(fl validator.FieldLevel) bool {
		switch models.PayloadSubtype(fl.Field().String()) {
		case "", models.PayloadDirect, models.PayloadIndirect:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("absurl", func(fl validator.FieldLevel) bool {
		return urlhandler.ValidateAbsoluteURL(fl.Field().String()) == nil
	})

	_ = validate.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})

	// A webhook URL either carries the credential placeholder or is complete.
	_ = validate.RegisterValidation("webhookurl", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		return urlhandler.ValidateAbsoluteURL(strings.ReplaceAll(raw, WebhookKeyPlaceholder, "key")) == nil
	})

	validate.RegisterStructValidation(targetStructLevelValidation, models.Target{})

	return validate
}

// targetStructLevelValidation checks rules that span several Target fields.
func targetStructLevelValidation(sl validator.StructLevel) {
	target := sl.Current().Interface().(models.Target)

	if target.EffectiveMode() == models.ModeHTMLElement && strings.TrimSpace(target.Selector.Tag) == "" {
		sl.ReportError(target.Selector.Tag, "Selector.Tag", "Tag", "required_for_html_element", "")
	}
	if target.PayloadSubtype != "" && target.EffectiveMode() != models.ModeScriptPayload {
		sl.ReportError(target.PayloadSubtype, "PayloadSubtype", "PayloadSubtype", "script_payload_only", "")
	}
}

// validateUniqueKeys rejects targets whose names collapse to the same storage key.
func validateUniqueKeys(targets []models.Target) error {
	seen := make(map[string]string, len(targets))
	for _, target := range targets {
		key := urlhandler.SanitizeKey(target.Name)
		if previous, exists := seen[key]; exists {
			return common.NewValidationError(
				"Targets.Name",
				target.Name,
				fmt.Sprintf("storage key '%s' collides with target '%s'", key, previous),
			)
		}
		seen[key] = target.Name
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	fieldName := e.Namespace()
	if idx := strings.Index(fieldName, "."); idx >= 0 {
		fieldName = fieldName[idx+1:]
	}

	msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
	if e.Param() != "" {
		msg += fmt.Sprintf(" (expected: %s)", e.Param())
	}
	if e.Value() != nil && e.Value() != "" {
		msg += fmt.Sprintf(", actual: '%v'", e.Value())
	}
	return msg
}
