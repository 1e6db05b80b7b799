package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/opd-ai/sysfetch/internal/monitor"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// maxProbeTimeout is the longest probe timeout accepted without a warning.
const maxProbeTimeout = time.Minute

// Validator checks a Config for values the rest of the program cannot use.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks cfg and returns every problem found.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}

	v.validateFields(cfg, result)
	v.validateTimeout(cfg.ProbeTimeout, result)

	if _, err := parseColor(cfg.KeyColor); err != nil {
		result.AddError("key_color", err.Error())
	}

	if cfg.Remote != nil {
		v.validateRemote(cfg.Remote, result)
	}

	return result
}

func (v *Validator) validateFields(cfg *Config, result *ValidationResult) {
	shown := make(map[monitor.FieldKey]bool, len(cfg.Show))
	valid := true
	for i, name := range cfg.Show {
		k, err := monitor.ParseFieldKey(name)
		if err != nil {
			result.AddError(fmt.Sprintf("show[%d]", i+1), err.Error())
			valid = false
			continue
		}
		if shown[k] {
			result.AddWarning(fmt.Sprintf("show[%d]", i+1), fmt.Sprintf("%s is listed more than once", k))
		}
		shown[k] = true
	}
	for i, name := range cfg.Hide {
		k, err := monitor.ParseFieldKey(name)
		if err != nil {
			result.AddError(fmt.Sprintf("hide[%d]", i+1), err.Error())
			valid = false
			continue
		}
		if shown[k] {
			result.AddWarning(fmt.Sprintf("hide[%d]", i+1), fmt.Sprintf("%s is listed in both show and hide", k))
		}
	}
	if !valid {
		return
	}

	keys, err := cfg.Keys()
	if err != nil {
		result.AddError("show", err.Error())
		return
	}
	if len(keys) == 0 {
		result.AddError("show", "no fields left to display after hide")
	}
}

func (v *Validator) validateTimeout(d time.Duration, result *ValidationResult) {
	switch {
	case d < 0:
		result.AddError("probe_timeout", fmt.Sprintf("must be non-negative, got %v", d))
	case d > maxProbeTimeout:
		result.AddWarning("probe_timeout", fmt.Sprintf("very long timeout %v", d))
	}
}

func (v *Validator) validateRemote(r *RemoteConfig, result *ValidationResult) {
	if strings.TrimSpace(r.Host) == "" {
		result.AddError("remote.host", "must not be empty")
	}
	if r.Port < 1 || r.Port > 65535 {
		result.AddError("remote.port", fmt.Sprintf("must be between 1 and 65535, got %d", r.Port))
	}
	if r.Insecure {
		result.AddWarning("remote.insecure", "host key verification is disabled")
	}
}

// ValidateConfig validates cfg and returns an error if it is invalid.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg).Error()
}
