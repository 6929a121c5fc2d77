package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the values a configuration file or environment can set.
// Project identifiers are validated later, once flags are applied.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Output.Base == "" {
		errs = append(errs, ValidationError{Field: "output.base", Message: "must not be empty"})
	}
	if cfg.Backend.Port < 1 || cfg.Backend.Port > 65535 {
		errs = append(errs, ValidationError{Field: "backend.port", Message: fmt.Sprintf("%d is not a valid port", cfg.Backend.Port)})
	}
	if err := checkURL(cfg.Backend.PublicURL); err != nil {
		errs = append(errs, ValidationError{Field: "backend.publicUrl", Message: err.Error()})
	}
	if err := checkURL(cfg.Initializr.URL); err != nil {
		errs = append(errs, ValidationError{Field: "initializr.url", Message: err.Error()})
	}
	if cfg.Initializr.MetadataURL != "" {
		if err := checkURL(cfg.Initializr.MetadataURL); err != nil {
			errs = append(errs, ValidationError{Field: "initializr.metadataUrl", Message: err.Error()})
		}
	}
	if cfg.Initializr.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "initializr.timeout", Message: "must be positive"})
	}
	if cfg.Initializr.MetadataTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "initializr.metadataTimeout", Message: "must be positive"})
	}
	if cfg.Database.Image == "" {
		errs = append(errs, ValidationError{Field: "database.image", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must be an http or https URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
