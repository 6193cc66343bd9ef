package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/javanstorm/devvm/internal/distro"
)

// ValidationError represents a configuration issue.
type ValidationError struct {
	Field   string
	Message string
	Fatal   bool // true = can't proceed, false = warning only
}

// Validate checks the configuration for values VirtualBox or the guest would reject.
func Validate(cfg *Config) []ValidationError {
	var errors []ValidationError

	if cfg.NamePrefix == "" {
		errors = append(errors, ValidationError{
			Field:   "NamePrefix",
			Message: "name prefix must not be empty",
			Fatal:   true,
		})
	}

	if cfg.CPUs < 1 {
		errors = append(errors, ValidationError{
			Field:   "CPUs",
			Message: fmt.Sprintf("CPU count must be at least 1, got %d", cfg.CPUs),
			Fatal:   true,
		})
	}

	if cfg.MemoryMB < 128 {
		errors = append(errors, ValidationError{
			Field:   "MemoryMB",
			Message: fmt.Sprintf("memory must be at least 128MB, got %d", cfg.MemoryMB),
			Fatal:   true,
		})
	}

	if len(cfg.Packages) == 0 {
		errors = append(errors, ValidationError{
			Field:   "Packages",
			Message: "at least one package must be installed in the guest",
			Fatal:   true,
		})
	}
	for _, pkg := range cfg.Packages {
		if strings.TrimSpace(pkg) == "" {
			errors = append(errors, ValidationError{
				Field:   "Packages",
				Message: "package names must not be empty",
				Fatal:   true,
			})
			break
		}
	}

	ports := []struct {
		field string
		value int
	}{
		{"SSHHostPort", cfg.SSHHostPort},
		{"SSHGuestPort", cfg.SSHGuestPort},
		{"AppHostPort", cfg.AppHostPort},
		{"AppGuestPort", cfg.AppGuestPort},
	}
	for _, p := range ports {
		if p.value < 1 || p.value > 65535 {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Message: fmt.Sprintf("port %d out of range", p.value),
				Fatal:   true,
			})
		}
	}

	if cfg.SSHHostPort == cfg.AppHostPort {
		errors = append(errors, ValidationError{
			Field:   "AppHostPort",
			Message: fmt.Sprintf("host port %d is already forwarded to SSH", cfg.AppHostPort),
			Fatal:   true,
		})
	}

	switch cfg.BootStrategy {
	case BootStrategyFixed, BootStrategyPoll:
	default:
		errors = append(errors, ValidationError{
			Field:   "BootStrategy",
			Message: fmt.Sprintf("unknown boot strategy %q (want %q or %q)", cfg.BootStrategy, BootStrategyFixed, BootStrategyPoll),
			Fatal:   true,
		})
	}

	if cfg.BootWait < 0 {
		errors = append(errors, ValidationError{
			Field:   "BootWait",
			Message: "boot wait must not be negative",
			Fatal:   true,
		})
	} else if cfg.BootWait < 10*time.Second && cfg.BootStrategy == BootStrategyFixed {
		errors = append(errors, ValidationError{
			Field:   "BootWait",
			Message: fmt.Sprintf("boot wait %s is probably too short for the guest to accept SSH", cfg.BootWait),
			Fatal:   false,
		})
	}

	if cfg.BootStrategy == BootStrategyPoll && cfg.BootPollInterval <= 0 {
		errors = append(errors, ValidationError{
			Field:   "BootPollInterval",
			Message: "poll interval must be positive",
			Fatal:   true,
		})
	}

	if cfg.ImagePath == "" && !distro.IsRegistered(distro.ID(cfg.Distro)) {
		errors = append(errors, ValidationError{
			Field:   "Distro",
			Message: fmt.Sprintf("%q is not a known bakerx image, available: %v", cfg.Distro, distro.List()),
			Fatal:   false,
		})
	}

	if !cfg.RequireImage {
		errors = append(errors, ValidationError{
			Field:   "RequireImage",
			Message: "a missing base image will only be reported, import will still be attempted",
			Fatal:   false,
		})
	}

	return errors
}

// HasFatal reports whether any error blocks execution.
func HasFatal(errors []ValidationError) bool {
	for _, e := range errors {
		if e.Fatal {
			return true
		}
	}
	return false
}

// FormatValidationErrors returns human-readable error summary.
func FormatValidationErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Configuration warnings:\n")
	for _, e := range errors {
		prefix := "Warning"
		if e.Fatal {
			prefix = "Error"
		}
		fmt.Fprintf(&b, "  %s [%s]: %s\n", prefix, e.Field, e.Message)
	}
	return b.String()
}
