// This file adds a lightweight validator for Config values. It checks both
// static shape (batch size, storage kind) and the run preconditions the
// loader promises to fail on before touching the destination: missing input,
// already-existing output. Callers receive a list of issues they can surface
// in a CLI or in tests.
package config

import (
	"fmt"
	"os"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates an issue that must block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates an issue that should be surfaced to users
	// but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into
// the config (e.g. "storage.kind"); Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where convenient.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the list is severity error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate checks a Config without mutating it and returns all findings.
// Callers decide whether warnings are fatal.
func Validate(c Config) []Issue {
	var issues []Issue

	if c.Job == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and log lines will use the default name",
		})
	}

	if c.BatchSize < 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "batch_size",
			Message:  fmt.Sprintf("batch size must be >= 1, got %d", c.BatchSize),
		})
	}

	issues = append(issues, validateInput(c)...)
	issues = append(issues, validateStorage(c)...)
	return issues
}

func validateInput(c Config) []Issue {
	var issues []Issue

	if c.InputPath == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_path",
			Message:  "input path is required",
		})
	}
	fi, err := os.Stat(c.InputPath)
	switch {
	case err != nil:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_path",
			Message:  fmt.Sprintf("input file %s does not exist or is unreadable: %v", c.InputPath, err),
		})
	case fi.IsDir():
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_path",
			Message:  fmt.Sprintf("input path %s is a directory", c.InputPath),
		})
	}
	return issues
}

func validateStorage(c Config) []Issue {
	var issues []Issue

	switch c.Storage.Kind {
	case "sqlite":
		if c.StorageDSN() == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "output_path",
				Message:  "output path (or storage.dsn) is required for the sqlite backend",
			})
			break
		}
		if c.Storage.DSN == "" && !c.AllowExisting {
			if _, err := os.Stat(c.OutputPath); err == nil {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "output_path",
					Message:  fmt.Sprintf("output file %s already exists (pass -resume to load on top of it)", c.OutputPath),
				})
			}
		}

	case "postgres":
		if c.Storage.DSN == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.dsn",
				Message:  "a DSN is required for the postgres backend",
			})
		}

	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage kind is required",
		})

	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (want sqlite or postgres)", c.Storage.Kind),
		})
	}
	return issues
}
