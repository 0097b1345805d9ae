package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/conneroisu/starter/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// Err returns the first validation error, or nil.
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}

	return &vr.Errors[0]
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{}

	validatePathsDetails(&config.Paths, result)
	validateDefaultsDetails(&config.Defaults, result)
	validateTasksDetails(&config.Tasks, result)

	if len(config.FollowUp) == 0 {
		result.addWarning("follow_up", config.FollowUp, "no follow-up steps configured")
	}

	return result
}

func validatePathsDetails(paths *PathsConfig, result *ValidationResult) {
	entries := []struct {
		field string
		value string
	}{
		{"paths.git_dir", paths.GitDir},
		{"paths.venv_dir", paths.VenvDir},
		{"paths.database", paths.Database},
		{"paths.readme", paths.Readme},
		{"paths.metadata", paths.Metadata},
	}

	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		if err := validation.ValidateRelativePath(e.value); err != nil {
			result.addError(e.field, e.value, err.Error(), "Use a path relative to the project root")
			continue
		}

		clean := filepath.Clean(e.value)
		if other, ok := seen[clean]; ok {
			result.addError(e.field, e.value, fmt.Sprintf("same path as %s", other))
			continue
		}
		seen[clean] = e.field
	}

	if filepath.Ext(paths.Metadata) != ".toml" {
		result.addWarning("paths.metadata", paths.Metadata, "metadata file is expected to be TOML")
	}
}

func validateDefaultsDetails(defaults *DefaultsConfig, result *ValidationResult) {
	if _, err := template.New("description").Parse(defaults.Description); err != nil {
		result.addError("defaults.description", defaults.Description, err.Error(),
			"Use {{.Name}} to insert the project name")
		return
	}

	if !strings.Contains(defaults.Description, "{{.Name}}") {
		result.addWarning("defaults.description", defaults.Description,
			"template does not reference the project name",
			"Use {{.Name}} to insert the project name")
	}
}

func validateTasksDetails(tasks *TasksConfig, result *ValidationResult) {
	for _, cmd := range tasks.AllowedCommands {
		if err := validation.ValidateArgument(cmd); err != nil || strings.ContainsAny(cmd, "/ ") {
			result.addError("tasks.allowed_commands", cmd, "allowed commands must be bare executable names")
		}
	}

	if err := validation.ValidateRelativePath(tasks.ManagePy); err != nil {
		result.addError("tasks.manage_py", tasks.ManagePy, err.Error())
	}
}
