package project

import (
	"regexp"
	"strings"

	"github.com/conneroisu/starter/internal/errors"
)

// NamePattern is the set of accepted project names: lowercase letters,
// digits, hyphens and underscores.
var NamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

const nameRules = "use only lowercase letters, digits, hyphens and underscores"

// ValidateName reports whether name may be used as a project name.
func ValidateName(name string) error {
	if name == "" {
		return errors.NewFieldValidationError("project name", name, "name cannot be empty").
			ToStarterError(errors.ErrCodeInvalidName)
	}

	if NamePattern.MatchString(name) {
		return nil
	}

	var suggestions []string
	if candidate := SuggestName(name); candidate != "" {
		suggestions = append(suggestions, "Did you mean '"+candidate+"'?")
	}

	return errors.NewFieldValidationError("project name", name, nameRules, suggestions...).
		ToStarterError(errors.ErrCodeInvalidName)
}

// SuggestName derives a valid name from an invalid one, or returns "" when
// nothing usable remains.
func SuggestName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '/':
			b.WriteRune('-')
		}
	}

	candidate := strings.Trim(b.String(), "-")
	for strings.Contains(candidate, "--") {
		candidate = strings.ReplaceAll(candidate, "--", "-")
	}

	if candidate == "" || candidate == name || !NamePattern.MatchString(candidate) {
		return ""
	}

	return candidate
}
