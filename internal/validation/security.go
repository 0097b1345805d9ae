// Package validation provides input checks shared by the initializer and the
// task runner: command allowlisting, argument screening for shell
// metacharacters, and confinement of configured paths to the project root.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

var shellMetacharacters = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\\", "\"", "'"}

// ValidateArgument validates a command line argument to prevent injection attacks
func ValidateArgument(arg string) error {
	for _, char := range shellMetacharacters {
		if strings.Contains(arg, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	if strings.ContainsAny(arg, "\x00\n\r") {
		return fmt.Errorf("contains control character")
	}

	if strings.Contains(arg, "..") {
		return fmt.Errorf("contains path traversal: %s", arg)
	}

	if filepath.IsAbs(arg) {
		return fmt.Errorf("absolute path not allowed: %s", arg)
	}

	return nil
}

// ValidateCommand validates a command name against an allowlist
func ValidateCommand(command string, allowedCommands map[string]bool) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if !allowedCommands[command] {
		return fmt.Errorf("command '%s' is not allowed", command)
	}

	if err := ValidateArgument(command); err != nil {
		return fmt.Errorf("invalid command '%s': %w", command, err)
	}

	return nil
}

// ValidateRelativePath checks that path is relative and stays inside the
// directory it will be joined to.
func ValidateRelativePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if filepath.IsAbs(path) {
		return fmt.Errorf("path must be relative: %s", path)
	}

	clean := filepath.Clean(path)
	if clean == "." {
		return fmt.Errorf("path must name an entry below the project root: %s", path)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	for _, char := range []string{";", "&", "|", "$", "`", "<", ">", "\x00"} {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %q", char)
		}
	}

	return nil
}

// SanitizeInput removes null bytes and control characters other than common
// whitespace from interactive input.
func SanitizeInput(input string) string {
	var sanitized strings.Builder
	for _, r := range input {
		if r >= 32 && r != 127 || r == '\t' || r == '\n' || r == '\r' {
			sanitized.WriteRune(r)
		}
	}

	return sanitized.String()
}
