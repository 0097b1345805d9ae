// Package internal contains the implementation packages for the starter CLI.
//
// # Package Organization
//
//   - project: Project initializer (name validation, parameter sources,
//     README and pyproject.toml rewriting, the ordered step pipeline)
//   - tasks: Developer task recipes and the allowlisted process runner
//   - config: Configuration loading and validation with Viper
//   - errors: Structured errors, step failure collection and suggestions
//   - logging: Structured logging on log/slog
//   - validation: Argument, command and path screening
//   - ui: Terminal rendering of reports and tables
//   - version: Build identity
//   - testutils: Template checkout fixtures for tests
//
// # Failure Model
//
// Validation happens before anything on disk is touched. Once the
// initializer starts mutating, each step is best-effort: a failure is
// recorded on the step, logged as a warning, and the next step still runs.
// Nothing is rolled back.
package internal
