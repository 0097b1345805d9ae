// Package project personalizes a freshly checked-out template repository.
//
// An initialization run turns a validated Request into a fixed, sequential
// pipeline of filesystem steps:
//
//  1. remove the version-control directory (unless SkipGitRemoval is set)
//  2. remove the virtual-environment directory
//  3. remove the local database file
//  4. rewrite the README's first-level title
//  5. rewrite name and description in the metadata file's [project] table
//
// # Validation
//
// The project name is checked against NamePattern before any step runs. A
// rejected name aborts the run with nothing on disk touched.
//
// # Failure model
//
// Steps are best-effort and independent. A failing step is recorded in the
// Report and logged as a warning; the remaining steps still run and nothing
// is rolled back. Every step is idempotent: a second run over the same tree
// finds nothing to remove and nothing to rewrite.
//
// # Parameter sources
//
// Requests come from a Source. ArgumentSource builds one from command-line
// values; PromptSource asks for the values interactively and ends with a
// confirmation that, when declined, cancels the run before any mutation.
package project
