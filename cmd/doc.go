// Package cmd provides the command-line interface for starter.
//
// # Available Commands
//
//   - init: Personalize a freshly copied template checkout
//   - task list: Show the developer task recipes
//   - task run: Run a task recipe
//   - version: Show build information
//
// # Command Examples
//
//	// Initialize non-interactively
//	starter init my-app --description "Inventory tracker"
//
//	// Prompt for every value
//	starter init
//
//	// See what would change without touching anything
//	starter init my-app --dry-run
//
//	// Run the development server
//	starter task run run
//
//	// Create a new Django app
//	starter task run new-app blog
//
// # Configuration
//
// Sources, highest priority first:
//
//  1. Command-line flags (--config, --log-level, etc.)
//  2. STARTER_CONFIG_FILE environment variable: custom config file path
//  3. Individual environment variables (STARTER_PATHS_VENV_DIR, etc.)
//  4. Configuration file (.starter.yml)
//
// A .env file in the working directory is loaded into the environment before
// any of these are consulted.
//
// # Exit Status
//
// 0 on success, 1 on validation or other errors, 3 when initialization
// finished but some steps failed, and 130 when the user cancelled.
package cmd
