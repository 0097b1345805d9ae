package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/project"
	"github.com/conneroisu/starter/internal/ui"
)

var (
	initDescription string
	initSkipGit     bool
	initDryRun      bool
	initDir         string
)

var initCmd = &cobra.Command{
	Use:     "init [project-name]",
	Aliases: []string{"i"},
	Short:   "Personalize the template for a new project",
	Long: `Personalize a fresh copy of the template for a new project.

The following steps run in order; a failing step is reported and the rest
still run:
  1. Remove the template's .git directory (unless --skip-git)
  2. Remove the .venv virtual environment
  3. Remove the local database src/db.sqlite3
  4. Set the README title to "# <project-name>"
  5. Set name and description in the [project] table of pyproject.toml

Project names may contain lowercase letters, digits, hyphens and underscores.
Without a project name the command asks for every value interactively.

Examples:
  starter init my-app
  starter init my-app -d "Inventory tracker for the warehouse team"
  starter init my-app --skip-git --dry-run
  starter init`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initDescription, "description", "d", "", "Project description (default \"<name> - A Django project\")")
	initCmd.Flags().BoolVar(&initSkipGit, "skip-git", false, "Keep the existing .git directory")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Show what would change without modifying anything")
	addDirFlag(initCmd, &initDir)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	root, err := projectRoot(initDir)
	if err != nil {
		return err
	}

	// An empty name counts as missing.
	var source project.Source
	if len(args) == 1 && args[0] != "" {
		source = project.ArgumentSource{
			Name:        args[0],
			Description: initDescription,
			SkipGit:     initSkipGit,
			DryRun:      initDryRun,
		}
	} else {
		source = &project.PromptSource{
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Description: initDescription,
			SkipGit:     initSkipGit,
			DryRun:      initDryRun,
		}
	}

	req, err := source.Request(ctx)
	if err != nil {
		return err
	}

	initializer := project.NewInitializer(root, appConfig, logger)
	report, err := initializer.Initialize(ctx, req)
	if report != nil {
		ui.NewPrinter(cmd.OutOrStdout(), noColor).Report(report)
	}

	return err
}

// projectRoot resolves dir to an absolute path and checks that it is an
// existing directory.
func projectRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.ErrInvalidPath(dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.ErrInvalidPath(dir, err)
	}
	if !info.IsDir() {
		return "", errors.NewValidationError(errors.ErrCodeInvalidPath, "not a directory").WithPath(dir)
	}

	return abs, nil
}
