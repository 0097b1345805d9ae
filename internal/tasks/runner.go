package tasks

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/logging"
	"github.com/conneroisu/starter/internal/validation"
)

// AppNamePattern is the set of names accepted for new Django apps; they
// must be importable Python identifiers.
var AppNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Command is a fully resolved process to start.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor starts external processes.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

// Execute runs cmd and waits for it. The process is killed when ctx is done.
func (ExecExecutor) Execute(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr

	return c.Run()
}

// Runner validates and executes recipes inside a project root.
type Runner struct {
	Root     string
	Allowed  map[string]bool
	Executor Executor
	Logger   logging.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DryRun prints each command line to Stdout instead of running it.
	DryRun bool
}

// NewRunner returns a runner attached to the process's standard streams.
func NewRunner(root string, allowed map[string]bool, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Runner{
		Root:     root,
		Allowed:  allowed,
		Executor: ExecExecutor{},
		Logger:   logger.WithComponent("tasks"),
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Run executes the recipe's invocations in order and stops at the first
// failure. Every command is checked against the allowlist and every argument
// is screened before anything starts.
func (r *Runner) Run(ctx context.Context, recipe Recipe, arg string) error {
	if err := validateRecipeArg(recipe, arg); err != nil {
		return err
	}

	commands := make([]Command, 0, len(recipe.Invocations))
	for _, inv := range recipe.Invocations {
		cmd, err := r.resolve(inv, arg)
		if err != nil {
			return err
		}
		commands = append(commands, cmd)
	}

	perf := logging.StartOperation(r.Logger, "task:"+recipe.Name)
	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return errors.NewCancelledError("task interrupted", err)
		}

		line := recipe.Invocations[i].String()
		if arg != "" {
			line = strings.ReplaceAll(line, ArgPlaceholder, arg)
		}

		if r.DryRun {
			fmt.Fprintln(r.Stdout, line)
			continue
		}

		r.Logger.Debug(ctx, "Running command", "task", recipe.Name, "command", line)
		if err := r.Executor.Execute(ctx, cmd); err != nil {
			if ctx.Err() != nil {
				return errors.NewCancelledError("task interrupted", ctx.Err())
			}
			execErr := errors.NewExecutionError(errors.ErrCodeCommandFailed, "command failed: "+line, err).
				WithContext("task", recipe.Name)
			var exitErr *exec.ExitError
			if stderrors.As(err, &exitErr) {
				execErr.WithContext("exit_code", exitErr.ExitCode())
			}
			perf.EndWithError(ctx, execErr)

			return execErr
		}
	}
	perf.End(ctx, "commands", len(commands))

	return nil
}

func validateRecipeArg(recipe Recipe, arg string) error {
	if recipe.Arg == "" {
		if arg != "" {
			return errors.NewValidationError(errors.ErrCodeInvalidArgument,
				fmt.Sprintf("task %s takes no argument", recipe.Name))
		}
		return nil
	}

	if arg == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidArgument,
			fmt.Sprintf("task %s requires %s", recipe.Name, recipe.Arg)).
			WithSuggestions(fmt.Sprintf("starter task run %s <%s>", recipe.Name, strings.ToLower(recipe.Arg)))
	}

	if err := validation.ValidateArgument(arg); err != nil {
		return errors.NewFieldValidationError(strings.ToLower(recipe.Arg), arg, err.Error()).
			ToStarterError(errors.ErrCodeInvalidArgument)
	}

	if recipe.Name == "new-app" && !AppNamePattern.MatchString(arg) {
		return errors.NewFieldValidationError("app name", arg,
			"must start with a lowercase letter or underscore and contain only lowercase letters, digits and underscores").
			ToStarterError(errors.ErrCodeInvalidArgument)
	}

	return nil
}

func (r *Runner) resolve(inv Invocation, arg string) (Command, error) {
	if err := validation.ValidateCommand(inv.Command, r.Allowed); err != nil {
		return Command{}, errors.NewValidationError(errors.ErrCodeCommandRejected, err.Error()).
			WithContext("command", inv.Command)
	}

	args := make([]string, len(inv.Args))
	for i, a := range inv.Args {
		a = strings.ReplaceAll(a, ArgPlaceholder, arg)
		if err := validation.ValidateArgument(a); err != nil {
			return Command{}, errors.NewValidationError(errors.ErrCodeInvalidArgument,
				fmt.Sprintf("invalid argument %q: %v", a, err))
		}
		args[i] = a
	}

	dir := r.Root
	if inv.Dir != "" {
		if err := validation.ValidateRelativePath(inv.Dir); err != nil {
			return Command{}, errors.ErrInvalidPath(inv.Dir, err)
		}
		dir = filepath.Join(r.Root, filepath.FromSlash(inv.Dir))
	}

	return Command{
		Name:   inv.Command,
		Args:   args,
		Dir:    dir,
		Stdin:  r.Stdin,
		Stdout: r.Stdout,
		Stderr: r.Stderr,
	}, nil
}
