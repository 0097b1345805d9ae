package project

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/conneroisu/starter/internal/config"
	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/logging"
)

// Initializer personalizes a template checkout rooted at Root.
type Initializer struct {
	Root   string
	Config *config.Config
	Logger logging.Logger

	removeAll func(path string) error
	remove    func(path string) error
}

// NewInitializer creates an initializer for the checkout at root.
func NewInitializer(root string, cfg *config.Config, logger logging.Logger) *Initializer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Initializer{
		Root:      root,
		Config:    cfg,
		Logger:    logger.WithComponent("initializer"),
		removeAll: os.RemoveAll,
		remove:    os.Remove,
	}
}

type step struct {
	name   string
	target string
	run    func(ctx context.Context, req Request, path string) StepResult
}

// Initialize validates req and applies the initialization steps in order.
//
// An invalid request returns a validation error and touches nothing. A
// context cancelled before the first step returns a cancelled error and
// touches nothing; cancelled later, the remaining steps are reported as
// skipped. A failing step is recorded and logged and the run moves on;
// the returned error then carries ErrCodeIncomplete alongside the report.
func (in *Initializer) Initialize(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError("initialization interrupted", err)
	}

	if req.Description == "" {
		desc, err := in.Config.DefaultDescription(req.ProjectName)
		if err != nil {
			return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "cannot render default description", err)
		}
		req.Description = desc
	}

	perf := logging.StartOperation(in.Logger, "initialize")
	perf.Info(ctx, "Initializing project",
		"project", req.ProjectName,
		"dry_run", req.DryRun,
		"skip_git", req.SkipGitRemoval,
		"interactive", req.Interactive)

	report := &Report{
		ProjectName: req.ProjectName,
		Description: req.Description,
		DryRun:      req.DryRun,
		FollowUp:    append([]string(nil), in.Config.FollowUp...),
	}
	collector := errors.NewErrorCollector()

	paths := in.Config.Paths
	steps := []step{
		{StepRemoveGit, paths.GitDir, in.removeGit},
		{StepRemoveVenv, paths.VenvDir, in.removeDir},
		{StepRemoveDatabase, paths.Database, in.removeFile},
		{StepReadme, paths.Readme, in.rewriteReadme},
		{StepMetadata, paths.Metadata, in.rewriteMetadata},
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			for _, rest := range steps[i:] {
				report.Results = append(report.Results, StepResult{
					Name:   rest.name,
					Target: rest.target,
					Status: StatusSkipped,
					Detail: DetailInterrupted,
				})
			}
			report.Interrupted = true
			cancelled := errors.NewCancelledError("initialization interrupted", err)
			perf.EndWithError(ctx, cancelled, "completed_steps", i)

			return report, cancelled
		}

		path := filepath.Join(in.Root, filepath.FromSlash(s.target))
		res := s.run(ctx, req, path)
		res.Name = s.name
		res.Target = s.target

		if res.Status == StatusFailed {
			in.Logger.Warn(ctx, res.Err, "Step failed", "step", s.name, "path", s.target)
			collector.Add(errors.StepFailure{
				Step: s.name,
				Path: s.target,
				Err:  res.Err,
			})
		} else {
			in.Logger.Debug(ctx, "Step finished", "step", s.name, "status", string(res.Status))
		}

		report.Results = append(report.Results, res)
	}

	if err := collector.Err(); err != nil {
		perf.EndWithError(ctx, err)
		return report, err
	}
	perf.End(ctx)

	return report, nil
}

func (in *Initializer) removeGit(ctx context.Context, req Request, path string) StepResult {
	if req.SkipGitRemoval {
		return StepResult{Status: StatusSkipped, Detail: "--skip-git"}
	}

	return in.removeDir(ctx, req, path)
}

func (in *Initializer) removeDir(_ context.Context, req Request, path string) StepResult {
	return in.removePath(req, path, in.removeAll)
}

func (in *Initializer) removeFile(_ context.Context, req Request, path string) StepResult {
	return in.removePath(req, path, in.remove)
}

func (in *Initializer) removePath(req Request, path string, remove func(string) error) StepResult {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return StepResult{Status: StatusAbsent}
		}
		return failed(errors.ErrCodeRemoveFailed, "cannot inspect", path, err)
	}

	if req.DryRun {
		return StepResult{Status: StatusPlanned, Detail: "would remove"}
	}

	if err := remove(path); err != nil {
		return failed(errors.ErrCodeRemoveFailed, "cannot remove", path, err)
	}

	return StepResult{Status: StatusDone, Detail: "removed"}
}

func (in *Initializer) rewriteReadme(_ context.Context, req Request, path string) StepResult {
	content, mode, err := readFile(path)
	if os.IsNotExist(err) {
		if req.DryRun {
			return StepResult{Status: StatusPlanned, Detail: "would create"}
		}
		if err := os.WriteFile(path, NewReadme(req.ProjectName, req.Description), 0o644); err != nil {
			return failed(errors.ErrCodeWriteFailed, "cannot create", path, err)
		}
		return StepResult{Status: StatusDone, Detail: "created"}
	}
	if err != nil {
		return failed(errors.ErrCodeReadFailed, "cannot read", path, err)
	}

	updated, changed := RewriteTitle(content, req.ProjectName)

	return in.writeIfChanged(req, path, updated, changed, mode, "title set to # "+req.ProjectName)
}

func (in *Initializer) rewriteMetadata(_ context.Context, req Request, path string) StepResult {
	content, mode, err := readFile(path)
	if err != nil {
		return failed(errors.ErrCodeReadFailed, "cannot read", path, err)
	}

	updated, changed, err := RewriteProjectMetadata(content, req.ProjectName, req.Description)
	if err != nil {
		var se *errors.StarterError
		if stderrors.As(err, &se) {
			se.WithPath(path)
		}
		return StepResult{Status: StatusFailed, Err: err}
	}

	return in.writeIfChanged(req, path, updated, changed, mode, "name and description updated")
}

func (in *Initializer) writeIfChanged(req Request, path string, content []byte, changed bool, mode fs.FileMode, detail string) StepResult {
	if !changed {
		return StepResult{Status: StatusUnchanged}
	}
	if req.DryRun {
		return StepResult{Status: StatusPlanned, Detail: "would update"}
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return failed(errors.ErrCodeWriteFailed, "cannot write", path, err)
	}

	return StepResult{Status: StatusDone, Detail: detail}
}

func readFile(path string) ([]byte, fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	return content, info.Mode().Perm(), nil
}

func failed(code, message, path string, cause error) StepResult {
	return StepResult{
		Status: StatusFailed,
		Err:    errors.NewIOError(code, message, cause).WithPath(path),
	}
}
