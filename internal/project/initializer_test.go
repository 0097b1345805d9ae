package project

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/starter/internal/config"
	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/logging"
	"github.com/conneroisu/starter/internal/testutils"
)

func statuses(r *Report) map[string]Status {
	m := make(map[string]Status, len(r.Results))
	for _, res := range r.Results {
		m[res.Name] = res.Status
	}

	return m
}

func TestInitialize(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "my-app"})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.False(t, report.Failed())
	assert.False(t, report.Interrupted)
	assert.Equal(t, map[string]Status{
		StepRemoveGit:      StatusDone,
		StepRemoveVenv:     StatusDone,
		StepRemoveDatabase: StatusDone,
		StepReadme:         StatusDone,
		StepMetadata:       StatusDone,
	}, statuses(report))

	assert.NoDirExists(t, filepath.Join(root, ".git"))
	assert.NoDirExists(t, filepath.Join(root, ".venv"))
	assert.NoFileExists(t, filepath.Join(root, "src", "db.sqlite3"))
	assert.FileExists(t, filepath.Join(root, "src", "manage.py"))
	assert.FileExists(t, filepath.Join(root, "src", "config", "settings.py"))

	readme := testutils.ReadFile(t, root, "README.md")
	assert.Equal(t, "# my-app\n\nA batteries-included template.\n\n## Setup\n\nRun `just install`.\n", readme)

	name, desc, err := ReadProjectMetadata([]byte(testutils.ReadFile(t, root, "pyproject.toml")))
	require.NoError(t, err)
	assert.Equal(t, "my-app", name)
	assert.Equal(t, "my-app - A Django project", desc)
	assert.Contains(t, desc, "my-app")

	assert.Equal(t, "my-app - A Django project", report.Description)
	assert.Equal(t, config.DefaultFollowUp, report.FollowUp)
}

func TestInitializeIdempotent(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())
	req := Request{ProjectName: "my-app", Description: "Shop front"}

	_, err := in.Initialize(context.Background(), req)
	require.NoError(t, err)

	readme := testutils.ReadFile(t, root, "README.md")
	pyproject := testutils.ReadFile(t, root, "pyproject.toml")

	report, err := in.Initialize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{
		StepRemoveGit:      StatusAbsent,
		StepRemoveVenv:     StatusAbsent,
		StepRemoveDatabase: StatusAbsent,
		StepReadme:         StatusUnchanged,
		StepMetadata:       StatusUnchanged,
	}, statuses(report))

	assert.Equal(t, readme, testutils.ReadFile(t, root, "README.md"))
	assert.Equal(t, pyproject, testutils.ReadFile(t, root, "pyproject.toml"))
}

func TestInitializeLogsRequest(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelInfo, Format: "text", Output: &buf})
	in := NewInitializer(root, config.Default(), logger)

	_, err := in.Initialize(context.Background(), Request{ProjectName: "shop", Interactive: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="Initializing project"`)
	assert.Contains(t, out, "project=shop")
	assert.Contains(t, out, "interactive=true")
	assert.Contains(t, out, "component=initializer")
}

func TestInitializeKeepsFileModes(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	readme := filepath.Join(root, "README.md")
	pyproject := filepath.Join(root, "pyproject.toml")
	require.NoError(t, os.Chmod(readme, 0o600))
	require.NoError(t, os.Chmod(pyproject, 0o640))
	in := NewInitializer(root, config.Default(), logging.Nop())

	_, err := in.Initialize(context.Background(), Request{ProjectName: "shop"})
	require.NoError(t, err)

	assert.Contains(t, testutils.ReadFile(t, root, "README.md"), "# shop\n")
	testutils.AssertFilePermissions(t, readme, 0o600)
	testutils.AssertFilePermissions(t, pyproject, 0o640)
}

func TestInitializeSkipGit(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "shop", SkipGitRemoval: true})
	require.NoError(t, err)

	res, ok := report.Result(StepRemoveGit)
	require.True(t, ok)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "ref: refs/heads/main\n", testutils.ReadFile(t, root, ".git/HEAD"))
	assert.NoDirExists(t, filepath.Join(root, ".venv"))
}

func TestInitializeCustomDescription(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())

	desc := `Inventory "tracker" for C:\stores`
	_, err := in.Initialize(context.Background(), Request{ProjectName: "stock", Description: desc})
	require.NoError(t, err)

	_, got, err := ReadProjectMetadata([]byte(testutils.ReadFile(t, root, "pyproject.toml")))
	require.NoError(t, err)
	assert.Equal(t, desc, got)
}

func TestInitializeConfiguredDescription(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	cfg := config.Default()
	cfg.Defaults.Description = "{{.Name}}: internal service"
	in := NewInitializer(root, cfg, logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "billing"})
	require.NoError(t, err)
	assert.Equal(t, "billing: internal service", report.Description)
}

func TestInitializeInvalidNameMutatesNothing(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "Bad Name"})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.IsValidation(err))

	assert.DirExists(t, filepath.Join(root, ".git"))
	assert.DirExists(t, filepath.Join(root, ".venv"))
	assert.FileExists(t, filepath.Join(root, "src", "db.sqlite3"))
	assert.Equal(t, testutils.TemplateReadme, testutils.ReadFile(t, root, "README.md"))
}

func TestInitializeDryRun(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "shop", DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 5, report.Counts()[StatusPlanned])

	assert.DirExists(t, filepath.Join(root, ".git"))
	assert.DirExists(t, filepath.Join(root, ".venv"))
	assert.FileExists(t, filepath.Join(root, "src", "db.sqlite3"))
	assert.Equal(t, testutils.TemplateReadme, testutils.ReadFile(t, root, "README.md"))
	assert.Equal(t, testutils.TemplatePyproject, testutils.ReadFile(t, root, "pyproject.toml"))
}

func TestInitializeFailureIsolation(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	in := NewInitializer(root, config.Default(), logging.Nop())
	in.removeAll = func(path string) error {
		if filepath.Base(path) == ".venv" {
			return fmt.Errorf("permission denied")
		}
		return os.RemoveAll(path)
	}

	report, err := in.Initialize(context.Background(), Request{ProjectName: "shop"})
	require.Error(t, err)
	require.NotNil(t, report)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncomplete))
	assert.False(t, errors.IsCancelled(err))
	assert.True(t, report.Failed())

	assert.Equal(t, map[string]Status{
		StepRemoveGit:      StatusDone,
		StepRemoveVenv:     StatusFailed,
		StepRemoveDatabase: StatusDone,
		StepReadme:         StatusDone,
		StepMetadata:       StatusDone,
	}, statuses(report))

	res, _ := report.Result(StepRemoveVenv)
	assert.True(t, errors.HasCode(res.Err, errors.ErrCodeRemoveFailed))
	assert.DirExists(t, filepath.Join(root, ".venv"))
	assert.Contains(t, testutils.ReadFile(t, root, "README.md"), "# shop\n")
}

func TestInitializeMissingFiles(t *testing.T) {
	root := t.TempDir()
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "shop", Description: "A shop"})
	require.Error(t, err)

	assert.Equal(t, map[string]Status{
		StepRemoveGit:      StatusAbsent,
		StepRemoveVenv:     StatusAbsent,
		StepRemoveDatabase: StatusAbsent,
		StepReadme:         StatusDone,
		StepMetadata:       StatusFailed,
	}, statuses(report))
	assert.Equal(t, "# shop\n\n## Overview\n\nA shop\n", testutils.ReadFile(t, root, "README.md"))
}

func TestInitializeReadmeIsDirectory(t *testing.T) {
	root := testutils.CreateTemplateCheckout(t)
	require.NoError(t, os.Remove(filepath.Join(root, "README.md")))
	require.NoError(t, os.Mkdir(filepath.Join(root, "README.md"), 0o755))
	in := NewInitializer(root, config.Default(), logging.Nop())

	report, err := in.Initialize(context.Background(), Request{ProjectName: "shop"})
	require.Error(t, err)

	res, _ := report.Result(StepReadme)
	assert.Equal(t, StatusFailed, res.Status)
	res, _ = report.Result(StepMetadata)
	assert.Equal(t, StatusDone, res.Status)
}

func TestInitializeCancelled(t *testing.T) {
	t.Run("before the first step", func(t *testing.T) {
		root := testutils.CreateTemplateCheckout(t)
		in := NewInitializer(root, config.Default(), logging.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := in.Initialize(ctx, Request{ProjectName: "shop"})
		assert.Nil(t, report)
		assert.True(t, errors.IsCancelled(err))
		assert.DirExists(t, filepath.Join(root, ".git"))
		assert.Equal(t, testutils.TemplateReadme, testutils.ReadFile(t, root, "README.md"))
	})

	t.Run("between steps", func(t *testing.T) {
		root := testutils.CreateTemplateCheckout(t)
		in := NewInitializer(root, config.Default(), logging.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		in.removeAll = func(path string) error {
			cancel()
			return os.RemoveAll(path)
		}

		report, err := in.Initialize(ctx, Request{ProjectName: "shop"})
		assert.True(t, errors.IsCancelled(err))
		require.NotNil(t, report)
		assert.Equal(t, map[string]Status{
			StepRemoveGit:      StatusDone,
			StepRemoveVenv:     StatusSkipped,
			StepRemoveDatabase: StatusSkipped,
			StepReadme:         StatusSkipped,
			StepMetadata:       StatusSkipped,
		}, statuses(report))
		assert.True(t, report.Interrupted)
		assert.Equal(t, 4, report.NotRun())
		assert.DirExists(t, filepath.Join(root, ".venv"))
	})
}
