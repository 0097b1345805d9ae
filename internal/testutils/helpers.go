// Package testutils builds template checkouts on disk for tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TemplateReadme is the README shipped with the template.
const TemplateReadme = "# Django Starter\n\nA batteries-included template.\n\n## Setup\n\nRun `just install`.\n"

// TemplatePyproject is the metadata file shipped with the template.
const TemplatePyproject = `[project]
name = "django-starter"
version = "0.1.0"
description = "A Django starter template"
dependencies = ["django>=5.0"]
`

// TemplateFiles lists the files of a fresh template checkout, keyed by
// slash-separated path.
var TemplateFiles = map[string]string{
	".git/HEAD":              "ref: refs/heads/main\n",
	".git/objects/ab/cdef":   "blob",
	".venv/bin/python":       "#!/bin/sh\n",
	".venv/pyvenv.cfg":       "home = /usr/bin\n",
	"src/db.sqlite3":         "SQLite format 3\x00",
	"src/manage.py":          "#!/usr/bin/env python\n",
	"src/config/settings.py": "DEBUG = True\n",
	"README.md":              TemplateReadme,
	"pyproject.toml":         TemplatePyproject,
}

// CreateTemplateCheckout writes TemplateFiles into a fresh temporary
// directory and returns its path.
func CreateTemplateCheckout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	for name, content := range TemplateFiles {
		WriteFile(t, root, name, content)
	}

	return root
}

// WriteFile writes content to the slash-separated name below root, creating
// parent directories.
func WriteFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// ReadFile returns the content of the slash-separated name below root.
func ReadFile(t *testing.T, root, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)

	return string(b)
}

// AssertUntouched fails the test if any template file was removed or
// modified.
func AssertUntouched(t *testing.T, root string) {
	t.Helper()
	for name, content := range TemplateFiles {
		b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		if assert.NoError(t, err, "%s should still exist", name) {
			assert.Equal(t, content, string(b), "%s should be unchanged", name)
		}
	}
}

// AssertFilePermissions checks the permission bits of path.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, expectedMode, info.Mode().Perm())
}
