// Package tasks wraps the template's everyday developer commands (dev server,
// migrations, linting, tests, app scaffolding) as named recipes. Recipes are
// pass-through invocations of external tools; nothing here reimplements them.
package tasks

import (
	"path"
	"sort"
	"strings"

	"github.com/conneroisu/starter/internal/errors"
)

// ArgPlaceholder in an invocation argument is replaced by the recipe
// argument at run time.
const ArgPlaceholder = "{arg}"

// Invocation is a single external command.
type Invocation struct {
	Command string   `json:"command" yaml:"command"`
	Args    []string `json:"args" yaml:"args"`
	// Dir is relative to the project root; empty means the root itself.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// String renders the invocation as a command line.
func (i Invocation) String() string {
	parts := append([]string{i.Command}, i.Args...)
	line := strings.Join(parts, " ")
	if i.Dir != "" {
		line = "(cd " + i.Dir + " && " + line + ")"
	}

	return line
}

// Recipe is a named sequence of invocations.
type Recipe struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Arg         string       `json:"arg,omitempty" yaml:"arg,omitempty"`
	Invocations []Invocation `json:"invocations" yaml:"invocations"`
}

// Registry holds the known recipes.
type Registry struct {
	recipes map[string]Recipe
}

// NewRegistry builds the built-in recipes for a project whose Django entry
// point lives at managePy (relative to the project root).
func NewRegistry(managePy string) *Registry {
	managePy = path.Clean(managePy)
	srcDir := path.Dir(managePy)
	manage := func(args ...string) Invocation {
		return Invocation{Command: "uv", Args: append([]string{"run", "python", managePy}, args...)}
	}

	r := &Registry{recipes: make(map[string]Recipe)}
	for _, rec := range []Recipe{
		{
			Name:        "install",
			Description: "Sync dependencies and install pre-commit hooks",
			Invocations: []Invocation{
				{Command: "uv", Args: []string{"sync"}},
				{Command: "uv", Args: []string{"run", "pre-commit", "install"}},
			},
		},
		{
			Name:        "run",
			Description: "Start the Django development server",
			Invocations: []Invocation{manage("runserver")},
		},
		{
			Name:        "migrate",
			Description: "Apply database migrations",
			Invocations: []Invocation{manage("migrate")},
		},
		{
			Name:        "makemigrations",
			Description: "Create migrations for model changes",
			Invocations: []Invocation{manage("makemigrations")},
		},
		{
			Name:        "shell",
			Description: "Open the Django shell",
			Invocations: []Invocation{manage("shell")},
		},
		{
			Name:        "check",
			Description: "Run all pre-commit hooks",
			Invocations: []Invocation{
				{Command: "uv", Args: []string{"run", "pre-commit", "run", "--all-files"}},
			},
		},
		{
			Name:        "deploy-check",
			Description: "Run Django deployment checks",
			Invocations: []Invocation{manage("check", "--deploy")},
		},
		{
			Name:        "collectstatic",
			Description: "Collect static files",
			Invocations: []Invocation{manage("collectstatic", "--noinput")},
		},
		{
			Name:        "lint",
			Description: "Lint and format with ruff",
			Invocations: []Invocation{
				{Command: "uv", Args: []string{"run", "ruff", "check", "--fix", "."}},
				{Command: "uv", Args: []string{"run", "ruff", "format", "."}},
			},
		},
		{
			Name:        "format",
			Description: "Format with ruff",
			Invocations: []Invocation{
				{Command: "uv", Args: []string{"run", "ruff", "format", "."}},
			},
		},
		{
			Name:        "test",
			Description: "Run the pytest suite",
			Invocations: []Invocation{
				{Command: "uv", Args: []string{"run", "pytest"}},
			},
		},
		{
			Name:        "new-app",
			Description: "Create a new Django app",
			Arg:         "NAME",
			Invocations: []Invocation{
				{
					Command: "uv",
					Args:    []string{"run", "python", path.Base(managePy), "startapp", ArgPlaceholder},
					Dir:     srcDirOrEmpty(srcDir),
				},
			},
		},
	} {
		r.recipes[rec.Name] = rec
	}

	return r
}

func srcDirOrEmpty(dir string) string {
	if dir == "." {
		return ""
	}

	return dir
}

// List returns the recipes sorted by name.
func (r *Registry) List() []Recipe {
	list := make([]Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	return list
}

// Names returns the recipe names sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Get returns the named recipe. An unknown name yields a not-found error
// suggesting the closest known recipe.
func (r *Registry) Get(name string) (Recipe, error) {
	if rec, ok := r.recipes[name]; ok {
		return rec, nil
	}

	var suggestions []string
	if match := errors.ClosestMatch(name, r.Names(), 3); match != "" {
		suggestions = append(suggestions, "Did you mean '"+match+"'?")
	}
	suggestions = append(suggestions, "Run 'starter task list' to see available tasks")

	return Recipe{}, errors.ErrTaskNotFound(name, suggestions...)
}
