// Package config provides configuration management for starter using Viper
// for loading from a .starter.yml file, STARTER_ environment variables, and
// command-line flags.
//
// The configuration names the template entries the initializer touches (git
// directory, virtual environment, database file, README and metadata file),
// the default description template, the follow-up reminders printed after a
// run, and the command allowlist used by the task runner.
package config

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults"`
	FollowUp []string       `yaml:"follow_up" mapstructure:"follow_up"`
	Tasks    TasksConfig    `yaml:"tasks" mapstructure:"tasks"`

	// Warnings holds non-fatal validation findings from LoadFrom.
	Warnings []ValidationError `yaml:"-" mapstructure:"-"`
}

// PathsConfig holds locations relative to the project root.
type PathsConfig struct {
	GitDir   string `yaml:"git_dir" mapstructure:"git_dir"`
	VenvDir  string `yaml:"venv_dir" mapstructure:"venv_dir"`
	Database string `yaml:"database" mapstructure:"database"`
	Readme   string `yaml:"readme" mapstructure:"readme"`
	Metadata string `yaml:"metadata" mapstructure:"metadata"`
}

type DefaultsConfig struct {
	// Description is a text/template rendered with {{.Name}}.
	Description string `yaml:"description" mapstructure:"description"`
}

type TasksConfig struct {
	AllowedCommands []string `yaml:"allowed_commands" mapstructure:"allowed_commands"`
	ManagePy        string   `yaml:"manage_py" mapstructure:"manage_py"`
}

const (
	DefaultGitDir              = ".git"
	DefaultVenvDir             = ".venv"
	DefaultDatabase            = "src/db.sqlite3"
	DefaultReadme              = "README.md"
	DefaultMetadata            = "pyproject.toml"
	DefaultDescriptionTemplate = "{{.Name}} - A Django project"
	DefaultManagePy            = "src/manage.py"
)

// DefaultFollowUp lists the manual steps printed after a successful run.
var DefaultFollowUp = []string{
	"Remove the initializer: rm -f starter .starter.yml",
	"Initialize a new git repository: git init",
	"Set up the environment: just install",
	"Create a .env file with your configuration",
	"Run migrations: just dj-migrate",
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			GitDir:   DefaultGitDir,
			VenvDir:  DefaultVenvDir,
			Database: DefaultDatabase,
			Readme:   DefaultReadme,
			Metadata: DefaultMetadata,
		},
		Defaults: DefaultsConfig{
			Description: DefaultDescriptionTemplate,
		},
		FollowUp: append([]string(nil), DefaultFollowUp...),
		Tasks: TasksConfig{
			AllowedCommands: []string{"uv"},
			ManagePy:        DefaultManagePy,
		},
	}
}

// SetDefaults registers the default values on v so that environment
// variables can override keys that never appear in a config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("paths.git_dir", d.Paths.GitDir)
	v.SetDefault("paths.venv_dir", d.Paths.VenvDir)
	v.SetDefault("paths.database", d.Paths.Database)
	v.SetDefault("paths.readme", d.Paths.Readme)
	v.SetDefault("paths.metadata", d.Paths.Metadata)
	v.SetDefault("defaults.description", d.Defaults.Description)
	v.SetDefault("follow_up", d.FollowUp)
	v.SetDefault("tasks.allowed_commands", d.Tasks.AllowedCommands)
	v.SetDefault("tasks.manage_py", d.Tasks.ManagePy)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, fills unset values with defaults
// and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	// Handle slices set via environment variables (viper returns a single
	// space separated string for those).
	if v.IsSet("tasks.allowed_commands") && len(config.Tasks.AllowedCommands) == 0 {
		config.Tasks.AllowedCommands = v.GetStringSlice("tasks.allowed_commands")
	}

	result := ValidateConfigWithDetails(&config)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %w", result.Err())
	}
	if result.HasWarnings() {
		config.Warnings = result.Warnings
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	d := Default()
	if config.Paths.GitDir == "" {
		config.Paths.GitDir = d.Paths.GitDir
	}
	if config.Paths.VenvDir == "" {
		config.Paths.VenvDir = d.Paths.VenvDir
	}
	if config.Paths.Database == "" {
		config.Paths.Database = d.Paths.Database
	}
	if config.Paths.Readme == "" {
		config.Paths.Readme = d.Paths.Readme
	}
	if config.Paths.Metadata == "" {
		config.Paths.Metadata = d.Paths.Metadata
	}
	if config.Defaults.Description == "" {
		config.Defaults.Description = d.Defaults.Description
	}
	if config.FollowUp == nil {
		config.FollowUp = d.FollowUp
	}
	if len(config.Tasks.AllowedCommands) == 0 {
		config.Tasks.AllowedCommands = d.Tasks.AllowedCommands
	}
	if config.Tasks.ManagePy == "" {
		config.Tasks.ManagePy = d.Tasks.ManagePy
	}
}

// DefaultDescription renders the description template for a project name.
func (c *Config) DefaultDescription(name string) (string, error) {
	tmpl, err := template.New("description").Option("missingkey=error").Parse(c.Defaults.Description)
	if err != nil {
		return "", fmt.Errorf("parse description template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return "", fmt.Errorf("render description template: %w", err)
	}

	return buf.String(), nil
}

// AllowedCommandSet returns the task runner allowlist as a lookup map.
func (c *Config) AllowedCommandSet() map[string]bool {
	set := make(map[string]bool, len(c.Tasks.AllowedCommands))
	for _, cmd := range c.Tasks.AllowedCommands {
		set[cmd] = true
	}

	return set
}
