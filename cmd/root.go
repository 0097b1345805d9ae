package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/starter/internal/config"
	"github.com/conneroisu/starter/internal/errors"
	"github.com/conneroisu/starter/internal/logging"
)

var (
	cfgFile   string
	noColor   bool
	logLevel  = newEnumValue("warn", "debug", "info", "warn", "error")
	logFormat = newEnumValue("text", "text", "json")

	// Populated by the root command's PersistentPreRunE.
	appConfig *config.Config
	logger    logging.Logger = logging.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "starter",
	Short: "Personalize the Django starter template and run its developer tasks",
	Long: `starter turns a fresh copy of the Django starter template into your own
project and wraps the everyday developer commands.

Quick Start:
  starter init my-app             Rename the project and reset template state
  starter init                    Same, answering prompts
  starter task list               Show available tasks
  starter task run run            Start the development server

Initialization removes the template's git history, virtual environment and
local database, then rewrites the README title and the [project] table of
pyproject.toml.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

// Execute runs the root command with a context cancelled on SIGINT or
// SIGTERM. The returned error has already been reported on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}

	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .starter.yml, can also use STARTER_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().VarP(logLevel, "log-level", "l", "log level ("+logLevel.Allowed()+")")
	rootCmd.PersistentFlags().Var(logFormat, "log-format", "log format ("+logFormat.Allowed()+")")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	registerEnumCompletion(rootCmd, "log-level", logLevel)
	registerEnumCompletion(rootCmd, "log-format", logFormat)
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. STARTER_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .starter.yml in current directory
func initConfig() {
	// Variables from .env are visible to the STARTER_CONFIG_FILE lookup below.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("STARTER_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".starter")
	}

	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Examples: STARTER_PATHS_DATABASE, STARTER_LOG_LEVEL
	config.SetDefaults(viper.GetViper())
	viper.SetEnvPrefix("STARTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

// setupRun reads the config file and builds the logger shared by all
// subcommands.
func setupRun(cmd *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound || cfgFile != "" || os.Getenv("STARTER_CONFIG_FILE") != "" {
			return errors.NewConfigError(errors.ErrCodeConfigInvalid, "cannot read config file", err)
		}
	}

	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid log level", err)
	}
	format := viper.GetString("log-format")
	if format != "json" {
		format = "text"
	}

	logger = logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}).WithRunID()

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug(cmd.Context(), "Using config file", "path", used)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid configuration", err).
			WithSuggestions("Check .starter.yml and STARTER_* environment variables")
	}
	for i := range cfg.Warnings {
		w := &cfg.Warnings[i]
		logger.Warn(cmd.Context(), w, "Configuration warning", "field", w.Field, "suggestions", w.Suggestions)
	}
	appConfig = cfg

	return nil
}

// reportError prints err with its suggestions. Incomplete runs have already
// been summarized by the report, so only a short line is added.
func reportError(w io.Writer, err error) {
	switch {
	case errors.IsCancelled(err):
		fmt.Fprintln(w, "Cancelled.")
	case errors.HasCode(err, errors.ErrCodeIncomplete):
		fmt.Fprintln(w, "Error:", err)
	default:
		fmt.Fprintln(w, "Error:", errors.FormatErrorWithSuggestions(err))
	}
}
