package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/starter/internal/tasks"
	"github.com/conneroisu/starter/internal/ui"
)

var (
	taskListOutput = newEnumValue("table", "table", "json", "yaml")
	taskRunDryRun  bool
	taskDir        string
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Run developer tasks for the project",
	Long: `Run the project's everyday developer commands.

Every task is a thin wrapper around uv, Django's manage.py, ruff or pytest.
Only commands on the tasks.allowed_commands list may run.`,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskRunCmd = &cobra.Command{
	Use:   "run NAME [ARG]",
	Short: "Run a task",
	Long: `Run a task by name. Tasks that take an argument, such as new-app, expect it
after the task name.

Examples:
  starter task run migrate
  starter task run new-app blog
  starter task run lint --dry-run`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || appConfig == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return tasks.NewRegistry(appConfig.Tasks.ManagePy).Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runTaskRun,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskRunCmd)

	addOutputFlag(taskListCmd, taskListOutput)

	taskRunCmd.Flags().BoolVar(&taskRunDryRun, "dry-run", false, "Print the commands instead of running them")
	addDirFlag(taskRunCmd, &taskDir)
}

func runTaskList(cmd *cobra.Command, _ []string) error {
	registry := tasks.NewRegistry(appConfig.Tasks.ManagePy)

	return writeTaskList(cmd.OutOrStdout(), taskListOutput.String(), registry.List())
}

func writeTaskList(w io.Writer, format string, recipes []tasks.Recipe) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(recipes)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(recipes); err != nil {
			return err
		}
		return encoder.Close()
	default:
		rows := make([][]string, 0, len(recipes))
		for _, r := range recipes {
			name := r.Name
			if r.Arg != "" {
				name += " " + r.Arg
			}
			commands := make([]string, 0, len(r.Invocations))
			for _, inv := range r.Invocations {
				commands = append(commands, inv.String())
			}
			rows = append(rows, []string{name, r.Description, strings.Join(commands, "; ")})
		}
		ui.NewPrinter(w, noColor).Table([]string{"task", "description", "runs"}, rows)
		return nil
	}
}

func runTaskRun(cmd *cobra.Command, args []string) error {
	registry := tasks.NewRegistry(appConfig.Tasks.ManagePy)
	recipe, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	arg := ""
	if len(args) == 2 {
		arg = args[1]
	}

	root, err := projectRoot(taskDir)
	if err != nil {
		return err
	}

	runner := tasks.NewRunner(root, appConfig.AllowedCommandSet(), logger)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()
	runner.DryRun = taskRunDryRun

	if !taskRunDryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "→ %s\n", recipe.Description)
	}

	return runner.Run(cmd.Context(), recipe, arg)
}
