package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumValue is a string flag restricted to a fixed set of values, so typos
// such as "--output ymal" fail at parse time.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Type() string { return "string" }

func (e *enumValue) Set(val string) error {
	val = strings.ToLower(strings.TrimSpace(val))
	for _, a := range e.allowed {
		if val == a {
			e.value = val
			return nil
		}
	}

	return fmt.Errorf("must be one of: %s", e.Allowed())
}

// Allowed lists the accepted values for help text.
func (e *enumValue) Allowed() string {
	return strings.Join(e.allowed, ", ")
}

func registerEnumCompletion(cmd *cobra.Command, name string, e *enumValue) {
	_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return e.allowed, cobra.ShellCompDirectiveNoFileComp
	})
}

// addOutputFlag adds -o/--output restricted to the given formats.
func addOutputFlag(cmd *cobra.Command, target *enumValue) {
	cmd.Flags().VarP(target, "output", "o", "Output format ("+target.Allowed()+")")
	registerEnumCompletion(cmd, "output", target)
}

// addDirFlag adds --dir, the project root the command works in.
func addDirFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "dir", ".", "Project root directory")
	_ = cmd.MarkFlagDirname("dir")
}
