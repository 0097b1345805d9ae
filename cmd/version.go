package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/starter/internal/version"
)

var (
	versionFormat = newEnumValue("text", "text", "json")
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for starter including:

- Semantic version number
- Git commit hash
- Build timestamp
- Go version used for compilation
- Target platform (OS/architecture)

Examples:
  starter version              # Show version details
  starter version --short      # Show the version only
  starter version --format json`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().VarP(versionFormat, "format", "f", "Output format ("+versionFormat.Allowed()+")")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	registerEnumCompletion(versionCmd, "format", versionFormat)
}

func runVersionCommand(cmd *cobra.Command, _ []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if versionFormat.String() == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			version.Info
			IsRelease bool `json:"is_release"`
		}{info, info.IsRelease()})
	}

	if versionShort {
		fmt.Fprintln(out, info.Short())
		return nil
	}

	fmt.Fprint(out, info.String())
	return nil
}
