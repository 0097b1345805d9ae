// Package version reports the build identity of the starter binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Info describes the running binary.
type Info struct {
	Version   string    `json:"version" yaml:"version"`
	Commit    string    `json:"commit" yaml:"commit"`
	BuiltAt   time.Time `json:"built_at,omitempty" yaml:"built_at,omitempty"`
	GoVersion string    `json:"go_version" yaml:"go_version"`
	Platform  string    `json:"platform" yaml:"platform"`
	Modified  bool      `json:"modified" yaml:"modified"`
}

// Set at build time with -ldflags "-X github.com/conneroisu/starter/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Get assembles Info from the linker variables, falling back to the VCS
// stamps the Go toolchain embeds.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuiltAt:   parseTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if (info.Version == "" || info.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuiltAt.IsZero() {
				info.BuiltAt = parseTime(s.Value)
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}

	return info
}

// Short returns "v1.2.3", "v1.2.3 (abc1234)" or "dev-abc1234".
func (i Info) Short() string {
	if len(i.Commit) < 7 {
		return i.Version
	}
	short := i.Commit[:7]
	if i.Version == "dev" {
		return "dev-" + short
	}

	return fmt.Sprintf("%s (%s)", i.Version, short)
}

// IsRelease reports whether the binary was built from a tagged version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !strings.HasPrefix(i.Version, "dev-")
}

// String renders the multi-line form printed by "starter version".
func (i Info) String() string {
	var b strings.Builder
	b.WriteString("starter " + i.Short())
	if i.Modified {
		b.WriteString(" (modified)")
	}
	b.WriteByte('\n')
	if !i.BuiltAt.IsZero() {
		fmt.Fprintf(&b, "Built: %s\n", i.BuiltAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(&b, "Go: %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform: %s\n", i.Platform)

	return b.String()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
