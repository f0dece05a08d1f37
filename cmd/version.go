package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/kamusis/scout-cli/cmd.version=..." at
// release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show scout version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	c, d := commit, buildDate
	if c == "" || d == "" {
		vc, vd := vcsInfo()
		if c == "" {
			c = vc
		}
		if d == "" {
			d = vd
		}
	}
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", emptyAsNA(c))
	fmt.Printf("Build Date: %s\n", emptyAsNA(d))
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}

// vcsInfo falls back to the VCS stamp the go tool embeds in local builds.
func vcsInfo() (revision, date string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			date = s.Value
		}
	}
	return revision, date
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
