package cmd

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time. `go install` builds carry
// their module version in the build info instead.
var version = "(devel)"

func init() {
	version = resolveVersion(version, debug.ReadBuildInfo)
}

func resolveVersion(ldflags string, info func() (*debug.BuildInfo, bool)) string {
	if ldflags != "(devel)" {
		return ldflags
	}
	if bi, ok := info(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return ldflags
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version, platform, release channel and database path",
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := releaseChannel(nil)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			dbPath = "unavailable (" + err.Error() + ")"
		}
		writeVersion(cmd.OutOrStdout(), rel.String(), dbPath)
		return nil
	},
}

func writeVersion(out io.Writer, channel, dbPath string) {
	fmt.Fprintf(out, "blockmath %s\n", version)
	fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  releases: %s\n", channel)
	fmt.Fprintf(out, "  database: %s\n", dbPath)
}
