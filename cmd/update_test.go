package cmd

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/abhisek/blockmath/internal/selfupdate"
	"github.com/spf13/cobra"
)

func newUpdateFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "update"}
	c.Flags().String("repo", "", "")
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c
}

func TestReleaseChannel(t *testing.T) {
	t.Setenv(releaseEnv, "")
	rel, err := releaseChannel(newUpdateFlagCmd(t))
	if err != nil || rel != selfupdate.DefaultRelease {
		t.Errorf("default = %+v, %v", rel, err)
	}

	t.Setenv(releaseEnv, "school/blockmath")
	rel, err = releaseChannel(nil)
	if err != nil || rel.String() != "school/blockmath" {
		t.Errorf("env = %+v, %v", rel, err)
	}

	rel, err = releaseChannel(newUpdateFlagCmd(t, "--repo", "kid/fork"))
	if err != nil || rel.String() != "kid/fork" {
		t.Errorf("flag over env = %+v, %v", rel, err)
	}

	if _, err := releaseChannel(newUpdateFlagCmd(t, "--repo", "nope")); err == nil {
		t.Error("expected error for repo without owner")
	}
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	printProgress(&buf, selfupdate.UpdateProgress{Stage: selfupdate.StageVerify, Message: "Verifying checksum..."})
	printProgress(&buf, selfupdate.UpdateProgress{Stage: selfupdate.StageDone, Message: "Updated to v2.0.0"})
	want := "  Verifying checksum...\n✓ Updated to v2.0.0\n"
	if buf.String() != want {
		t.Errorf("progress = %q, want %q", buf.String(), want)
	}
}

func TestResolveVersion(t *testing.T) {
	withInfo := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}
	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }

	if got := resolveVersion("v1.2.0", withInfo("v9.9.9")); got != "v1.2.0" {
		t.Errorf("ldflags version = %q", got)
	}
	if got := resolveVersion("(devel)", withInfo("v1.3.0")); got != "v1.3.0" {
		t.Errorf("build info version = %q", got)
	}
	if got := resolveVersion("(devel)", noInfo); got != "(devel)" {
		t.Errorf("no build info = %q", got)
	}
}

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf, "kid/fork", "/tmp/blockmath.db")
	out := buf.String()
	for _, want := range []string{"blockmath ", "releases: kid/fork", "database: /tmp/blockmath.db"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
