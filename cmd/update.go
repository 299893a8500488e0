package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abhisek/blockmath/internal/selfupdate"
	"github.com/spf13/cobra"
)

// releaseEnv names the repository to update from when --repo is unset.
const releaseEnv = "BLOCKMATH_RELEASE_REPO"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the latest blockmath release",
	Long: "Download the release archive for this platform, verify it against the release checksums " +
		"and replace the running binary. Use --version to install a specific release.",
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().String("repo", "", "Release repository as owner/name (default "+selfupdate.DefaultRelease.String()+", or $"+releaseEnv+")")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
}

// releaseChannel returns the release to follow: --repo if the command has
// it set, then $BLOCKMATH_RELEASE_REPO, then the official release.
func releaseChannel(cmd *cobra.Command) (selfupdate.Release, error) {
	repo := ""
	if cmd != nil && cmd.Flags().Lookup("repo") != nil {
		repo, _ = cmd.Flags().GetString("repo")
	}
	if repo == "" {
		repo = os.Getenv(releaseEnv)
	}
	if repo == "" {
		return selfupdate.DefaultRelease, nil
	}
	return selfupdate.ParseRepo(repo)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	rel, err := releaseChannel(cmd)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetString("version")
	checkOnly, _ := cmd.Flags().GetBool("check")

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	checker := selfupdate.NewChecker(selfupdate.WithTimeout(2*time.Minute), selfupdate.WithRelease(rel))
	out := cmd.OutOrStdout()
	if checkOnly {
		return reportCheck(ctx, out, checker)
	}

	err = checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		printProgress(out, p)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "This is a development build. Install a release build to use update.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(out, "Already on %s.\n", version)
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nThe binary is not writable. Try: sudo %s update", err, rel.Binary)
	}
	return err
}

func reportCheck(ctx context.Context, out io.Writer, checker *selfupdate.Checker) error {
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check %s: %w", checker.Release(), err)
	}
	if !res.UpdateAvailable {
		fmt.Fprintf(out, "%s is up to date (latest release %s).\n", version, res.LatestVersion)
		return nil
	}
	fmt.Fprintf(out, "%s is available (you have %s).\n%s\n", res.LatestVersion, version, res.ReleaseURL)
	return nil
}

func printProgress(out io.Writer, p selfupdate.UpdateProgress) {
	switch p.Stage {
	case selfupdate.StageDone:
		fmt.Fprintln(out, "✓", p.Message)
	case selfupdate.StageCheck, selfupdate.StageDownload:
		fmt.Fprintln(out, p.Message)
	default:
		fmt.Fprintln(out, "  "+p.Message)
	}
}

// checkForUpdate reports the latest release when it is newer than this
// build. Failures are silent; the home screen just shows no notice.
func checkForUpdate(ctx context.Context) (string, bool) {
	rel, err := releaseChannel(nil)
	if err != nil {
		return "", false
	}
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(5*time.Second), selfupdate.WithRelease(rel))
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil || !res.UpdateAvailable {
		return "", false
	}
	return res.LatestVersion, true
}
