package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/common"
	"github.com/yext/hellod/home"
	"github.com/yext/hellod/updates"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Displays the currently installed version of hellod",
	// Skip loading config
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("hellod version %v\n", common.HellodVersion)
		if !*versionFlags.check {
			return nil
		}
		dirCfg, err := home.NewConfiguration(hellodHome)
		if err != nil {
			return errors.WithStack(err)
		}
		// Logging is not set up for this command, so diagnostics are discarded
		// rather than written to the terminal.
		source := updates.NewGitHubReleases(filepath.Join(dirCfg.CacheDir, "version"), common.NullLogger{})
		return errors.WithStack(checkUpdateAvailable(os.Stdout, source, common.NullLogger{}))
	},
}

var versionFlags struct {
	check *bool
}

func checkUpdateAvailable(out io.Writer, source updates.ReleaseSource, logger common.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger = common.PrefixLogger{Prefix: "updates: ", Logger: common.MaskLogger(logger)}
	updateAvailable, latestVersion, err := updates.UpdateAvailable(ctx, source, "yext", "hellod", common.HellodVersion, logger)
	if err != nil {
		return errors.WithStack(err)
	}
	if updateAvailable {
		fmt.Fprintf(out, "A new version of hellod is available (%v), update with:\n\tgo install github.com/yext/hellod@latest\n", latestVersion)
		return nil
	}
	fmt.Fprintln(out, "hellod is up to date")
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)

	versionFlags.check = versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
