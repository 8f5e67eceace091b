package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/logs"
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"tail"},
	Short:   "Print the hellod diagnostic log",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.LogFile
		if path == "" {
			path = filepath.Join(dirConfig.LogDir, "hellod.log")
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		return errors.WithStack(
			logs.Follow(ctx, path, *logFlags.follow, logs.Printer{Out: os.Stdout}),
		)
	},
}

var logFlags struct {
	follow *bool
}

func init() {
	RootCmd.AddCommand(logCmd)

	logFlags.follow = logCmd.Flags().BoolP("follow", "f", false, "Keep printing lines as they are written")
}
