package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/instance"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Interrupt a running hellod and wait for it to exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := hellodInstance.Stop(*stopFlags.timeout)
		if errors.Cause(err) == instance.ErrNotRunning {
			fmt.Println("hellod is not running")
			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Println("hellod stopped")
		return nil
	},
}

var stopFlags struct {
	timeout *time.Duration
}

func init() {
	RootCmd.AddCommand(stopCmd)

	stopFlags.timeout = stopCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Time to wait for the server to finish draining")
}
