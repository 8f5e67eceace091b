package cmd

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve requests until interrupted",
	Long: `Bind the configured address, print "listening on <address>" and serve
until an interrupt is received. In-flight requests are allowed to complete
before exiting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WithStack(serve())
	},
}

func serve() error {
	b := &server.Bootstrap{
		Config: server.Config{
			Address:      settings.Address,
			DrainTimeout: settings.DrainTimeout,
		},
		Output:  os.Stdout,
		Logger:  log.Default(),
		Signals: recordAndInterrupt,
		Hooks: []func() error{
			hellodInstance.Clear,
		},
	}
	return errors.WithStack(b.Run(context.Background()))
}

// recordAndInterrupt records this process's pid, so that `hellod stop` can
// find it, before registering for interrupts. It is only called once bound.
func recordAndInterrupt() (<-chan struct{}, error) {
	if err := hellodInstance.Record(os.Getpid()); err != nil {
		log.Printf("could not record pid: %v\n", err)
	}
	return server.Interrupt()
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
