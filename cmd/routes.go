package cmd

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yext/hellod/server"
)

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes served",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.WithStack(printRoutes(os.Stdout))
	},
}

func printRoutes(out io.Writer) error {
	routes, err := server.Routes(server.NewRouter(nil))
	if err != nil {
		return errors.WithStack(err)
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{
		"Method",
		"Path",
	})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, route := range routes {
		table.Append([]string{
			route.Method,
			route.Pattern,
		})
	}
	table.Render()
	return nil
}

func init() {
	RootCmd.AddCommand(routesCmd)
}
