package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			b := o.build
			fmt.Fprintf(cmd.OutOrStdout(), "tasks %s (commit: %s, built: %s)\n", b.Version, b.Commit, b.Date)
		},
	}
}
