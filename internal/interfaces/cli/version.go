package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"supportdesk/internal/shared/version"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(app.out, version.String())
		},
	}
}
