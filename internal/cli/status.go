package cli

import (
	"github.com/spf13/cobra"
)

func newStatusesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "List the workflow statuses and how they are displayed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := statusTable(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": statusesTable(statuses.Entries())})
		},
	}
	return cmd
}
