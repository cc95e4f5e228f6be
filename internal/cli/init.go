package cli

import (
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace (.quire with its sqlite db)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load creates the db and runs migrations on first use.
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":         s.Dir,
					"sqlitePath":  s.DBPath(),
					"workspaceId": snap.WorkspaceID,
					"projects":    len(snap.Projects),
					"chapters":    len(snap.Chapters),
					"scenes":      len(snap.Scenes),
				},
			})
		},
	}
	return cmd
}
