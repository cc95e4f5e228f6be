package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <dest.sqlite>",
		Short: "Write a consistent copy of the workspace db",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			dest, err := filepath.Abs(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Backup(cmd.Context(), dest); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": dest}})
		},
	}
	return cmd
}
