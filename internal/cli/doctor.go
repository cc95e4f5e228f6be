package cli

import (
	"github.com/spf13/cobra"

	"quire-cli/internal/outline"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the outline for integrity violations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			mirror := outline.NewStore()
			mirror.SetProjects(snap.Projects)
			mirror.SetChapters(snap.Chapters)
			mirror.SetScenes(snap.Scenes)
			vs := mirror.Validate()
			if err := writeOut(cmd, app, map[string]any{
				"data": violationsTable(vs),
				"meta": map[string]any{
					"dir":        s.Dir,
					"violations": len(vs),
				},
			}); err != nil {
				return err
			}

			if fail && len(vs) > 0 {
				return ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if violations are found")
	return cmd
}
