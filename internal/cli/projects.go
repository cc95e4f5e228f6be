package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/outline"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := mutate.CreateProject(snap, title, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveProjects(cmd.Context(), snap.Projects); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), model.EventProjectCreate, p.ID, p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in outline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ps := slices.Clone(snap.Projects)
			slices.SortFunc(ps, outline.CompareProjects)
			return writeOut(cmd, app, map[string]any{"data": projectsTable(ps)})
		},
	}
	return cmd
}
