package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"quire-cli/internal/importer"
	"quire-cli/internal/model"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Create projects, chapters and scenes from a plain-text outline",
		Long: `Reads an outline file like:

  project "The Long Night" {
    chapter "Arrival" [draft] {
      scene "Dock" [in-progress] "Mara steps off the ferry."
    }
  }

Everything is appended after existing entries. Nothing is saved if any line fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var r io.Reader = cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			doc, err := importer.Parse(name, r)
			if err != nil {
				return writeErr(cmd, err)
			}

			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := importer.Apply(snap, doc, now())
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx := cmd.Context()
			if err := s.SaveProjects(ctx, snap.Projects); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveChapters(ctx, snap.Chapters); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveScenes(ctx, snap.Scenes); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(ctx, model.EventOutlineImport, "", res); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	return cmd
}
