package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/outline"
)

func newChaptersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Chapter commands",
	}
	cmd.AddCommand(newChaptersCreateCmd(app))
	cmd.AddCommand(newChaptersListCmd(app))
	cmd.AddCommand(newChaptersSetStatusCmd(app))
	cmd.AddCommand(newChaptersMoveCmd(app))
	return cmd
}

func newChaptersCreateCmd(app *App) *cobra.Command {
	var projectID, title, statusID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a chapter to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatusFlag(statusID)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ch, err := mutate.CreateChapter(snap, strings.TrimSpace(projectID), title, st, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveChapters(cmd.Context(), snap.Chapters); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), model.EventChapterCreate, ch.ID, ch); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ch})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Chapter title")
	cmd.Flags().StringVar(&statusID, "status", "", "Initial status ("+statusIDs()+"; default draft)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newChaptersListCmd(app *App) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chapters in outline order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := statusTable(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, _, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projectID = strings.TrimSpace(projectID)
			var out []model.Chapter
			for _, ch := range snap.Chapters {
				if projectID == "" || ch.ProjectID == projectID {
					out = append(out, ch)
				}
			}
			slices.SortFunc(out, func(a, b model.Chapter) int {
				if c := strings.Compare(a.ProjectID, b.ProjectID); c != 0 {
					return c
				}
				return outline.CompareChapters(a, b)
			})
			return writeOut(cmd, app, map[string]any{"data": chaptersTable(out, statuses)})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only chapters of this project")
	return cmd
}

func newChaptersSetStatusCmd(app *App) *cobra.Command {
	var statusID string

	cmd := &cobra.Command{
		Use:   "set-status <chapter-id>",
		Short: "Set a chapter's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatusFlag(statusID)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetChapterStatus(snap, strings.TrimSpace(args[0]), st, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.SaveChapters(cmd.Context(), snap.Chapters); err != nil {
					return writeErr(cmd, err)
				}
				if err := s.AppendEvent(cmd.Context(), model.EventChapterSetStatus, res.EntityID, res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": res.EntityID, "status": st, "changed": res.Changed},
			})
		},
	}

	cmd.Flags().StringVar(&statusID, "status", "", "New status ("+statusIDs()+")")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newChaptersMoveCmd(app *App) *cobra.Command {
	var before, after string

	cmd := &cobra.Command{
		Use:   "move <chapter-id>",
		Short: "Reorder a chapter within its project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			rank, err := mutate.MoveChapter(snap, id, before, after, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveChapters(cmd.Context(), snap.Chapters); err != nil {
				return writeErr(cmd, err)
			}
			payload := map[string]any{"rank": rank, "before": before, "after": after}
			if err := s.AppendEvent(cmd.Context(), model.EventChapterMove, id, payload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "rank": rank}})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Place directly before this sibling chapter")
	cmd.Flags().StringVar(&after, "after", "", "Place directly after this sibling chapter")
	return cmd
}
