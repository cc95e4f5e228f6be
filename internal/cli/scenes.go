package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/outline"
	"quire-cli/internal/tui"
)

func newScenesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Scene commands",
	}
	cmd.AddCommand(newScenesCreateCmd(app))
	cmd.AddCommand(newScenesListCmd(app))
	cmd.AddCommand(newScenesShowCmd(app))
	cmd.AddCommand(newScenesSetStatusCmd(app))
	cmd.AddCommand(newScenesMoveCmd(app))
	cmd.AddCommand(newScenesWriteBodyCmd(app))
	return cmd
}

func newScenesCreateCmd(app *App) *cobra.Command {
	var chapterID, title, synopsis, statusID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a scene to a chapter",
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
			sc, err := mutate.CreateScene(snap, strings.TrimSpace(chapterID), title, synopsis, st, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveScenes(cmd.Context(), snap.Scenes); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.AppendEvent(cmd.Context(), model.EventSceneCreate, sc.ID, sc); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sc})
		},
	}

	cmd.Flags().StringVar(&chapterID, "chapter", "", "Chapter id")
	cmd.Flags().StringVar(&title, "title", "", "Scene title")
	cmd.Flags().StringVar(&synopsis, "synopsis", "", "Short synopsis (markdown)")
	cmd.Flags().StringVar(&statusID, "status", "", "Initial status ("+statusIDs()+"; default draft)")
	_ = cmd.MarkFlagRequired("chapter")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newScenesListCmd(app *App) *cobra.Command {
	var chapterID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes in outline order",
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
			chapterID = strings.TrimSpace(chapterID)
			var out []model.Scene
			for _, sc := range snap.Scenes {
				if chapterID == "" || sc.ChapterID == chapterID {
					out = append(out, sc)
				}
			}
			slices.SortFunc(out, func(a, b model.Scene) int {
				if c := strings.Compare(a.ChapterID, b.ChapterID); c != 0 {
					return c
				}
				return outline.CompareScenes(a, b)
			})
			return writeOut(cmd, app, map[string]any{"data": scenesTable(out, statuses)})
		},
	}

	cmd.Flags().StringVar(&chapterID, "chapter", "", "Only scenes of this chapter")
	return cmd
}

func newScenesShowCmd(app *App) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <scene-id>",
		Short: "Show a scene with its status and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := statusTable(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			i := slices.IndexFunc(snap.Scenes, func(sc model.Scene) bool { return sc.ID == id })
			if i < 0 {
				return writeErr(cmd, mutate.NotFoundError{Kind: "scene", ID: id})
			}
			sc := snap.Scenes[i]
			d, err := statuses.Describe(sc.Status)
			if err != nil {
				return writeErr(cmd, err)
			}
			body, err := s.SceneBody(cmd.Context(), sc.ContentRef)
			if err != nil {
				return writeErr(cmd, err)
			}

			if render {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s  %s %s\n\n", sc.Title, d.Icon, d.Label)
				if syn := tui.RenderMarkdown(sc.Synopsis, 80); syn != "" {
					fmt.Fprintln(w, syn)
					fmt.Fprintln(w)
				}
				_, err := io.WriteString(w, body)
				return err
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"scene":      sc,
					"descriptor": d,
					"body":       body,
					"bodyRunes":  utf8.RuneCountInString(body),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Print a human-readable view (synopsis rendered as markdown)")
	return cmd
}

func newScenesSetStatusCmd(app *App) *cobra.Command {
	var statusID string

	cmd := &cobra.Command{
		Use:   "set-status <scene-id>",
		Short: "Set a scene's status",
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
			res, err := mutate.SetSceneStatus(snap, strings.TrimSpace(args[0]), st, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.SaveScenes(cmd.Context(), snap.Scenes); err != nil {
					return writeErr(cmd, err)
				}
				if err := s.AppendEvent(cmd.Context(), model.EventSceneSetStatus, res.EntityID, res.EventPayload); err != nil {
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

func newScenesMoveCmd(app *App) *cobra.Command {
	var before, after string

	cmd := &cobra.Command{
		Use:   "move <scene-id>",
		Short: "Reorder a scene within its chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			rank, err := mutate.MoveScene(snap, id, before, after, now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SaveScenes(cmd.Context(), snap.Scenes); err != nil {
				return writeErr(cmd, err)
			}
			payload := map[string]any{"rank": rank, "before": before, "after": after}
			if err := s.AppendEvent(cmd.Context(), model.EventSceneMove, id, payload); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "rank": rank}})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Place directly before this sibling scene")
	cmd.Flags().StringVar(&after, "after", "", "Place directly after this sibling scene")
	return cmd
}

func newScenesWriteBodyCmd(app *App) *cobra.Command {
	var text, file string

	cmd := &cobra.Command{
		Use:   "write-body <scene-id>",
		Short: "Replace a scene's body text (from --text, --file, or stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("text") && file != "" {
				return writeErr(cmd, errBodySource)
			}
			body := text
			switch {
			case cmd.Flags().Changed("text"):
			case file != "" && file != "-":
				b, err := os.ReadFile(file)
				if err != nil {
					return writeErr(cmd, err)
				}
				body = string(b)
			default:
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				body = string(b)
			}

			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			i := slices.IndexFunc(snap.Scenes, func(sc model.Scene) bool { return sc.ID == id })
			if i < 0 {
				return writeErr(cmd, mutate.NotFoundError{Kind: "scene", ID: id})
			}
			ref := snap.Scenes[i].ContentRef
			if err := s.SetSceneBody(cmd.Context(), ref, body); err != nil {
				return writeErr(cmd, err)
			}
			runes := utf8.RuneCountInString(body)
			if err := s.AppendEvent(cmd.Context(), model.EventSceneWriteBody, id, map[string]any{"contentRef": ref, "runes": runes}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": id, "contentRef": ref, "bodyRunes": runes},
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Body text")
	cmd.Flags().StringVar(&file, "file", "", "Read the body from a file (- for stdin)")
	return cmd
}
