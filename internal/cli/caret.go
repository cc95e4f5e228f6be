package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"quire-cli/internal/caret"
	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
)

// newCaretCmd resolves a cell to a text position the same way the TUI does on a click. The
// scene body is laid out at --width with its top-left cell at (0, 0).
func newCaretCmd(app *App) *cobra.Command {
	var (
		sceneID    string
		width      int
		x, y       int
		capability string
	)

	cmd := &cobra.Command{
		Use:   "caret",
		Short: "Resolve a terminal cell in a scene body to a caret position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(sceneID)
			i := slices.IndexFunc(snap.Scenes, func(sc model.Scene) bool { return sc.ID == id })
			if i < 0 {
				return writeErr(cmd, mutate.NotFoundError{Kind: "scene", ID: id})
			}
			body, err := s.SceneBody(cmd.Context(), snap.Scenes[i].ContentRef)
			if err != nil {
				return writeErr(cmd, err)
			}

			grid := &caret.Grid{
				Width: width,
				Lines: caret.Layout(caret.TextBlock{ID: id, Body: body}, width),
			}
			var host any
			switch strings.ToLower(strings.TrimSpace(capability)) {
			case "", "range":
				host = caret.RangeGrid{Grid: grid}
			case "position":
				host = grid
			case "none":
				host = struct{}{}
			default:
				return writeErr(cmd, fmt.Errorf("--capability: want range|position|none, got %q", capability))
			}

			r := caret.New(host)
			data := map[string]any{
				"capability": r.Capability().String(),
				"resolved":   false,
				"lines":      len(grid.Lines),
			}
			if pos, ok := r.Resolve(x, y); ok {
				data["resolved"] = true
				data["containerId"] = pos.Container.ContainerID()
				data["offset"] = pos.Offset
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().StringVar(&sceneID, "scene", "", "Scene id")
	cmd.Flags().IntVar(&width, "width", 60, "Wrap width in cells (0 = no wrapping)")
	cmd.Flags().IntVar(&x, "x", 0, "Column")
	cmd.Flags().IntVar(&y, "y", 0, "Row")
	cmd.Flags().StringVar(&capability, "capability", "range", "Host capability to resolve through (range|position|none)")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}
