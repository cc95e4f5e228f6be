package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"quire-cli/internal/feed"
	"quire-cli/internal/outline"
	"quire-cli/internal/status"
	"quire-cli/internal/tui"
)

func newOutlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Whole-outline commands",
	}
	cmd.AddCommand(newOutlineShowCmd(app))
	return cmd
}

func newOutlineShowCmd(app *App) *cobra.Command {
	var asTree bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show projects, chapters and scenes in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := statusTable(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Same path the TUI reads through: snapshot -> mirror -> tree.
			mirror := outline.NewStore()
			if err := feed.New(s, mirror).Refresh(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			tree := mirror.Tree()

			if asTree {
				return writeOutlineTree(cmd.OutOrStdout(), tree, statuses, app.cfg.Glyphs == "ascii")
			}
			return writeOut(cmd, app, map[string]any{
				"data": tree,
				"meta": map[string]any{
					"projects": len(mirror.Projects()),
					"chapters": len(mirror.Chapters()),
					"scenes":   len(mirror.Scenes()),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&asTree, "tree", false, "Print an indented text tree instead of JSON")
	return cmd
}

type treeGlyphs struct {
	branch, last, pipe, blank string
}

var (
	treeUnicode = treeGlyphs{branch: "├─ ", last: "└─ ", pipe: "│  ", blank: "   "}
	treeASCII   = treeGlyphs{branch: "|- ", last: "`- ", pipe: "|  ", blank: "   "}
)

// writeOutlineTree prints the outline with status icons colored per style class. Colors are
// dropped when w is not a terminal.
func writeOutlineTree(w io.Writer, tree []outline.ProjectNode, statuses *status.Table, ascii bool) error {
	out := termenv.NewOutput(w)
	g := treeUnicode
	if ascii {
		g = treeASCII
	}

	badge := func(s status.Status) string {
		d, err := statuses.Describe(s)
		if err != nil {
			return out.String("!").Foreground(out.Color("1")).String()
		}
		return out.String(d.Icon).Foreground(out.Color(tui.StatusHex(d.StyleClass, true))).String()
	}
	muted := func(s string) string { return out.String(s).Faint().String() }

	var b strings.Builder
	for _, p := range tree {
		fmt.Fprintf(&b, "%s  %s\n", out.String(p.Project.Title).Bold(), muted(p.Project.ID))
		for ci, ch := range p.Chapters {
			lead, cont := g.branch, g.pipe
			if ci == len(p.Chapters)-1 {
				lead, cont = g.last, g.blank
			}
			fmt.Fprintf(&b, "%s%s %s  %s\n", lead, badge(ch.Chapter.Status), ch.Chapter.Title, muted(ch.Chapter.ID))
			for si, sc := range ch.Scenes {
				sl := g.branch
				if si == len(ch.Scenes)-1 {
					sl = g.last
				}
				fmt.Fprintf(&b, "%s%s%s %s  %s\n", cont, sl, badge(sc.Status), sc.Title, muted(sc.ID))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
