package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quire-cli/internal/config"
	"quire-cli/internal/format"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
	"quire-cli/internal/tui"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string

	cfg config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	v := config.New()

	cmd := &cobra.Command{
		Use:          "quire",
		Short:        "Quire: outline and draft a novel from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive outline + editor
  quire

  # Scriptable commands
  quire projects create --title "The Long Night"
  quire outline show --tree

  # Direct scene lookup (shortcut for: quire scenes show <scene-id>)
  quire scn-4k2m9q
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("config: %w", err))
		}
		app.cfg = cfg
		app.Dir = cfg.Dir
		app.Format = cfg.Format
		app.PrettyJSON = cfg.Pretty
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.String("dir", "", "Workspace directory (default: nearest .quire above the working directory)")
	pf.Bool("pretty", false, "Pretty-print JSON output")
	pf.String("format", "json", "Output format (json|table)")
	pf.String("glyphs", "unicode", "Glyph set for icons and tree lines (unicode|ascii)")
	for _, name := range []string{"dir", "pretty", "format", "glyphs"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newChaptersCmd(app))
	cmd.AddCommand(newScenesCmd(app))
	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newStatusesCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newCaretCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive outline + editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	statuses, err := app.cfg.StatusTable()
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), tui.Options{
		Store:    s,
		Statuses: statuses,
		Glyphs:   app.cfg.Glyphs,
		Debounce: app.cfg.WatchDebounce,
	})
}

func resolveStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = d
	}
	return store.Store{Dir: dir}, nil
}

func loadSnapshot(cmd *cobra.Command, app *App) (*store.Snapshot, store.Store, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, s, err
	}
	snap, err := s.Load(cmd.Context())
	if err != nil {
		return nil, s, err
	}
	return snap, s, nil
}

// statusTable is the configured descriptor table, in ASCII when the glyph set asks for it.
func statusTable(app *App) (*status.Table, error) {
	t, err := app.cfg.StatusTable()
	if err != nil {
		return nil, err
	}
	if app.cfg.Glyphs == "ascii" {
		t = t.ASCII()
	}
	return t, nil
}

func now() time.Time { return time.Now().UTC() }

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
