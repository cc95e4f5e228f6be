package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quire-cli/internal/feed"
	"quire-cli/internal/outline"
	"quire-cli/internal/status"
	"quire-cli/internal/store"
)

type Options struct {
	Store    store.Store
	Statuses *status.Table
	// Glyphs is "unicode" or "ascii".
	Glyphs string
	// Debounce coalesces bursts of db writes before the outline is reloaded.
	Debounce time.Duration
}

// Run starts the interactive outline/editor view. Changes written by other processes (CLI
// commands in another terminal) show up through the file watcher.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	setGlyphs(parseGlyphSet(opts.Glyphs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mirror := outline.NewStore()
	feeder := feed.New(opts.Store, mirror)
	if err := feeder.Refresh(ctx); err != nil {
		return err
	}

	m := newAppModel(opts.Store, mirror, feeder, opts.Statuses)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	unsubscribe := mirror.Subscribe(func(outline.Collection) {
		p.Send(outlineChangedMsg{})
	})
	defer unsubscribe()
	feeder.OnError(func(err error) {
		p.Send(refreshFailedMsg{err: err})
	})

	if err := feeder.Watch(ctx, opts.Store.DBPath(), opts.Debounce); err != nil {
		return err
	}

	_, err := p.Run()
	return err
}
