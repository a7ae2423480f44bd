package tui

import (
	"context"

	"wikitree/internal/model"
	"wikitree/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	Store  store.Store
	Forest model.Forest
	Log    *log.Logger

	// DefaultOpenRoot overrides the root label expanded on first render.
	DefaultOpenRoot string
	// Glyphs and Theme are configured preferences; env vars still win.
	Glyphs string
	Theme  string
}

func Run(ctx context.Context, opt Options) error {
	applyColorProfilePreference()
	applyThemePreference(opt.Theme)
	applyGlyphPreference(opt.Glyphs)

	m := newAppModel(ctx, opt)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
