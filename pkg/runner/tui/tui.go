package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/saga/pkg/app"
	"tableflip.dev/saga/pkg/store"
)

// UI runs the full-screen journal interface.
type UI struct {
	Service *app.Service
}

func (n *UI) Do(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan store.Event
	if ch, err := n.Service.Watch(ctx); err == nil {
		events = ch
	}

	p := tea.NewProgram(New(ctx, n.Service, events), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
