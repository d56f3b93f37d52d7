package tui

import (
	"dayplan/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive planner. The loaded state goes behind a
// store.Shared so every mutation from the event loop takes the write
// lock before touching it.
func Run(s store.Store, db *store.DB) error {
	m := newAppModel(s, store.NewShared(db))
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
