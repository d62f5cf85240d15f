package billterm

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the billterm application against the given backend and token
// store, with optional options.
func Run(api Backend, store TokenStore, options ...Option) error {
	app := New(api, store, options...)
	// boot-up the bubbletea runtime with our application model.
	prog := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("bubbletea.NewProgram().Run(): %w", err)
	}
	return nil
}
