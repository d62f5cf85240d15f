package billterm

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mvirtane/billterm/session"
)

// Init restores a previous session if the stored token is still usable, and
// starts the cursor blink for the login inputs.
//
// Provides compatibility with tea.Model.
func (m BillTerm) Init() tea.Cmd {
	restore := func() tea.Msg {
		token, err := m.store.Token()
		if err != nil {
			m.l.Warn("failed to read stored token", slog.String("error", err.Error()))
			return sessionMsg{}
		}
		if token == "" {
			return sessionMsg{}
		}
		// A token that is already past its exp claim would only bounce off
		// the backend; drop it and go straight to login.
		if expiry, ok := session.Expiry(token); ok && time.Now().After(expiry) {
			m.l.Info("stored token expired", slog.Time("expiry", expiry))
			if err = m.store.Clear(); err != nil {
				m.l.Warn("failed to clear expired token", slog.String("error", err.Error()))
			}
			return sessionMsg{}
		}
		return sessionMsg{token: token}
	}
	return tea.Batch(restore, textinput.Blink)
}
