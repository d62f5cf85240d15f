package billterm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState holds the login form. busy blocks double submits while a login
// request is in flight.
type loginState struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 32
	email.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	return loginState{email: email, password: password}
}

func (s loginState) update(message tea.Msg) (loginState, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.email, cmd = s.email.Update(message)
	cmds = append(cmds, cmd)
	s.password, cmd = s.password.Update(message)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

func (m BillTerm) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.login
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.state.quitting = true
		return m, tea.Quit
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		s.focus = incWrap(s.focus, 0, 1)
		return m, m.focusLoginInput()
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		s.focus = decWrap(s.focus, 0, 1)
		return m, m.focusLoginInput()
	case key.Matches(msg, m.keys.fetch):
		if s.busy {
			return m, nil
		}
		email := strings.TrimSpace(s.email.Value())
		password := s.password.Value()
		if email == "" || password == "" {
			s.err = "Email and password are required."
			return m, nil
		}
		s.busy = true
		s.err = ""
		return m, m.login(email, password)
	}
	return m.updateInputs(msg)
}

// focusLoginInput moves input focus to match loginState.focus.
func (m *BillTerm) focusLoginInput() tea.Cmd {
	s := &m.state.login
	if s.focus == 0 {
		s.password.Blur()
		return s.email.Focus()
	}
	s.email.Blur()
	return s.password.Focus()
}

func (m BillTerm) login(email, password string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		session, err := api.Login(ctx, email, password)
		return loginResultMsg{session: session, err: err}
	}
}

func (m BillTerm) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	s := &m.state.login
	s.busy = false
	if msg.err != nil {
		m.l.Warn("login failed", slog.String("error", msg.err.Error()))
		s.err = "Login failed: " + msg.err.Error()
		return m, nil
	}
	// This is an admin tool. The backend hands out tokens to every staff
	// role; only accept the admin one.
	if msg.session.Role != "admin" {
		s.err = "Access denied: admin account required."
		return m, nil
	}
	m.api.SetToken(msg.session.Token)
	if err := m.store.Save(msg.session.Token); err != nil {
		// Session still works for this run, it just won't survive restart.
		m.l.Warn("failed to persist token", slog.String("error", err.Error()))
	}
	m.state.authed = true
	m.state.activeView = viewDashboard
	m.state.login = newLoginState()
	return m.activateView()
}

func (m BillTerm) renderLogin(width, height int) string {
	s := m.state.login
	var doc strings.Builder
	doc.WriteString(styleLoginHeading.Render("Smart Billing — Admin"))
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Email"))
	doc.WriteString(s.email.View())
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Password"))
	doc.WriteString(s.password.View())
	doc.WriteString("\n\n")
	switch {
	case s.busy:
		doc.WriteString(styleSubtle.Render("Signing in ..."))
	case s.err != "":
		doc.WriteString(styleStatusErr.Render(s.err))
	default:
		doc.WriteString(styleSubtle.Render("Press enter to sign in."))
	}
	form := styleFormContainer.Render(doc.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
