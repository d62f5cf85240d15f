package billterm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
)

// Modes of the staff section.
const (
	staffModeList = iota
	staffModeForm
	staffModeConfirm
)

// staffState holds the staff snapshot and the list/form/confirm mode the
// section is in.
type staffState struct {
	seq     int
	loading bool
	items   []billing.Staff
	cursor  int
	mode    int
	form    staffForm
	err     string
}

func newStaffState() staffState {
	return staffState{form: newStaffForm()}
}

// staffForm is the create/edit form for a staff member. An empty id means
// the form creates a new account. On edit, an empty password leaves the
// current password unchanged.
type staffForm struct {
	id       string
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
}

func newStaffForm() staffForm {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 120
	name.Width = 32
	name.Focus()
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 32
	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 32
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	return staffForm{name: name, email: email, password: password}
}

func editStaffForm(s billing.Staff) staffForm {
	form := newStaffForm()
	form.id = s.ID
	form.name.SetValue(s.Name)
	form.email.SetValue(s.Email)
	form.password.Placeholder = "(unchanged)"
	return form
}

func (f staffForm) update(message tea.Msg) (staffForm, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(message)
	cmds = append(cmds, cmd)
	f.email, cmd = f.email.Update(message)
	cmds = append(cmds, cmd)
	f.password, cmd = f.password.Update(message)
	cmds = append(cmds, cmd)
	return f, tea.Batch(cmds...)
}

func (f *staffForm) setFocus() tea.Cmd {
	inputs := []*textinput.Model{&f.name, &f.email, &f.password}
	var cmd tea.Cmd
	for i, input := range inputs {
		if i == f.focus {
			cmd = input.Focus()
			continue
		}
		input.Blur()
	}
	return cmd
}

func (f staffForm) draft() (client.StaffDraft, error) {
	name := strings.TrimSpace(f.name.Value())
	email := strings.TrimSpace(f.email.Value())
	if name == "" || email == "" {
		return client.StaffDraft{}, fmt.Errorf("name and email are required")
	}
	password := f.password.Value()
	if f.id == "" && password == "" {
		return client.StaffDraft{}, fmt.Errorf("password is required for a new account")
	}
	return client.StaffDraft{Name: name, Email: email, Password: password}, nil
}

func (m BillTerm) fetchStaff(seq int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		staff, err := api.Staff(ctx)
		return staffDataMsg{seq: seq, staff: staff, err: err}
	}
}

func (m BillTerm) handleStaffData(msg staffDataMsg) (tea.Model, tea.Cmd) {
	s := &m.state.staff
	if msg.seq != s.seq {
		return m, nil
	}
	s.loading = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("staff fetch failed", slog.String("error", msg.err.Error()))
		s.err = msg.err.Error()
		return m, nil
	}
	s.err = ""
	s.items = msg.staff
	if s.cursor >= len(s.items) {
		s.cursor = 0
	}
	return m, nil
}

func (m BillTerm) updateStaffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.staff
	switch s.mode {
	case staffModeForm:
		return m.updateStaffFormKey(msg)
	case staffModeConfirm:
		if msg.String() == "y" || msg.String() == "Y" {
			s.mode = staffModeList
			if s.cursor < len(s.items) {
				return m, m.deleteStaff(s.items[s.cursor].ID)
			}
			return m, nil
		}
		s.mode = staffModeList
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.newItem):
		s.mode = staffModeForm
		s.form = newStaffForm()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.editItem):
		if s.cursor < len(s.items) {
			s.mode = staffModeForm
			s.form = editStaffForm(s.items[s.cursor])
			return m, textinput.Blink
		}
		return m, nil
	case key.Matches(msg, m.keys.deleteItem):
		if s.cursor < len(s.items) {
			s.mode = staffModeConfirm
		}
		return m, nil
	case key.Matches(msg, m.keys.cursorUp):
		s.cursor = decMin(s.cursor, 0)
		return m, nil
	case key.Matches(msg, m.keys.cursorDown):
		if len(s.items) > 0 {
			s.cursor = incMax(s.cursor, len(s.items)-1)
		}
		return m, nil
	}
	return m, nil
}

func (m BillTerm) updateStaffFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.staff
	switch {
	case key.Matches(msg, m.keys.cancel):
		s.mode = staffModeList
		return m, nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		s.form.focus = incWrap(s.form.focus, 0, 2)
		return m, s.form.setFocus()
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		s.form.focus = decWrap(s.form.focus, 0, 2)
		return m, s.form.setFocus()
	case key.Matches(msg, m.keys.fetch):
		if s.form.busy {
			return m, nil
		}
		draft, err := s.form.draft()
		if err != nil {
			s.form.err = err.Error()
			return m, nil
		}
		s.form.busy = true
		s.form.err = ""
		return m, m.saveStaff(s.form.id, draft)
	}
	return m.updateInputs(msg)
}

func (m BillTerm) saveStaff(id string, draft client.StaffDraft) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		var err error
		if id == "" {
			err = api.CreateStaff(ctx, draft)
		} else {
			err = api.UpdateStaff(ctx, id, draft)
		}
		return staffSavedMsg{created: id == "", err: err}
	}
}

func (m BillTerm) deleteStaff(id string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return staffDeletedMsg{err: api.DeleteStaff(ctx, id)}
	}
}

func (m BillTerm) handleStaffSaved(msg staffSavedMsg) (tea.Model, tea.Cmd) {
	s := &m.state.staff
	s.form.busy = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("staff save failed", slog.String("error", msg.err.Error()))
		s.form.err = msg.err.Error()
		return m, nil
	}
	s.mode = staffModeList
	if msg.created {
		m.setStatus("Staff member created.", false)
	} else {
		m.setStatus("Staff member updated.", false)
	}
	s.seq++
	s.loading = true
	return m, m.fetchStaff(s.seq)
}

func (m BillTerm) handleStaffDeleted(msg staffDeletedMsg) (tea.Model, tea.Cmd) {
	s := &m.state.staff
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("staff delete failed", slog.String("error", msg.err.Error()))
		m.setStatus("Delete failed: "+msg.err.Error(), true)
		return m, nil
	}
	m.setStatus("Staff member deleted.", false)
	s.seq++
	s.loading = true
	return m, m.fetchStaff(s.seq)
}

func (m BillTerm) renderStaff(width, height int) string {
	s := m.state.staff
	switch {
	case s.loading:
		return m.renderLoadingScreen(width, height)
	case s.err != "":
		return styleStatusErr.Render("Failed to load staff: " + s.err)
	case s.mode == staffModeForm:
		return m.renderStaffForm(width, height)
	}
	var doc strings.Builder
	if len(s.items) == 0 {
		doc.WriteString(styleSubtle.Render("No staff accounts yet. Press n to add one."))
	} else {
		rows := make([][]string, 0, len(s.items))
		for _, member := range s.items {
			rows = append(rows, []string{member.Name, member.Email})
		}
		doc.WriteString(renderTable([]string{"Name", "Email"}, rows, s.cursor))
	}
	if s.mode == staffModeConfirm && s.cursor < len(s.items) {
		doc.WriteString("\n")
		doc.WriteString(styleStatusErr.Render(fmt.Sprintf("Delete %q? Press y to confirm.", s.items[s.cursor].Name)))
	}
	doc.WriteString("\n")
	doc.WriteString(m.renderShortHelp(width, m.keys.newItem, m.keys.editItem, m.keys.deleteItem))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, doc.String())
}

func (m BillTerm) renderStaffForm(width, height int) string {
	f := m.state.staff.form
	title := "New staff member"
	if f.id != "" {
		title = "Edit staff member"
	}
	var doc strings.Builder
	doc.WriteString(styleLoginHeading.Render(title))
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Name"))
	doc.WriteString(f.name.View())
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Email"))
	doc.WriteString(f.email.View())
	doc.WriteString("\n")
	doc.WriteString(styleFormLabel.Render("Password"))
	doc.WriteString(f.password.View())
	doc.WriteString("\n\n")
	switch {
	case f.busy:
		doc.WriteString(styleSubtle.Render("Saving ..."))
	case f.err != "":
		doc.WriteString(styleStatusErr.Render(f.err))
	default:
		doc.WriteString(styleSubtle.Render("enter saves, esc cancels."))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styleFormContainer.Render(doc.String()))
}
