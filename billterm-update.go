package billterm

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update model state based on the incoming message.
//
// Provides compatibility with tea.Model.
func (m BillTerm) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.WindowSizeMsg:
		m.state.screenWidth = msg.Width
		m.state.screenHeight = msg.Height
		m.state.viewWidth = msg.Width - styleWindow.GetHorizontalFrameSize()
		m.state.viewHeight = msg.Height - styleWindow.GetVerticalFrameSize() - 2
		return m, nil
	case sessionMsg:
		m.state.ready = true
		if msg.token == "" {
			return m, nil
		}
		m.api.SetToken(msg.token)
		m.state.authed = true
		m.state.activeView = viewDashboard
		return m.activateView()
	case loginResultMsg:
		return m.handleLoginResult(msg)
	case loggedOutMsg:
		return m, nil
	case dashboardDataMsg:
		return m.handleDashboardData(msg)
	case invoicesDataMsg:
		return m.handleInvoicesData(msg)
	case productsDataMsg:
		return m.handleProductsData(msg)
	case productSavedMsg:
		return m.handleProductSaved(msg)
	case productDeletedMsg:
		return m.handleProductDeleted(msg)
	case staffDataMsg:
		return m.handleStaffData(msg)
	case staffSavedMsg:
		return m.handleStaffSaved(msg)
	case staffDeletedMsg:
		return m.handleStaffDeleted(msg)
	case reportDataMsg:
		return m.handleReportData(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	// anything else (cursor blink and friends) belongs to the text inputs.
	return m.updateInputs(message)
}

func (m BillTerm) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.state.authed {
		return m.updateLoginKey(msg)
	}
	if m.state.confirmLogout {
		if msg.String() == "y" || msg.String() == "Y" {
			return m.logout("")
		}
		m.state.confirmLogout = false
		m.setStatus("", false)
		return m, nil
	}
	if m.state.showHelp {
		if key.Matches(msg, m.keys.closeHelp, m.keys.openHelp, m.keys.quit) {
			m.state.showHelp = false
		}
		return m, nil
	}
	if !m.capturingInput() {
		switch {
		case key.Matches(msg, m.keys.quit):
			m.state.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.openHelp):
			m.state.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.logout):
			m.state.confirmLogout = true
			m.setStatus("Log out? Press y to confirm.", false)
			return m, nil
		case key.Matches(msg, m.keys.nextTab):
			m.state.activeView = incWrap(m.state.activeView, viewDashboard, viewReports)
			return m.activateView()
		case key.Matches(msg, m.keys.prevTab):
			m.state.activeView = decWrap(m.state.activeView, viewDashboard, viewReports)
			return m.activateView()
		case key.Matches(msg, m.keys.refresh):
			return m.activateView()
		}
	}
	switch m.state.activeView {
	case viewInvoices:
		return m.updateInvoicesKey(msg)
	case viewProducts:
		return m.updateProductsKey(msg)
	case viewStaff:
		return m.updateStaffKey(msg)
	case viewReports:
		return m.updateReportsKey(msg)
	}
	return m, nil
}

// activateView is the on-activate hook of the current section: it clears the
// status line, bumps the section's fetch sequence and kicks off a fresh
// snapshot fetch. Results tagged with an older sequence are dropped on
// arrival.
func (m BillTerm) activateView() (BillTerm, tea.Cmd) {
	m.setStatus("", false)
	switch m.state.activeView {
	case viewDashboard:
		m.state.dashboard.seq++
		m.state.dashboard.loading = true
		m.state.dashboard.err = ""
		return m, m.fetchDashboard(m.state.dashboard.seq)
	case viewInvoices:
		m.state.invoices.seq++
		m.state.invoices.loading = true
		m.state.invoices.err = ""
		return m, m.fetchInvoices(m.state.invoices.seq)
	case viewProducts:
		m.state.products.seq++
		m.state.products.loading = true
		m.state.products.err = ""
		return m, m.fetchProducts(m.state.products.seq)
	case viewStaff:
		m.state.staff.seq++
		m.state.staff.loading = true
		m.state.staff.err = ""
		return m, m.fetchStaff(m.state.staff.seq)
	case viewReports:
		// reports are fetched on demand per date selection; nothing to
		// load up front.
		return m, nil
	}
	return m, nil
}

// logout drops the session and returns to the login screen. reason, when
// non-empty, is shown on the login screen (used for expired sessions).
func (m BillTerm) logout(reason string) (BillTerm, tea.Cmd) {
	m.api.SetToken("")
	m.state.authed = false
	m.state.confirmLogout = false
	m.setStatus("", false)
	m.state.login = newLoginState()
	m.state.login.err = reason
	m.state.dashboard = dashboardState{}
	m.state.invoices = newInvoicesState()
	m.state.products = newProductsState()
	m.state.staff = newStaffState()
	m.state.reports = newReportsState()
	store, l := m.store, m.l
	return m, func() tea.Msg {
		if err := store.Clear(); err != nil {
			l.Warn("failed to clear stored token", slog.String("error", err.Error()))
		}
		return loggedOutMsg{}
	}
}

// updateInputs forwards a message to the text inputs of the active context.
// Blurred inputs ignore key strokes, so fan-out is safe.
func (m BillTerm) updateInputs(message tea.Msg) (BillTerm, tea.Cmd) {
	var cmd tea.Cmd
	if !m.state.authed {
		m.state.login, cmd = m.state.login.update(message)
		return m, cmd
	}
	switch m.state.activeView {
	case viewInvoices:
		m.state.invoices.dateInput, cmd = m.state.invoices.dateInput.Update(message)
	case viewProducts:
		m.state.products.form, cmd = m.state.products.form.update(message)
	case viewStaff:
		m.state.staff.form, cmd = m.state.staff.form.update(message)
	case viewReports:
		m.state.reports, cmd = m.state.reports.updateInputs(message)
	}
	return m, cmd
}
