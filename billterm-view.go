package billterm

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mvirtane/billterm/billing"
)

// renderer is a function signature for a function that renders the contents
// of a view, using the given dimensions as guideline for content sizing.
type renderer func(width int, height int) string

// View renders the current model state.
//
// Provides compatibility with tea.Model.
func (m BillTerm) View() string {
	switch {
	case !m.state.ready:
		return m.renderFullscreen(m.renderLoadingScreen)
	case !m.state.authed:
		return m.renderFullscreen(m.renderLogin)
	case m.state.showHelp:
		return m.renderFullscreen(m.renderHelp)
	default:
		var view renderer
		switch m.state.activeView {
		case viewDashboard:
			view = m.renderDashboard
		case viewInvoices:
			view = m.renderInvoices
		case viewProducts:
			view = m.renderProducts
		case viewStaff:
			view = m.renderStaff
		case viewReports:
			view = m.renderReports
		default:
			view = func(int, int) string { return "you should not get here.." }
		}
		return m.renderWithNavigation(view)
	}
}

// renderLoadingScreen that indicates something is not ready yet, but should
// be soon. Usable as placeholder when waiting for data.
func (m BillTerm) renderLoadingScreen(width, height int) string {
	return styleLoader.Height(height).Width(width).Render("Loading ...")
}

// renderHelp for the application: the full key listing, shown without the
// navigation and other distractions.
func (m BillTerm) renderHelp(width, _ int) string {
	h := m.help
	h.Width = width
	keys := newKeymap()
	return lipgloss.Place(
		m.state.viewWidth,
		m.state.viewHeight,
		lipgloss.Center,
		lipgloss.Center,
		h.FullHelpView([][]key.Binding{
			{
				key.NewBinding(key.WithHelp("", "Global:"), key.WithKeys("")),
				keys.nextTab,
				keys.prevTab,
				keys.refresh,
				keys.logout,
				keys.quit,
				keys.closeHelp,
			},
			{
				key.NewBinding(key.WithHelp("", "Invoices:"), key.WithKeys("")),
				keys.cycleDate,
				keys.cycleStaff,
				keys.pickDay,
				keys.export,
				key.NewBinding(key.WithHelp("", ""), key.WithKeys("")),
				key.NewBinding(key.WithHelp("", "Products & Staff:"), key.WithKeys("")),
				keys.newItem,
				keys.editItem,
				keys.deleteItem,
			},
			{
				key.NewBinding(key.WithHelp("", "Reports:"), key.WithKeys("")),
				keys.fetch,
				keys.export,
				keys.cursorUp,
				keys.cursorDown,
			},
		}),
	)
}

// renderHelpHint renders the small hint next to navigation telling what to
// press to see the actual help.
func (m BillTerm) renderHelpHint() string {
	return m.help.ShortHelpView([]key.Binding{m.keys.openHelp})
}

// renderShortHelp renders the short, per-view key help.
func (m BillTerm) renderShortHelp(width int, keys ...key.Binding) string {
	h := help.New()
	h.Styles = styleHelp
	return styleShortHelp.Width(width).Render(h.ShortHelpView(keys))
}

// renderNavigation renders the section bar at the bottom of the screen.
func (m BillTerm) renderNavigation() string {
	var sections []string
	for i, name := range m.viewNames {
		var style lipgloss.Style
		if i == m.state.activeView {
			name = " " + name
			style = styleNavActive
		} else {
			style = styleNavInactive
		}
		sections = append(sections, style.Render(name))
	}
	var doc strings.Builder
	doc.WriteString(styleNavCap.Render(""))
	doc.WriteString(styleModeIndicator.Render("admin"))
	doc.WriteString(styleNavInactive.Render("│"))
	doc.WriteString(strings.Join(sections, styleNavJoiner.Render("╱")))
	doc.WriteString(styleNavCap.Render(""))
	return doc.String()
}

// renderStatus renders the transient status line, or an empty string.
func (m BillTerm) renderStatus() string {
	if m.state.status == "" {
		return ""
	}
	if m.state.statusErr {
		return styleStatusErr.Render(m.state.status)
	}
	return styleStatusOK.Render(m.state.status)
}

// renderFullscreen renders the given content full screen, without anything
// else on the screen.
func (m BillTerm) renderFullscreen(render renderer) string {
	return styleWindow.Render(render(m.state.viewWidth, m.state.viewHeight))
}

// renderWithNavigation renders a section view with the status line and
// navigation below it. The render function gets width/height adjusted to
// account for the navigation.
func (m BillTerm) renderWithNavigation(render renderer) string {
	viewHeight, viewWidth := m.state.viewHeight, m.state.viewWidth
	nav := m.renderNavigation()
	_, navHeight := lipgloss.Size(nav)
	status := m.renderStatus()
	statusHeight := 0
	if status != "" {
		statusHeight = 1
	}
	contentHeight := viewHeight - navHeight - statusHeight + 1
	doc := strings.Builder{}
	doc.WriteString(lipgloss.Place(viewWidth, contentHeight, lipgloss.Center, lipgloss.Center, render(viewWidth, contentHeight)))
	doc.WriteString("\n")
	if status != "" {
		doc.WriteString(lipgloss.Place(viewWidth, 1, lipgloss.Center, lipgloss.Bottom, status))
		doc.WriteString("\n")
	}
	doc.WriteString(lipgloss.Place(viewWidth, navHeight, lipgloss.Center, lipgloss.Bottom, nav+" "+m.renderHelpHint()))
	return styleWindow.Height(m.state.viewHeight).Width(m.state.viewWidth).Render(doc.String())
}

// invoiceTableRows maps invoices to display rows for tables: short number,
// customer, staff (N/A fallback), amount, calendar day.
func invoiceTableRows(invoices []billing.Invoice) [][]string {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.Number(),
			inv.CustomerName,
			inv.StaffName(),
			money(inv.TotalAmount),
			inv.Day(),
		})
	}
	return rows
}

var invoiceTableHeaders = []string{"Invoice #", "Customer", "Staff", "Total Amount", "Date"}

// renderTable renders headers and rows as a bordered table. The row at
// cursor is highlighted; pass a negative cursor for no highlight.
func renderTable(headers []string, rows [][]string, cursor int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(r, _ int) lipgloss.Style {
			switch {
			case r < 0:
				return styleTableHeader
			case r == cursor:
				return styleTableCursor
			default:
				return styleTableCell
			}
		})
	return t.Render()
}
