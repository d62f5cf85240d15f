package billterm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
	"github.com/mvirtane/billterm/export"
)

// invoicesState holds the unfiltered invoice snapshot and the filter
// selections applied on top of it. Filtering is re-derived from the snapshot
// on every render; the snapshot itself is only replaced by a fetch.
type invoicesState struct {
	seq      int
	loading  bool
	snapshot []billing.Invoice
	// staffOpts are the staff filter candidates derived from the snapshot.
	// staffIdx 0 is "All staff"; i>0 selects staffOpts[i-1].
	staffOpts []billing.StaffRef
	staffIdx  int
	dateMode  billing.DateFilter
	exactDay  time.Time
	// picking is set while the custom-day input owns the keyboard.
	picking   bool
	dateInput textinput.Model
	cursor    int
	exporting bool
	err       string
}

func newInvoicesState() invoicesState {
	input := textinput.New()
	input.Placeholder = "YYYY-MM-DD"
	input.CharLimit = 10
	input.Width = 12
	return invoicesState{dateInput: input}
}

// filter returns the filter matching the current selections.
func (s invoicesState) filter() billing.InvoiceFilter {
	f := billing.InvoiceFilter{Date: s.dateMode, Exact: s.exactDay}
	if s.staffIdx > 0 && s.staffIdx <= len(s.staffOpts) {
		f.StaffID = s.staffOpts[s.staffIdx-1].ID
	}
	return f
}

// visible returns the snapshot narrowed by the current filter.
func (s invoicesState) visible() []billing.Invoice {
	return billing.FilterInvoices(s.snapshot, s.filter())
}

func (m BillTerm) fetchInvoices(seq int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		invoices, err := api.Invoices(ctx)
		return invoicesDataMsg{seq: seq, invoices: invoices, err: err}
	}
}

func (m BillTerm) handleInvoicesData(msg invoicesDataMsg) (tea.Model, tea.Cmd) {
	s := &m.state.invoices
	if msg.seq != s.seq {
		return m, nil
	}
	s.loading = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("invoice fetch failed", slog.String("error", msg.err.Error()))
		s.err = msg.err.Error()
		return m, nil
	}
	s.err = ""
	s.snapshot = msg.invoices
	// Re-derive the staff options from the new snapshot. Keep the current
	// selection when that staff member still appears; otherwise fall back to
	// all staff rather than silently pointing the index at someone else.
	var selected string
	if s.staffIdx > 0 && s.staffIdx <= len(s.staffOpts) {
		selected = s.staffOpts[s.staffIdx-1].ID
	}
	s.staffOpts = billing.StaffOptions(msg.invoices)
	s.staffIdx = 0
	for i, opt := range s.staffOpts {
		if opt.ID == selected {
			s.staffIdx = i + 1
			break
		}
	}
	s.cursor = 0
	return m, nil
}

func (m BillTerm) updateInvoicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.invoices
	if s.picking {
		switch {
		case key.Matches(msg, m.keys.cancel):
			s.picking = false
			s.dateInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.fetch):
			day, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s.dateInput.Value()), time.UTC)
			if err != nil {
				m.setStatus("Not a valid day, expected YYYY-MM-DD.", true)
				return m, nil
			}
			s.picking = false
			s.dateInput.Blur()
			s.dateMode = billing.DateExact
			s.exactDay = day
			s.cursor = 0
			m.setStatus("", false)
			return m, nil
		}
		return m.updateInputs(msg)
	}
	switch {
	case key.Matches(msg, m.keys.cycleDate):
		// d is entered through its own key; cycling skips the Custom mode.
		s.dateMode = billing.DateFilter(incWrap(int(s.dateMode), int(billing.DateAll), int(billing.DateYesterday)))
		s.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.cycleStaff):
		s.staffIdx = incWrap(s.staffIdx, 0, len(s.staffOpts))
		s.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.pickDay):
		s.picking = true
		s.dateInput.SetValue("")
		return m, s.dateInput.Focus()
	case key.Matches(msg, m.keys.export):
		if s.exporting {
			return m, nil
		}
		s.exporting = true
		m.setStatus("Exporting ...", false)
		return m, m.exportInvoices(s.visible())
	case key.Matches(msg, m.keys.cursorUp):
		s.cursor = decMin(s.cursor, 0)
		return m, nil
	case key.Matches(msg, m.keys.cursorDown):
		if n := len(s.visible()); n > 0 {
			s.cursor = incMax(s.cursor, n-1)
		}
		return m, nil
	}
	return m, nil
}

// exportInvoices writes the currently visible invoices to invoices.xlsx in
// the export directory. The write is atomic; a previous export file is only
// replaced once the new one is complete.
func (m BillTerm) exportInvoices(invoices []billing.Invoice) tea.Cmd {
	path := filepath.Join(m.exportDir, "invoices.xlsx")
	return func() tea.Msg {
		err := export.WriteXLSX(path, export.InvoiceRows(invoices))
		return exportDoneMsg{view: viewInvoices, path: path, err: err}
	}
}

func (m BillTerm) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	switch msg.view {
	case viewInvoices:
		m.state.invoices.exporting = false
	case viewReports:
		m.state.reports.exporting = false
	}
	switch {
	case errors.Is(msg.err, export.ErrNoData):
		m.setStatus("Nothing to export.", true)
	case msg.err != nil:
		m.l.Warn("export failed", slog.String("error", msg.err.Error()))
		m.setStatus("Export failed: "+msg.err.Error(), true)
	default:
		m.setStatus("Exported to "+msg.path, false)
	}
	return m, nil
}

func (m BillTerm) renderInvoices(width, height int) string {
	s := m.state.invoices
	switch {
	case s.loading:
		return m.renderLoadingScreen(width, height)
	case s.err != "":
		return styleStatusErr.Render("Failed to load invoices: " + s.err)
	}
	visible := s.visible()

	var doc strings.Builder
	doc.WriteString(m.renderInvoiceFilterBar())
	doc.WriteString("\n")
	doc.WriteString(styleSubtle.Render(fmt.Sprintf("%d invoices, total %s", len(visible), money(billing.SumInvoices(visible)))))
	doc.WriteString("\n\n")
	doc.WriteString(renderInvoiceTable(visible, s.cursor, height-8))
	doc.WriteString("\n")
	doc.WriteString(m.renderShortHelp(width,
		m.keys.cycleDate, m.keys.cycleStaff, m.keys.pickDay, m.keys.export,
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, doc.String())
}

func (m BillTerm) renderInvoiceFilterBar() string {
	s := m.state.invoices
	date := s.dateMode.String()
	if s.dateMode == billing.DateExact {
		date = s.exactDay.UTC().Format(time.DateOnly)
	}
	staff := "All staff"
	if s.staffIdx > 0 && s.staffIdx <= len(s.staffOpts) {
		staff = s.staffOpts[s.staffIdx-1].Name
	}
	bar := fmt.Sprintf("Date: %s   Staff: %s", styleCardTitle.Render(date), styleCardTitle.Render(staff))
	if s.picking {
		bar += "   Day: " + s.dateInput.View()
	}
	return bar
}

// renderInvoiceTable renders invoices as a cursor-driven table, windowed so
// that the cursor row stays on screen.
func renderInvoiceTable(invoices []billing.Invoice, cursor, maxRows int) string {
	if len(invoices) == 0 {
		return styleSubtle.Render("No invoices match the current filter.")
	}
	if maxRows < 3 {
		maxRows = 3
	}
	first := 0
	if cursor >= maxRows {
		first = cursor - maxRows + 1
	}
	last := first + maxRows
	if last > len(invoices) {
		last = len(invoices)
	}
	rows := invoiceTableRows(invoices)
	var doc strings.Builder
	doc.WriteString(renderTable(invoiceTableHeaders, rows[first:last], cursor-first))
	if last < len(invoices) {
		doc.WriteString("\n")
		doc.WriteString(styleSubtle.Render(fmt.Sprintf("... %d more", len(invoices)-last)))
	}
	return doc.String()
}
