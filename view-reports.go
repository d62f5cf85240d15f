package billterm

import (
	"context"
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

// Panes of the reports section.
const (
	reportPaneDaily = iota
	reportPaneRange
)

// reportsState holds the daily and range report panes. Reports are fetched
// on demand when the user submits a date selection, never on section
// activation.
type reportsState struct {
	pane       int
	dailyInput textinput.Model
	fromInput  textinput.Model
	toInput    textinput.Model
	// editing is set while one of the date inputs owns the keyboard.
	editing   bool
	focus     int
	seq       int
	loading   bool
	daily     *billing.Report
	ranged    *billing.Report
	exporting bool
	err       string
}

func newReportsState() reportsState {
	daily := textinput.New()
	daily.Placeholder = "YYYY-MM-DD"
	daily.CharLimit = 10
	daily.Width = 12
	from := textinput.New()
	from.Placeholder = "YYYY-MM-DD"
	from.CharLimit = 10
	from.Width = 12
	to := textinput.New()
	to.Placeholder = "YYYY-MM-DD"
	to.CharLimit = 10
	to.Width = 12
	return reportsState{dailyInput: daily, fromInput: from, toInput: to}
}

func (s reportsState) updateInputs(message tea.Msg) (reportsState, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.dailyInput, cmd = s.dailyInput.Update(message)
	cmds = append(cmds, cmd)
	s.fromInput, cmd = s.fromInput.Update(message)
	cmds = append(cmds, cmd)
	s.toInput, cmd = s.toInput.Update(message)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

// setFocus focuses the input at s.focus within the active pane and blurs the
// rest.
func (s *reportsState) setFocus() tea.Cmd {
	s.dailyInput.Blur()
	s.fromInput.Blur()
	s.toInput.Blur()
	if s.pane == reportPaneDaily {
		return s.dailyInput.Focus()
	}
	if s.focus == 0 {
		return s.fromInput.Focus()
	}
	return s.toInput.Focus()
}

// current returns the report shown by the active pane, or nil.
func (s reportsState) current() *billing.Report {
	if s.pane == reportPaneDaily {
		return s.daily
	}
	return s.ranged
}

func (m BillTerm) updateReportsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.state.reports
	if s.editing {
		switch {
		case key.Matches(msg, m.keys.cancel):
			s.editing = false
			s.dailyInput.Blur()
			s.fromInput.Blur()
			s.toInput.Blur()
			return m, nil
		case msg.Type == tea.KeyTab:
			if s.pane == reportPaneRange {
				s.focus = incWrap(s.focus, 0, 1)
				return m, s.setFocus()
			}
			return m, nil
		case key.Matches(msg, m.keys.fetch):
			return m.submitReport()
		}
		return m.updateInputs(msg)
	}
	switch {
	case key.Matches(msg, m.keys.cursorUp), key.Matches(msg, m.keys.cursorDown):
		s.pane = incWrap(s.pane, reportPaneDaily, reportPaneRange)
		return m, nil
	case key.Matches(msg, m.keys.pickDay), key.Matches(msg, m.keys.editItem):
		s.editing = true
		s.focus = 0
		return m, tea.Batch(s.setFocus(), textinput.Blink)
	case key.Matches(msg, m.keys.export):
		if s.exporting {
			return m, nil
		}
		report := s.current()
		if report == nil {
			m.setStatus("Fetch a report before exporting.", true)
			return m, nil
		}
		s.exporting = true
		m.setStatus("Exporting ...", false)
		return m, m.exportReport(*report)
	}
	return m, nil
}

// submitReport validates the active pane's dates and kicks off the fetch.
func (m BillTerm) submitReport() (tea.Model, tea.Cmd) {
	s := &m.state.reports
	if s.pane == reportPaneDaily {
		date := strings.TrimSpace(s.dailyInput.Value())
		if _, err := time.ParseInLocation(time.DateOnly, date, time.UTC); err != nil {
			m.setStatus("Not a valid day, expected YYYY-MM-DD.", true)
			return m, nil
		}
		s.editing = false
		s.dailyInput.Blur()
		s.seq++
		s.loading = true
		s.err = ""
		return m, m.fetchDailyReport(s.seq, date)
	}
	from := strings.TrimSpace(s.fromInput.Value())
	to := strings.TrimSpace(s.toInput.Value())
	start, err := time.ParseInLocation(time.DateOnly, from, time.UTC)
	if err != nil {
		m.setStatus("Not a valid start day, expected YYYY-MM-DD.", true)
		return m, nil
	}
	end, err := time.ParseInLocation(time.DateOnly, to, time.UTC)
	if err != nil {
		m.setStatus("Not a valid end day, expected YYYY-MM-DD.", true)
		return m, nil
	}
	if end.Before(start) {
		m.setStatus("End day is before start day.", true)
		return m, nil
	}
	s.editing = false
	s.fromInput.Blur()
	s.toInput.Blur()
	s.seq++
	s.loading = true
	s.err = ""
	return m, m.fetchRangeReport(s.seq, from, to)
}

func (m BillTerm) fetchDailyReport(seq int, date string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		report, err := api.DailyReport(ctx, date)
		return reportDataMsg{seq: seq, kind: reportDaily, report: report, err: err}
	}
}

func (m BillTerm) fetchRangeReport(seq int, from, to string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		report, err := api.RangeReport(ctx, from, to)
		return reportDataMsg{seq: seq, kind: reportRange, report: report, err: err}
	}
}

func (m BillTerm) handleReportData(msg reportDataMsg) (tea.Model, tea.Cmd) {
	s := &m.state.reports
	if msg.seq != s.seq {
		return m, nil
	}
	s.loading = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("report fetch failed", slog.String("error", msg.err.Error()))
		s.err = msg.err.Error()
		return m, nil
	}
	s.err = ""
	report := msg.report
	if msg.kind == reportDaily {
		s.daily = &report
	} else {
		s.ranged = &report
	}
	return m, nil
}

// exportReport writes the report's invoices to an xlsx file named after the
// report's dates.
func (m BillTerm) exportReport(report billing.Report) tea.Cmd {
	var name string
	if report.Date != "" {
		name = fmt.Sprintf("daily-report-%s.xlsx", report.Date)
	} else {
		name = fmt.Sprintf("range-report-%s-to-%s.xlsx", report.From, report.To)
	}
	path := filepath.Join(m.exportDir, name)
	rows := export.InvoiceRows(report.Invoices)
	return func() tea.Msg {
		err := export.WriteXLSX(path, rows)
		return exportDoneMsg{view: viewReports, path: path, err: err}
	}
}

func (m BillTerm) renderReports(width, height int) string {
	s := m.state.reports
	var doc strings.Builder
	doc.WriteString(m.renderReportPaneBar())
	doc.WriteString("\n\n")
	switch {
	case s.loading:
		doc.WriteString(styleLoader.Render("Loading ..."))
	case s.err != "":
		doc.WriteString(styleStatusErr.Render("Failed to load report: " + s.err))
	case s.current() == nil:
		doc.WriteString(styleSubtle.Render("No report fetched yet. Press d to pick dates, enter to fetch."))
	default:
		doc.WriteString(renderReport(*s.current(), height-10))
	}
	doc.WriteString("\n")
	doc.WriteString(m.renderShortHelp(width, m.keys.pickDay, m.keys.fetch, m.keys.export, m.keys.cursorDown))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, doc.String())
}

func (m BillTerm) renderReportPaneBar() string {
	s := m.state.reports
	daily := "Daily: " + s.dailyInput.View()
	ranged := "Range: " + s.fromInput.View() + " → " + s.toInput.View()
	if s.pane == reportPaneDaily {
		daily = styleCardTitle.Render("▸ ") + daily
		ranged = "  " + ranged
	} else {
		daily = "  " + daily
		ranged = styleCardTitle.Render("▸ ") + ranged
	}
	return daily + "\n" + ranged
}

func renderReport(report billing.Report, maxRows int) string {
	var heading string
	if report.Date != "" {
		heading = "Report for " + report.Date
	} else {
		heading = fmt.Sprintf("Report %s — %s", report.From, report.To)
	}
	var doc strings.Builder
	doc.WriteString(styleSectionTitle.Render(heading))
	doc.WriteString("\n")
	doc.WriteString(styleSubtle.Render(fmt.Sprintf("%d invoices, total %s", report.Count, money(report.TotalSales))))
	doc.WriteString("\n\n")
	doc.WriteString(renderInvoiceTable(report.Invoices, -1, maxRows))
	return doc.String()
}
