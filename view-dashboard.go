package billterm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mvirtane/billterm/billing"
	"github.com/mvirtane/billterm/client"
)

// dashboardState holds the latest dashboard snapshot. daily is the gap-filled
// series derived from the sparse per-day aggregate the backend sends.
type dashboardState struct {
	seq     int
	loading bool
	summary billing.DashboardSummary
	daily   []billing.DailyAggregate
	err     string
}

func (m BillTerm) fetchDashboard(seq int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		summary, err := api.Dashboard(ctx)
		return dashboardDataMsg{seq: seq, summary: summary, err: err}
	}
}

func (m BillTerm) handleDashboardData(msg dashboardDataMsg) (tea.Model, tea.Cmd) {
	s := &m.state.dashboard
	if msg.seq != s.seq {
		// user already moved on, this snapshot is stale.
		return m, nil
	}
	s.loading = false
	if msg.err != nil {
		if client.IsAuthError(msg.err) {
			return m.logout("Session expired, please sign in again.")
		}
		m.l.Warn("dashboard fetch failed", slog.String("error", msg.err.Error()))
		s.err = msg.err.Error()
		return m, nil
	}
	s.err = ""
	s.summary = msg.summary
	daily, err := billing.NormalizeDailySales(msg.summary.DailySales)
	if err != nil {
		m.l.Warn("unusable daily sales payload", slog.String("error", err.Error()))
		daily = nil
	}
	s.daily = daily
	return m, nil
}

func (m BillTerm) renderDashboard(width, height int) string {
	s := m.state.dashboard
	switch {
	case s.loading:
		return m.renderLoadingScreen(width, height)
	case s.err != "":
		return styleStatusErr.Render("Failed to load dashboard: " + s.err)
	}
	var doc strings.Builder
	doc.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		summaryCard("Total Sales", money(s.summary.TotalSales)),
		summaryCard("Invoices", fmt.Sprintf("%d", s.summary.TotalInvoices)),
		summaryCard("Customers", fmt.Sprintf("%d", s.summary.TotalCustomers)),
		summaryCard("Staff", fmt.Sprintf("%d", s.summary.TotalStaff)),
	))
	doc.WriteString("\n")
	doc.WriteString(styleSectionTitle.Render("Sales by staff"))
	doc.WriteString("\n")
	doc.WriteString(renderStaffSales(s.summary.SalesByStaff))
	doc.WriteString("\n")
	doc.WriteString(styleSectionTitle.Render("Top products"))
	doc.WriteString("\n")
	doc.WriteString(renderTopProducts(s.summary.TopProducts))
	doc.WriteString("\n")
	doc.WriteString(styleSectionTitle.Render("Daily sales"))
	doc.WriteString("\n")
	doc.WriteString(renderDailyTrend(s.daily, width))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, doc.String())
}

func summaryCard(title, value string) string {
	return styleCard.Render(styleCardTitle.Render(title) + "\n" + value)
}

func renderStaffSales(rows []billing.StaffSales) string {
	if len(rows) == 0 {
		return styleSubtle.Render("No sales recorded.")
	}
	var doc strings.Builder
	for _, row := range rows {
		doc.WriteString(fmt.Sprintf("%-24s %10s  (%d invoices)\n", row.StaffName, money(row.TotalSales), row.InvoiceCount))
	}
	return strings.TrimRight(doc.String(), "\n")
}

func renderTopProducts(rows []billing.ProductSales) string {
	if len(rows) == 0 {
		return styleSubtle.Render("No product sales recorded.")
	}
	var doc strings.Builder
	for _, row := range rows {
		doc.WriteString(fmt.Sprintf("%-24s %-10s sold %4d  %10s\n", row.Name, row.Code, row.TotalSold, money(row.Revenue)))
	}
	return strings.TrimRight(doc.String(), "\n")
}

// renderDailyTrend renders the contiguous daily series as horizontal bars
// scaled to the largest day. Zero-sale days show an empty bar, keeping gaps
// visible instead of silently compressing time.
func renderDailyTrend(daily []billing.DailyAggregate, width int) string {
	if len(daily) == 0 {
		return styleSubtle.Render("No daily sales to show.")
	}
	var max decimal.Decimal
	for _, day := range daily {
		if day.Total.GreaterThan(max) {
			max = day.Total
		}
	}
	barWidth := width / 3
	if barWidth < 10 {
		barWidth = 10
	}
	var doc strings.Builder
	for _, day := range daily {
		n := 0
		if max.IsPositive() {
			n = int(day.Total.Div(max).Mul(decimal.NewFromInt(int64(barWidth))).IntPart())
		}
		doc.WriteString(fmt.Sprintf("%s %s %s\n",
			day.Date,
			styleBar.Render(strings.Repeat("█", n)+strings.Repeat("░", barWidth-n)),
			money(day.Total),
		))
	}
	return strings.TrimRight(doc.String(), "\n")
}
