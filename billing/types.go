// Package billing contains the domain types for the Smart Billing backend
// and the pure data-shaping functions the UI builds on: gap-filling sparse
// daily sales into a contiguous series, narrowing invoice snapshots by staff
// and date, and summing filtered totals. Nothing here performs I/O or holds
// state; every function takes immutable inputs and returns new values.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffRef is the embedded staff reference carried on an invoice. The backend
// populates it from the staff collection; it may be missing entirely when an
// invoice was created without an assigned staff member.
type StaffRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Invoice is a read-only snapshot of a single invoice as the backend returns
// it from /invoices/list/ and inside report payloads.
type Invoice struct {
	ID           string          `json:"_id"`
	CustomerName string          `json:"customerName"`
	Staff        *StaffRef       `json:"staffId"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
}

// Number returns the short display form of the invoice id: the last six
// characters. Backend ids are long opaque hex strings; the tail is what the
// original system prints everywhere.
func (inv Invoice) Number() string {
	if len(inv.ID) <= 6 {
		return inv.ID
	}
	return inv.ID[len(inv.ID)-6:]
}

// StaffName returns the name of the assigned staff member, or "N/A" when the
// invoice carries no staff reference.
func (inv Invoice) StaffName() string {
	if inv.Staff == nil || inv.Staff.Name == "" {
		return "N/A"
	}
	return inv.Staff.Name
}

// Day returns the calendar-day projection of the invoice instant in
// "YYYY-MM-DD" form. The projection is taken in UTC so that filtering is
// independent of the terminal's local zone; backend timestamps are stored
// in UTC.
func (inv Invoice) Day() string {
	return inv.InvoiceDate.UTC().Format(time.DateOnly)
}

// Staff is a full staff record from /staff/get-staff.
type Staff struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product is a product record from /products/.
type Product struct {
	ID    string          `json:"_id"`
	Name  string          `json:"name"`
	Code  string          `json:"code"`
	Price decimal.Decimal `json:"price"`
}

// StaffSales is one row of the dashboard's per-staff sales aggregate.
type StaffSales struct {
	StaffID      string          `json:"_id"`
	StaffName    string          `json:"staffName"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	InvoiceCount int             `json:"invoiceCount"`
}

// ProductSales is one row of the dashboard's top-products aggregate.
type ProductSales struct {
	ProductID string          `json:"_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	TotalSold int             `json:"totalSold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummary is the /dashboard/admin payload.
type DashboardSummary struct {
	TotalSales     decimal.Decimal  `json:"totalSales"`
	TotalInvoices  int              `json:"totalInvoices"`
	TotalCustomers int              `json:"totalCustomers"`
	TotalStaff     int              `json:"totalStaff"`
	SalesByStaff   []StaffSales     `json:"salesByStaff"`
	TopProducts    []ProductSales   `json:"topProducts"`
	DailySales     []DailyAggregate `json:"dailySales"`
}

// Report is the payload of /reports/daily and /reports/range. Date is set
// for daily reports, From/To for range reports.
type Report struct {
	Date       string          `json:"date,omitempty"`
	From       string          `json:"from,omitempty"`
	To         string          `json:"to,omitempty"`
	TotalSales decimal.Decimal `json:"totalSales"`
	Count      int             `json:"count"`
	Invoices   []Invoice       `json:"invoices"`
}
