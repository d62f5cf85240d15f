package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFilter selects which calendar-day predicate narrows an invoice list.
// Exactly one mode is active at a time.
type DateFilter int

const (
	// DateAll keeps every invoice regardless of date.
	DateAll DateFilter = iota
	// DateToday keeps invoices from the current calendar day.
	DateToday
	// DateYesterday keeps invoices from the previous calendar day.
	DateYesterday
	// DateExact keeps invoices from one explicitly chosen calendar day.
	DateExact
)

// String returns the display label for the filter mode.
func (f DateFilter) String() string {
	switch f {
	case DateToday:
		return "Today"
	case DateYesterday:
		return "Yesterday"
	case DateExact:
		return "Custom"
	default:
		return "All"
	}
}

// InvoiceFilter describes how an invoice snapshot should be narrowed. The
// zero value selects everything.
type InvoiceFilter struct {
	// StaffID keeps only invoices assigned to this staff id. Empty selects
	// all staff. Invoices without a staff reference are excluded under any
	// specific id and included only when empty.
	StaffID string
	// Date selects the calendar-day predicate.
	Date DateFilter
	// Exact is the chosen day when Date is DateExact. Only its calendar-day
	// projection matters; any time-of-day component is ignored.
	Exact time.Time
	// Now anchors the Today/Yesterday predicates. The zero value means the
	// wall clock at filter time; tests pass a fixed instant.
	Now time.Time
}

// FilterInvoices returns the invoices matching the filter, in their input
// order. The staff predicate is applied first, then the date predicate. The
// input slice is never modified.
func FilterInvoices(invoices []Invoice, f InvoiceFilter) []Invoice {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	var wantDay string
	switch f.Date {
	case DateToday:
		wantDay = now.UTC().Format(time.DateOnly)
	case DateYesterday:
		wantDay = now.UTC().AddDate(0, 0, -1).Format(time.DateOnly)
	case DateExact:
		wantDay = f.Exact.UTC().Format(time.DateOnly)
	}
	var out []Invoice
	for _, inv := range invoices {
		if f.StaffID != "" && (inv.Staff == nil || inv.Staff.ID != f.StaffID) {
			continue
		}
		if wantDay != "" && inv.Day() != wantDay {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// SumInvoices returns the decimal sum of TotalAmount over the list. An empty
// list sums to zero.
func SumInvoices(invoices []Invoice) decimal.Decimal {
	var sum decimal.Decimal
	for _, inv := range invoices {
		sum = sum.Add(inv.TotalAmount)
	}
	return sum
}

// StaffOptions derives the staff filter candidates from an unfiltered
// invoice snapshot: every distinct staff reference, in order of first
// appearance. When the same id appears more than once, the first occurrence
// wins, name casing included.
func StaffOptions(invoices []Invoice) []StaffRef {
	seen := make(map[string]struct{})
	var options []StaffRef
	for _, inv := range invoices {
		if inv.Staff == nil {
			continue
		}
		if _, ok := seen[inv.Staff.ID]; ok {
			continue
		}
		seen[inv.Staff.ID] = struct{}{}
		options = append(options, *inv.Staff)
	}
	return options
}
