package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var filterNow = time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)

func inv(id, customer string, staff *StaffRef, amount int64, date time.Time) Invoice {
	return Invoice{
		ID:           id,
		CustomerName: customer,
		Staff:        staff,
		TotalAmount:  decimal.NewFromInt(amount),
		InvoiceDate:  date,
	}
}

func testInvoices() []Invoice {
	anna := &StaffRef{ID: "st1", Name: "Anna"}
	ben := &StaffRef{ID: "st2", Name: "Ben"}
	return []Invoice{
		inv("665f01aabbcc", "Acme Oy", anna, 100, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)),
		inv("665f02ddeeff", "Bolt Ky", ben, 250, time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)),
		inv("665f03112233", "Cargo Ab", nil, 75, time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC)),
		inv("665f04445566", "Acme Oy", anna, 30, time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)),
	}
}

func ids(invoices []Invoice) []string {
	var out []string
	for _, i := range invoices {
		out = append(out, i.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func Test_FilterInvoices(t *testing.T) {
	tests := []struct {
		name   string
		filter InvoiceFilter
		want   []string
	}{
		{
			name:   "all staff all dates is identity",
			filter: InvoiceFilter{Now: filterNow},
			want:   []string{"665f01aabbcc", "665f02ddeeff", "665f03112233", "665f04445566"},
		},
		{
			name:   "specific staff",
			filter: InvoiceFilter{StaffID: "st1", Now: filterNow},
			want:   []string{"665f01aabbcc", "665f04445566"},
		},
		{
			name:   "staffless record excluded under specific staff",
			filter: InvoiceFilter{StaffID: "st2", Now: filterNow},
			want:   []string{"665f02ddeeff"},
		},
		{
			name:   "today",
			filter: InvoiceFilter{Date: DateToday, Now: filterNow},
			want:   []string{"665f01aabbcc"},
		},
		{
			name:   "yesterday",
			filter: InvoiceFilter{Date: DateYesterday, Now: filterNow},
			want:   []string{"665f02ddeeff", "665f03112233"},
		},
		{
			name: "exact day matches regardless of time of day",
			filter: InvoiceFilter{
				Date:  DateExact,
				Exact: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				Now:   filterNow,
			},
			want: []string{"665f02ddeeff", "665f03112233"},
		},
		{
			name: "staff and date combined",
			filter: InvoiceFilter{
				StaffID: "st1",
				Date:    DateYesterday,
				Now:     filterNow,
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testInvoices()
			got := FilterInvoices(input, tt.filter)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("FilterInvoices() = %v, want %v", ids(got), tt.want)
			}
			// filtering twice with the same filter must change nothing.
			again := FilterInvoices(got, tt.filter)
			if !equalIDs(ids(again), tt.want) {
				t.Errorf("FilterInvoices() not idempotent: second pass = %v", ids(again))
			}
			// the input snapshot must survive untouched.
			if !equalIDs(ids(input), ids(testInvoices())) {
				t.Errorf("input slice was mutated: %v", ids(input))
			}
		})
	}
}

func Test_SumInvoices(t *testing.T) {
	tests := []struct {
		name     string
		invoices []Invoice
		want     string
	}{
		{name: "empty list sums to zero", invoices: nil, want: "0"},
		{name: "whole list", invoices: testInvoices(), want: "455"},
		{
			name: "decimal amounts are not truncated",
			invoices: []Invoice{
				{TotalAmount: decimal.RequireFromString("10.25")},
				{TotalAmount: decimal.RequireFromString("0.50")},
			},
			want: "10.75",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SumInvoices(tt.invoices); got.String() != tt.want {
				t.Errorf("SumInvoices() = %s, want %s", got, tt.want)
			}
		})
	}
}

func Test_SumInvoices_matchesFiltered(t *testing.T) {
	filtered := FilterInvoices(testInvoices(), InvoiceFilter{Date: DateYesterday, Now: filterNow})
	want := decimal.NewFromInt(325)
	if got := SumInvoices(filtered); !got.Equal(want) {
		t.Errorf("SumInvoices(filtered) = %s, want %s", got, want)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered count = %d, want 2", len(filtered))
	}
}

func Test_StaffOptions(t *testing.T) {
	invoices := []Invoice{
		{ID: "1", Staff: &StaffRef{ID: "st1", Name: "Anna"}},
		{ID: "2", Staff: nil},
		{ID: "3", Staff: &StaffRef{ID: "st2", Name: "Ben"}},
		{ID: "4", Staff: &StaffRef{ID: "st1", Name: "ANNA"}},
	}
	got := StaffOptions(invoices)
	if len(got) != 2 {
		t.Fatalf("StaffOptions() length = %d, want 2", len(got))
	}
	if got[0].ID != "st1" || got[0].Name != "Anna" {
		t.Errorf("StaffOptions()[0] = %+v, want first occurrence of st1", got[0])
	}
	if got[1].ID != "st2" || got[1].Name != "Ben" {
		t.Errorf("StaffOptions()[1] = %+v, want st2", got[1])
	}
}

func Test_Invoice_Number(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "long id keeps last six", id: "665f0aabbccddeeff011", want: "eff011"},
		{name: "short id kept whole", id: "ab12", want: "ab12"},
		{name: "empty id", id: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Invoice{ID: tt.id}).Number(); got != tt.want {
				t.Errorf("Number() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_Invoice_StaffName(t *testing.T) {
	if got := (Invoice{Staff: &StaffRef{ID: "s", Name: "Anna"}}).StaffName(); got != "Anna" {
		t.Errorf("StaffName() = %q, want Anna", got)
	}
	if got := (Invoice{}).StaffName(); got != "N/A" {
		t.Errorf("StaffName() without staff = %q, want N/A", got)
	}
}
