package export

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mvirtane/billterm/billing"
)

func Test_InvoiceRows(t *testing.T) {
	invoices := []billing.Invoice{
		{
			ID:           "665f0aabbccddeeff011",
			CustomerName: "Acme Oy",
			Staff:        &billing.StaffRef{ID: "st1", Name: "Anna"},
			TotalAmount:  decimal.RequireFromString("123.45"),
			InvoiceDate:  time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC),
		},
		{
			ID:           "665f0a99887766554433",
			CustomerName: "Bolt Ky",
			TotalAmount:  decimal.NewFromInt(50),
			InvoiceDate:  time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC),
		},
	}
	rows := InvoiceRows(invoices)
	if len(rows) != 2 {
		t.Fatalf("InvoiceRows() length = %d, want 2", len(rows))
	}
	first := Row{
		InvoiceNumber: "eff011",
		Customer:      "Acme Oy",
		Staff:         "Anna",
		Amount:        decimal.RequireFromString("123.45"),
		Date:          "2024-03-05",
	}
	if rows[0].InvoiceNumber != first.InvoiceNumber ||
		rows[0].Customer != first.Customer ||
		rows[0].Staff != first.Staff ||
		!rows[0].Amount.Equal(first.Amount) ||
		rows[0].Date != first.Date {
		t.Errorf("InvoiceRows()[0] = %+v, want %+v", rows[0], first)
	}
	if rows[1].Staff != "N/A" {
		t.Errorf("InvoiceRows()[1].Staff = %q, want N/A fallback", rows[1].Staff)
	}
}

func Test_WriteXLSX_noData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoices.xlsx")
	if err := WriteXLSX(path, nil); !errors.Is(err, ErrNoData) {
		t.Fatalf("WriteXLSX() error = %v, want ErrNoData", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WriteXLSX() with no rows touched %s", path)
	}
	// no temp leftovers either.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("export dir not empty: %v", entries)
	}
}

func Test_WriteXLSX_roundTrip(t *testing.T) {
	rows := []Row{
		{InvoiceNumber: "eff011", Customer: "Acme Oy", Staff: "Anna", Amount: decimal.RequireFromString("123.45"), Date: "2024-03-05"},
		{InvoiceNumber: "554433", Customer: "Bolt Ky", Staff: "N/A", Amount: decimal.NewFromInt(50), Date: "2024-03-06"},
		{InvoiceNumber: "112233", Customer: "Cargo Ab", Staff: "Ben", Amount: decimal.RequireFromString("0.5"), Date: "2024-03-07"},
	}
	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	if err := WriteXLSX(path, rows); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize.OpenFile: %v", err)
	}
	defer f.Close()
	got, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != len(rows)+1 {
		t.Fatalf("sheet has %d rows, want %d", len(got), len(rows)+1)
	}
	wantHeader := []string{"Invoice #", "Customer", "Staff", "Total Amount", "Date"}
	for i, col := range wantHeader {
		if got[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, got[0][i], col)
		}
	}
	for i, row := range rows {
		cells := got[i+1]
		if cells[0] != row.InvoiceNumber || cells[1] != row.Customer || cells[2] != row.Staff || cells[4] != row.Date {
			t.Errorf("row %d = %v, want %+v", i+1, cells, row)
		}
		// amounts must round-trip as numbers, not formatted strings.
		amount, err := strconv.ParseFloat(cells[3], 64)
		if err != nil {
			t.Errorf("row %d amount %q is not numeric: %v", i+1, cells[3], err)
			continue
		}
		if want := row.Amount.InexactFloat64(); amount != want {
			t.Errorf("row %d amount = %v, want %v", i+1, amount, want)
		}
	}
}

func Test_WriteXLSX_overwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.xlsx")
	first := []Row{{InvoiceNumber: "aaaaaa", Customer: "Old", Staff: "N/A", Amount: decimal.NewFromInt(1), Date: "2024-01-01"}}
	second := []Row{
		{InvoiceNumber: "bbbbbb", Customer: "New", Staff: "N/A", Amount: decimal.NewFromInt(2), Date: "2024-01-02"},
		{InvoiceNumber: "cccccc", Customer: "Newer", Staff: "N/A", Amount: decimal.NewFromInt(3), Date: "2024-01-03"},
	}
	if err := WriteXLSX(path, first); err != nil {
		t.Fatalf("first WriteXLSX() error = %v", err)
	}
	if err := WriteXLSX(path, second); err != nil {
		t.Fatalf("second WriteXLSX() error = %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize.OpenFile: %v", err)
	}
	defer f.Close()
	got, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("sheet has %d rows after overwrite, want 3", len(got))
	}
	if got[1][1] != "New" {
		t.Errorf("first data row customer = %q, want New", got[1][1])
	}
}
