// Package export flattens invoice records into spreadsheet rows and writes
// them out as xlsx workbooks. Rows are built on demand at export time and
// never persisted beyond the generated file.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mvirtane/billterm/billing"
)

// ErrNoData is returned when there are no rows to export. No file is
// produced in that case; the caller should tell the user instead of handing
// them an empty workbook.
var ErrNoData = errors.New("no data to export")

// Row is one flattened invoice prepared for spreadsheet serialization.
type Row struct {
	InvoiceNumber string
	Customer      string
	Staff         string
	Amount        decimal.Decimal
	Date          string
}

// InvoiceRows maps invoices into export rows: short invoice number, customer
// name, staff name with "N/A" fallback, decimal amount, and the calendar-day
// date display.
func InvoiceRows(invoices []billing.Invoice) []Row {
	rows := make([]Row, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, Row{
			InvoiceNumber: inv.Number(),
			Customer:      inv.CustomerName,
			Staff:         inv.StaffName(),
			Amount:        inv.TotalAmount,
			Date:          inv.Day(),
		})
	}
	return rows
}

// headers is the fixed column order of every exported sheet.
var headers = []any{"Invoice #", "Customer", "Staff", "Total Amount", "Date"}

// WriteXLSX writes one header row plus one row per input record into an xlsx
// workbook at path. Amounts are written as numeric cells so downstream
// consumers can aggregate them. The workbook is serialized to a temporary
// file next to the destination and renamed into place only on full success;
// a failed export never leaves a partial or stale file at path.
func WriteXLSX(path string, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Invoices"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("excelize.NewStreamWriter: %w", err)
	}
	if err = sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err = sw.SetRow(cell, []any{
			row.InvoiceNumber,
			row.Customer,
			row.Staff,
			row.Amount.InexactFloat64(),
			row.Date,
		}); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err = sw.Flush(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	// Numeric format for the amount column so spreadsheet apps show two
	// decimals instead of the raw float.
	if moneyStyle, serr := f.NewStyle(&excelize.Style{NumFmt: 2}); serr == nil {
		_ = f.SetColStyle(sheet, "D", moneyStyle)
	}
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 24)
	_ = f.SetColWidth(sheet, "D", "E", 14)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("serialize workbook: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize export: %w", err)
	}
	return nil
}
