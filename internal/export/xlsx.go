package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
)

const sheetName = "Invoices"

// WriteXLSX writes invoices as a single-sheet workbook. Money columns are
// written as numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX header: %w", err)
	}

	for i := range invoices {
		row := invoiceToRow(&invoices[i])
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		values[6] = invoices[i].Subtotal
		values[9] = invoices[i].TaxAmount
		values[11] = invoices[i].Total

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("export.WriteXLSX row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export.WriteXLSX write: %w", err)
	}
	return nil
}
