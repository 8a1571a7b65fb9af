// Package export writes the saved-invoice history as CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Format names an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means CSV.
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", domain.ErrInvalidExportFormat
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns defines the header row.
var columns = []string{
	"Invoice Number",
	"Template",
	"Client Name",
	"Invoice Date",
	"Due Date",
	"Currency",
	"Subtotal",
	"Discount",
	"Tax Rate",
	"Tax Amount",
	"Shipping",
	"Total",
	"Line Item Count",
	"Created At",
}

// Writer wraps csv.Writer for exporting invoices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// invoiceToRow converts one saved invoice to a row. Columns that come from the
// derived snapshot are left empty when it cannot be decoded.
func invoiceToRow(inv *domain.Invoice) []string {
	row := make([]string, len(columns))
	row[0] = inv.InvoiceNumber
	row[1] = inv.TemplateID
	row[2] = inv.ClientName
	row[5] = inv.Currency
	row[6] = formatMoney(inv.Subtotal)
	row[9] = formatMoney(inv.TaxAmount)
	row[11] = formatMoney(inv.Total)
	row[13] = inv.CreatedAt.UTC().Format(time.RFC3339)

	if len(inv.Data) == 0 {
		return row
	}
	var data invoice.InvoiceData
	if err := json.Unmarshal(inv.Data, &data); err != nil {
		return row
	}
	row[3] = data.InvoiceDate
	row[4] = data.DueDate
	row[7] = formatMoney(data.DiscountAmount)
	row[8] = strconv.FormatFloat(data.TaxRate, 'f', -1, 64)
	row[10] = formatMoney(data.ShippingCost)
	row[12] = strconv.Itoa(len(data.Items))
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [A-Za-z0-9_-] with _, collapses
// runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, f Format) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "invoices"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, f)
}
