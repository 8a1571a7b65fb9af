package port

import (
	"io"

	"invoicegen/internal/invoice"
)

// InvoiceRenderer writes a printable document for derived invoice data.
type InvoiceRenderer interface {
	Render(w io.Writer, data invoice.InvoiceData) error
}
