// Package pdf renders InvoiceData into A4 PDF documents.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

type rgb struct{ r, g, b int }

type renderer struct{}

// NewRenderer returns an InvoiceRenderer backed by gofpdf.
func NewRenderer() port.InvoiceRenderer {
	return &renderer{}
}

func (r *renderer) Render(w io.Writer, data invoice.InvoiceData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(titleOf(data), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	font := fontFamily(data.Style.FontFamily)
	primary := parseHex(data.Style.PrimaryColor, rgb{37, 99, 235})
	secondary := parseHex(data.Style.SecondaryColor, rgb{30, 41, 59})
	accent := parseHex(data.Style.AccentColor, rgb{241, 245, 249})

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	if data.WatermarkText != "" {
		drawWatermark(pdf, tr(data.WatermarkText), font, pageW, pageH)
	}

	// header
	pdf.SetFont(font, "B", 20)
	pdf.SetTextColor(primary.r, primary.g, primary.b)
	pdf.CellFormat(contentW/2, 10, tr(headerName(data)), "", 0, "L", false, 0, "")
	pdf.SetFont(font, "B", 16)
	pdf.CellFormat(contentW/2, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont(font, "", 9)
	pdf.SetTextColor(secondary.r, secondary.g, secondary.b)
	left := partyLines(data.Company)
	right := []string{
		labelled("Invoice #", data.InvoiceNumber),
		labelled("Date", data.InvoiceDate),
		labelled("Due", data.DueDate),
	}
	twoColumns(pdf, tr, left, right, contentW)
	pdf.Ln(4)

	// bill to
	pdf.SetFont(font, "B", 10)
	pdf.SetTextColor(primary.r, primary.g, primary.b)
	pdf.CellFormat(contentW, lineHeight, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 9)
	pdf.SetTextColor(secondary.r, secondary.g, secondary.b)
	for _, l := range append([]string{data.Client.Name}, partyLines(data.Client)[1:]...) {
		if l != "" {
			pdf.CellFormat(contentW, 5, tr(l), "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	if data.Custom != nil && len(data.Custom.Fields) > 0 {
		for _, f := range data.Custom.Fields {
			pdf.CellFormat(contentW, 5, tr(labelled(f.Label, f.Value)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// items table
	cols := []float64{contentW * 0.46, contentW * 0.14, contentW * 0.2, contentW * 0.2}
	pdf.SetFillColor(primary.r, primary.g, primary.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(font, "B", 9)
	for i, h := range []string{"Description", "Qty", "Rate", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(cols[i], 8, h, "", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 9)
	pdf.SetTextColor(secondary.r, secondary.g, secondary.b)
	pdf.SetFillColor(accent.r, accent.g, accent.b)
	row := 0
	for _, it := range data.Items {
		if !it.Visible {
			continue
		}
		fill := row%2 == 1
		pdf.CellFormat(cols[0], 7, tr(it.Description), "", 0, "L", fill, 0, "")
		pdf.CellFormat(cols[1], 7, number(it.Quantity), "", 0, "R", fill, 0, "")
		pdf.CellFormat(cols[2], 7, money(data.Currency, it.Rate), "", 0, "R", fill, 0, "")
		pdf.CellFormat(cols[3], 7, money(data.Currency, it.Amount), "", 1, "R", fill, 0, "")
		row++
	}
	pdf.Ln(4)

	// totals
	labelW := contentW * 0.8
	valueW := contentW - labelW
	totals := [][2]string{{"Subtotal", money(data.Currency, data.Subtotal)}}
	if data.DiscountAmount != 0 {
		totals = append(totals, [2]string{"Discount", "-" + money(data.Currency, data.DiscountAmount)})
	}
	totals = append(totals, [2]string{fmt.Sprintf("Tax (%s%%)", number(data.TaxRate)), money(data.Currency, data.TaxAmount)})
	if data.ShippingCost != 0 {
		totals = append(totals, [2]string{"Shipping", money(data.Currency, data.ShippingCost)})
	}
	for _, t := range totals {
		pdf.CellFormat(labelW, lineHeight, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, lineHeight, tr(t[1]), "", 1, "R", false, 0, "")
	}
	pdf.SetFont(font, "B", 11)
	pdf.SetTextColor(primary.r, primary.g, primary.b)
	pdf.CellFormat(labelW, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 8, tr(money(data.Currency, data.Total)), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetTextColor(secondary.r, secondary.g, secondary.b)
	section(pdf, tr, font, "Notes", data.Notes, contentW)
	section(pdf, tr, font, "Terms", data.Terms, contentW)
	if data.ThankYouNote != "" {
		pdf.SetFont(font, "I", 10)
		pdf.SetTextColor(primary.r, primary.g, primary.b)
		pdf.CellFormat(contentW, 8, tr(data.ThankYouNote), "", 1, "C", false, 0, "")
	}
	if data.SignatureURL != "" {
		pdf.Ln(10)
		pdf.SetFont(font, "", 9)
		pdf.SetTextColor(secondary.r, secondary.g, secondary.b)
		pdf.CellFormat(contentW, 5, "________________________", "", 1, "R", false, 0, "")
		pdf.CellFormat(contentW, 5, "Authorized signature", "", 1, "R", false, 0, "")
	}

	if err := drawCodes(pdf, data, pageW, pageH); err != nil {
		return fmt.Errorf("pdf.Render: %w", err)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf.Render: %w", err)
	}
	return nil
}

func drawWatermark(pdf *gofpdf.Fpdf, text, font string, pageW, pageH float64) {
	pdf.SetFont(font, "B", 60)
	pdf.SetTextColor(230, 230, 230)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	textW := pdf.GetStringWidth(text)
	pdf.Text(pageW/2-textW/2, pageH/2, text)
	pdf.TransformEnd()
	pdf.SetXY(pageMargin, pageMargin)
}

func twoColumns(pdf *gofpdf.Fpdf, tr func(string) string, left, right []string, width float64) {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		pdf.CellFormat(width/2, 5, tr(l), "", 0, "L", false, 0, "")
		pdf.CellFormat(width/2, 5, tr(r), "", 1, "R", false, 0, "")
	}
}

func section(pdf *gofpdf.Fpdf, tr func(string) string, font, title, body string, width float64) {
	if strings.TrimSpace(body) == "" {
		return
	}
	pdf.SetFont(font, "B", 10)
	pdf.CellFormat(width, lineHeight, title, "", 1, "L", false, 0, "")
	pdf.SetFont(font, "", 9)
	pdf.MultiCell(width, 5, tr(body), "", "L", false)
	pdf.Ln(3)
}

func partyLines(p invoice.Party) []string {
	return []string{p.Name, p.Address, p.Email, p.Phone}
}

func headerName(data invoice.InvoiceData) string {
	if data.Company.Name != "" {
		return data.Company.Name
	}
	return "Invoice"
}

func titleOf(data invoice.InvoiceData) string {
	if data.InvoiceNumber == "" {
		return "Invoice"
	}
	return "Invoice " + data.InvoiceNumber
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func money(currency string, v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if currency == "" {
		return s
	}
	return currency + " " + s
}

// fontFamily maps web font names onto the PDF core fonts.
func fontFamily(name string) string {
	switch strings.ToLower(name) {
	case "times new roman", "georgia", "playfair display":
		return "Times"
	case "courier", "courier new":
		return "Courier"
	}
	return "Helvetica"
}

func parseHex(s string, fallback rgb) rgb {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}
