package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"invoicegen/internal/invoice"
)

const (
	qrSizeMM      = 24.0
	barcodeWMM    = 60.0
	barcodeHMM    = 12.0
	qrPixels      = 256
	barcodePixelW = 480
	barcodePixelH = 96
)

// qrPayload is the text encoded in the footer QR code.
func qrPayload(data invoice.InvoiceData) string {
	lines := []string{"Invoice " + data.InvoiceNumber}
	if data.Company.Name != "" {
		lines = append(lines, "From: "+data.Company.Name)
	}
	lines = append(lines, "Total: "+money(data.Currency, data.Total))
	if data.DueDate != "" {
		lines = append(lines, "Due: "+data.DueDate)
	}
	return strings.Join(lines, "\n")
}

// drawCodes places a Code128 barcode of the invoice number and a QR summary
// at the bottom of the current page. Invoices without a number get neither.
func drawCodes(pdf *gofpdf.Fpdf, data invoice.InvoiceData, pageW, pageH float64) error {
	if strings.TrimSpace(data.InvoiceNumber) == "" {
		return nil
	}

	qr, err := qrcode.New(qrPayload(data), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}
	qrPNG, err := grayPNG(qr.Image(qrPixels))
	if err != nil {
		return err
	}

	y := pageH - pageMargin - qrSizeMM
	if pdf.GetY() > y-4 {
		pdf.AddPage()
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("invoice-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("invoice-qr", pageW-pageMargin-qrSizeMM, y, qrSizeMM, qrSizeMM, false, opts, 0, "")

	// Code128 covers ASCII only and long numbers exceed the strip width.
	if bcPNG, ok := barcodePNG(data.InvoiceNumber); ok {
		pdf.RegisterImageOptionsReader("invoice-barcode", opts, bytes.NewReader(bcPNG))
		pdf.ImageOptions("invoice-barcode", pageMargin, y+(qrSizeMM-barcodeHMM)/2, barcodeWMM, barcodeHMM, false, opts, 0, "")
	}
	return pdf.Error()
}

func barcodePNG(value string) ([]byte, bool) {
	encoded, err := code128.Encode(value)
	if err != nil {
		return nil, false
	}
	scaled, err := barcode.Scale(encoded, barcodePixelW, barcodePixelH)
	if err != nil {
		return nil, false
	}
	out, err := grayPNG(scaled)
	if err != nil {
		return nil, false
	}
	return out, true
}

// grayPNG re-encodes img as 8-bit grayscale, a PNG form gofpdf embeds directly.
func grayPNG(img image.Image) ([]byte, error) {
	gray := image.NewGray(img.Bounds())
	draw.Draw(gray, gray.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
