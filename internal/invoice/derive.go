package invoice

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Party is the normalized company/client block of an invoice.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// InvoiceItem is a line item as consumed by renderers.
type InvoiceItem struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Visible     bool    `json:"visible"`
}

// CustomTemplate carries the styling and free-form fields of the "custom" template.
type CustomTemplate struct {
	Style      Style         `json:"style"`
	Visibility Visibility    `json:"visibility"`
	Fields     []CustomField `json:"fields"`
}

// InvoiceData is the read-only projection used by preview, export and persistence.
type InvoiceData struct {
	TemplateID    string        `json:"template_id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	DueDate       string        `json:"due_date"`
	Currency      string        `json:"currency"`
	Company       Party         `json:"company"`
	Client        Party         `json:"client"`
	Items         []InvoiceItem `json:"items"`

	Subtotal       float64 `json:"subtotal"`
	TaxRate        float64 `json:"tax_rate"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	ShippingCost   float64 `json:"shipping_cost"`
	Total          float64 `json:"total"`

	Notes         string `json:"notes"`
	Terms         string `json:"terms,omitempty"`
	ThankYouNote  string `json:"thank_you_note,omitempty"`
	WatermarkText string `json:"watermark_text,omitempty"`
	LogoURL       string `json:"logo_url,omitempty"`
	SignatureURL  string `json:"signature_url,omitempty"`

	Style      Style      `json:"style"`
	Visibility Visibility `json:"visibility"`

	Custom *CustomTemplate `json:"custom,omitempty"`
}

// Totals is the aggregate block of an invoice.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// ComputeTotals sums the unrounded item amounts and applies discount, tax and
// shipping. Subtotal, tax and total are each rounded to cents; negative
// results are returned as-is.
func ComputeTotals(items []LineItem, taxRate, discount, shipping float64) Totals {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(items[i].Amount))
	}
	subtotal = subtotal.Round(2)

	taxable := subtotal.Sub(decimal.NewFromFloat(discount))
	tax := taxable.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)
	total := taxable.Add(tax).Add(decimal.NewFromFloat(shipping)).Round(2)

	return Totals{
		Subtotal:  subtotal.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     total.InexactFloat64(),
	}
}

// LineAmount returns the exact product quantity × rate. Rounding happens
// only on the aggregates.
func LineAmount(quantity, rate float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(rate)).InexactFloat64()
}

// Recalculate refreshes every item amount and the aggregate cache fields of s.
func Recalculate(s *TemplateState) {
	for i := range s.Items {
		s.Items[i].Amount = LineAmount(s.Items[i].Quantity, s.Items[i].Rate)
	}
	t := ComputeTotals(s.Items, s.TaxRate, s.DiscountAmount, s.ShippingCost)
	s.Subtotal = t.Subtotal
	s.TaxAmount = t.TaxAmount
	s.Total = t.Total
}

// Derive projects s into InvoiceData. A nil s is replaced by the template default.
// Derive never mutates s.
func Derive(templateID string, s *TemplateState) InvoiceData {
	templateID = Resolve(templateID)
	if s == nil {
		s = Default(templateID)
	} else {
		s = s.Clone()
	}
	Recalculate(s)

	items := make([]InvoiceItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, InvoiceItem{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			Visible:     it.Visible,
		})
	}

	data := InvoiceData{
		TemplateID:    templateID,
		InvoiceNumber: s.InvoiceNumber,
		InvoiceDate:   s.InvoiceDate,
		DueDate:       s.DueDate,
		Currency:      s.Currency,
		Company: Party{
			Name:    s.CompanyName,
			Address: s.CompanyAddress,
			Email:   s.CompanyEmail,
			Phone:   s.CompanyPhone,
		},
		Client: Party{
			Name:    s.ClientName,
			Address: s.ClientAddress,
			Email:   s.ClientEmail,
			Phone:   s.ClientPhone,
		},
		Items:          items,
		Subtotal:       s.Subtotal,
		TaxRate:        s.TaxRate,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		ShippingCost:   s.ShippingCost,
		Total:          s.Total,
		Notes:          s.Notes,
		Style:          s.Style,
		Visibility:     s.Visibility,
	}
	if s.Visibility.ShowTerms {
		data.Terms = s.Terms
	}
	if s.Visibility.ShowThankYou {
		data.ThankYouNote = s.ThankYouNote
	}
	if s.Visibility.ShowWatermark {
		data.WatermarkText = s.WatermarkText
	}
	if s.Visibility.ShowLogo {
		data.LogoURL = s.LogoURL
	}
	if s.Visibility.ShowSignature {
		data.SignatureURL = s.SignatureURL
	}
	if templateID == TemplateCustom {
		fields := s.CustomFields
		if fields == nil {
			fields = []CustomField{}
		}
		data.Custom = &CustomTemplate{
			Style:      s.Style,
			Visibility: s.Visibility,
			Fields:     fields,
		}
	}
	return data
}
