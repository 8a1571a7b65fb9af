package invoice

// TemplateState is the editable record for one invoice under one template.
// Subtotal, TaxAmount and Total are cache fields: Recalculate owns them.
type TemplateState struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`

	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`
	DueDate       string `json:"due_date"`
	Currency      string `json:"currency"`

	Items []LineItem `json:"items"`

	Subtotal       float64 `json:"subtotal"`
	TaxRate        float64 `json:"tax_rate"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	ShippingCost   float64 `json:"shipping_cost"`
	Total          float64 `json:"total"`

	Notes         string `json:"notes"`
	Terms         string `json:"terms"`
	ThankYouNote  string `json:"thank_you_note"`
	WatermarkText string `json:"watermark_text"`
	LogoURL       string `json:"logo_url"`
	SignatureURL  string `json:"signature_url"`

	Style      Style      `json:"style"`
	Visibility Visibility `json:"visibility"`

	CustomFields []CustomField `json:"custom_fields"`
}

// LineItem is one row of the invoice. Amount is derived from Quantity and Rate.
type LineItem struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
	Visible     bool    `json:"visible"`
}

// Style holds pure display state.
type Style struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
	FontFamily     string `json:"font_family"`
	Layout         string `json:"layout"`
	BorderRadius   int    `json:"border_radius"`
}

// Visibility gates optional content blocks.
type Visibility struct {
	ShowLogo      bool `json:"show_logo"`
	ShowSignature bool `json:"show_signature"`
	ShowWatermark bool `json:"show_watermark"`
	ShowTerms     bool `json:"show_terms"`
	ShowThankYou  bool `json:"show_thank_you"`
}

// Element names one toggleable visibility flag.
type Element string

const (
	ElementLogo      Element = "logo"
	ElementSignature Element = "signature"
	ElementWatermark Element = "watermark"
	ElementTerms     Element = "terms"
	ElementThankYou  Element = "thankYou"
)

// Elements lists every toggleable element.
var Elements = []Element{ElementLogo, ElementSignature, ElementWatermark, ElementTerms, ElementThankYou}

func (v *Visibility) flag(e Element) *bool {
	switch e {
	case ElementLogo:
		return &v.ShowLogo
	case ElementSignature:
		return &v.ShowSignature
	case ElementWatermark:
		return &v.ShowWatermark
	case ElementTerms:
		return &v.ShowTerms
	case ElementThankYou:
		return &v.ShowThankYou
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *TemplateState) Clone() *TemplateState {
	if s == nil {
		return nil
	}
	c := *s
	if s.Items != nil {
		c.Items = make([]LineItem, len(s.Items))
		copy(c.Items, s.Items)
	}
	if s.CustomFields != nil {
		c.CustomFields = make([]CustomField, len(s.CustomFields))
		for i, f := range s.CustomFields {
			c.CustomFields[i] = f.clone()
		}
	}
	return &c
}

func (s *TemplateState) itemIndex(id int) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TemplateState) fieldIndex(id string) int {
	for i := range s.CustomFields {
		if s.CustomFields[i].ID == id {
			return i
		}
	}
	return -1
}
