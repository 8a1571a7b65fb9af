package invoice

import "sort"

// Template identifiers with special handling.
const (
	TemplateStandard = "standard"
	TemplateLegal    = "legal"
	TemplateCustom   = "custom"
)

// Preset describes one predefined invoice layout.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`

	style        Style
	visibility   Visibility
	currency     string
	taxRate      float64
	shipping     float64
	notes        string
	terms        string
	thankYou     string
	watermark    string
	items        []LineItem
	customFields []CustomField
}

var (
	defaultVisibility = Visibility{ShowLogo: true, ShowTerms: true, ShowThankYou: true}
	sampleItems       = []LineItem{{ID: 1, Description: "Professional services", Quantity: 1, Rate: 100, Visible: true}}
)

// presets is the declarative registry. Adding a template is a data change.
var presets = []Preset{
	{
		ID: TemplateStandard, Name: "Standard", Category: "general",
		Description: "Clean single-column invoice suitable for most businesses.",
		style:       Style{PrimaryColor: "#2563eb", SecondaryColor: "#1e293b", AccentColor: "#f1f5f9", FontFamily: "Inter", Layout: "classic", BorderRadius: 8},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "Thank you for your business.", terms: "Payment is due within 30 days.", thankYou: "Thank you!",
		items: sampleItems,
	},
	{
		ID: "modern", Name: "Modern", Category: "general",
		Description: "Bold header band with a two-column party block.",
		style:       Style{PrimaryColor: "#7c3aed", SecondaryColor: "#111827", AccentColor: "#ede9fe", FontFamily: "Poppins", Layout: "split", BorderRadius: 12},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "We appreciate your prompt payment.", terms: "Net 30.", thankYou: "Thanks for choosing us.",
		items: sampleItems,
	},
	{
		ID: "minimal", Name: "Minimal", Category: "general",
		Description: "Monochrome layout with generous whitespace.",
		style:       Style{PrimaryColor: "#111827", SecondaryColor: "#6b7280", AccentColor: "#ffffff", FontFamily: "Helvetica", Layout: "minimal", BorderRadius: 0},
		visibility:  Visibility{ShowTerms: true}, currency: "USD", taxRate: 0,
		terms: "Due on receipt.",
		items: sampleItems,
	},
	{
		ID: "professional", Name: "Professional", Category: "business",
		Description: "Formal invoice with signature block.",
		style:       Style{PrimaryColor: "#0f766e", SecondaryColor: "#134e4a", AccentColor: "#ccfbf1", FontFamily: "Georgia", Layout: "classic", BorderRadius: 4},
		visibility:  Visibility{ShowLogo: true, ShowSignature: true, ShowTerms: true, ShowThankYou: true}, currency: "USD", taxRate: 8.5,
		notes: "Please include the invoice number with your payment.", terms: "Payment is due within 30 days.", thankYou: "Thank you for your business.",
		items: sampleItems,
	},
	{
		ID: "creative", Name: "Creative", Category: "design",
		Description: "Colourful layout for studios and agencies.",
		style:       Style{PrimaryColor: "#db2777", SecondaryColor: "#831843", AccentColor: "#fce7f3", FontFamily: "Montserrat", Layout: "split", BorderRadius: 16},
		visibility:  defaultVisibility, currency: "USD", taxRate: 0,
		notes: "It was a pleasure working with you.", terms: "50% deposit, balance on delivery.", thankYou: "Stay creative!",
		items: []LineItem{{ID: 1, Description: "Design concept", Quantity: 1, Rate: 750, Visible: true}},
	},
	{
		ID: "corporate", Name: "Corporate", Category: "business",
		Description: "Structured invoice with watermark and signature.",
		style:       Style{PrimaryColor: "#1e3a8a", SecondaryColor: "#0f172a", AccentColor: "#dbeafe", FontFamily: "Arial", Layout: "classic", BorderRadius: 2},
		visibility:  Visibility{ShowLogo: true, ShowSignature: true, ShowWatermark: true, ShowTerms: true, ShowThankYou: true}, currency: "USD", taxRate: 10,
		notes: "Purchase order numbers must be quoted on all correspondence.", terms: "Net 45.", thankYou: "Thank you for your partnership.", watermark: "ORIGINAL",
		items: sampleItems,
	},
	{
		ID: "elegant", Name: "Elegant", Category: "design",
		Description: "Serif typography with a muted gold accent.",
		style:       Style{PrimaryColor: "#a16207", SecondaryColor: "#292524", AccentColor: "#fef9c3", FontFamily: "Playfair Display", Layout: "centered", BorderRadius: 6},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "With gratitude.", terms: "Payment is due within 14 days.", thankYou: "Thank you.",
		items: sampleItems,
	},
	{
		ID: "classic", Name: "Classic", Category: "general",
		Description: "Traditional boxed table layout.",
		style:       Style{PrimaryColor: "#374151", SecondaryColor: "#111827", AccentColor: "#f3f4f6", FontFamily: "Times New Roman", Layout: "classic", BorderRadius: 0},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "Thank you for your business.", terms: "Payment is due within 30 days.", thankYou: "Thank you!",
		items: sampleItems,
	},
	{
		ID: "bold", Name: "Bold", Category: "design",
		Description: "High-contrast header and oversized totals.",
		style:       Style{PrimaryColor: "#dc2626", SecondaryColor: "#000000", AccentColor: "#fee2e2", FontFamily: "Oswald", Layout: "split", BorderRadius: 10},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "Thanks!", terms: "Net 15.", thankYou: "Thank you!",
		items: sampleItems,
	},
	{
		ID: TemplateLegal, Name: "Legal", Category: "industry",
		Description: "Billable-hours invoice for law firms.",
		style:       Style{PrimaryColor: "#1f2937", SecondaryColor: "#111827", AccentColor: "#e5e7eb", FontFamily: "Georgia", Layout: "classic", BorderRadius: 0},
		visibility:  Visibility{ShowLogo: true, ShowSignature: true, ShowTerms: true}, currency: "USD", taxRate: 0,
		notes: "Fees for professional legal services rendered.", terms: "Payment is due within 30 days. Interest accrues on overdue balances.",
		items: []LineItem{
			{ID: 1, Description: "Legal consultation (hours)", Quantity: 2, Rate: 250, Visible: true},
			{ID: 2, Description: "Document preparation", Quantity: 1, Rate: 400, Visible: true},
		},
	},
	{
		ID: "medical", Name: "Medical", Category: "industry",
		Description: "Patient billing statement.",
		style:       Style{PrimaryColor: "#0891b2", SecondaryColor: "#164e63", AccentColor: "#cffafe", FontFamily: "Inter", Layout: "classic", BorderRadius: 8},
		visibility:  Visibility{ShowLogo: true, ShowTerms: true, ShowThankYou: true}, currency: "USD", taxRate: 0,
		notes: "Please contact our billing office with any questions.", terms: "Payment is due upon receipt.", thankYou: "Wishing you good health.",
		items: []LineItem{{ID: 1, Description: "Consultation", Quantity: 1, Rate: 150, Visible: true}},
	},
	{
		ID: "consulting", Name: "Consulting", Category: "industry",
		Description: "Hourly and retainer consulting invoice.",
		style:       Style{PrimaryColor: "#4f46e5", SecondaryColor: "#1e1b4b", AccentColor: "#e0e7ff", FontFamily: "Inter", Layout: "split", BorderRadius: 8},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "Hours are billed in 15 minute increments.", terms: "Net 30.", thankYou: "Thank you for the engagement.",
		items: []LineItem{{ID: 1, Description: "Consulting (hours)", Quantity: 10, Rate: 120, Visible: true}},
	},
	{
		ID: "freelance", Name: "Freelance", Category: "industry",
		Description: "Lightweight invoice for independent contractors.",
		style:       Style{PrimaryColor: "#16a34a", SecondaryColor: "#14532d", AccentColor: "#dcfce7", FontFamily: "Nunito", Layout: "minimal", BorderRadius: 12},
		visibility:  Visibility{ShowTerms: true, ShowThankYou: true}, currency: "USD", taxRate: 0,
		notes: "Payment via bank transfer is preferred.", terms: "Due within 14 days.", thankYou: "Thanks for working with me!",
		items: []LineItem{{ID: 1, Description: "Project work", Quantity: 1, Rate: 500, Visible: true}},
	},
	{
		ID: "construction", Name: "Construction", Category: "industry",
		Description: "Labour and materials invoice.",
		style:       Style{PrimaryColor: "#ea580c", SecondaryColor: "#431407", AccentColor: "#ffedd5", FontFamily: "Roboto", Layout: "classic", BorderRadius: 4},
		visibility:  Visibility{ShowLogo: true, ShowSignature: true, ShowTerms: true}, currency: "USD", taxRate: 7, shipping: 0,
		notes: "Materials remain property of the contractor until paid in full.", terms: "Progress payments due within 10 days.",
		items: []LineItem{
			{ID: 1, Description: "Labour (hours)", Quantity: 8, Rate: 65, Visible: true},
			{ID: 2, Description: "Materials", Quantity: 1, Rate: 320, Visible: true},
		},
	},
	{
		ID: "retail", Name: "Retail", Category: "industry",
		Description: "Product sales invoice with shipping.",
		style:       Style{PrimaryColor: "#0284c7", SecondaryColor: "#0c4a6e", AccentColor: "#e0f2fe", FontFamily: "Inter", Layout: "classic", BorderRadius: 8},
		visibility:  defaultVisibility, currency: "USD", taxRate: 8, shipping: 15,
		notes: "Returns accepted within 30 days with receipt.", terms: "Paid in full.", thankYou: "Thank you for shopping with us!",
		items: []LineItem{{ID: 1, Description: "Product", Quantity: 2, Rate: 25, Visible: true}},
	},
	{
		ID: "service", Name: "Service", Category: "industry",
		Description: "Recurring service invoice.",
		style:       Style{PrimaryColor: "#9333ea", SecondaryColor: "#3b0764", AccentColor: "#f3e8ff", FontFamily: "Inter", Layout: "classic", BorderRadius: 8},
		visibility:  defaultVisibility, currency: "USD", taxRate: 10,
		notes: "Service period as stated above.", terms: "Net 30.", thankYou: "Thank you for your continued business.",
		items: []LineItem{{ID: 1, Description: "Monthly service", Quantity: 1, Rate: 200, Visible: true}},
	},
	{
		ID: TemplateCustom, Name: "Custom", Category: "custom",
		Description: "Free-form template with user-defined fields.",
		style:       Style{PrimaryColor: "#2563eb", SecondaryColor: "#1e293b", AccentColor: "#f8fafc", FontFamily: "Inter", Layout: "classic", BorderRadius: 8},
		visibility:  defaultVisibility, currency: "USD", taxRate: 0,
		notes: "Thank you for your business.", terms: "Payment is due within 30 days.", thankYou: "Thank you!",
		items: sampleItems,
		customFields: []CustomField{
			{ID: "project-reference", Type: FieldText, Label: "Project reference", Section: "header"},
			{ID: "payment-method", Type: FieldSelect, Label: "Payment method", Section: "footer", Options: []string{"Bank transfer", "Card", "Cash"}},
		},
	},
}

var presetIndex = func() map[string]*Preset {
	m := make(map[string]*Preset, len(presets))
	for i := range presets {
		m[presets[i].ID] = &presets[i]
	}
	return m
}()

// Presets returns all presets sorted by id.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the preset for id.
func Lookup(id string) (Preset, bool) {
	p, ok := presetIndex[id]
	if !ok {
		return Preset{}, false
	}
	return *p, true
}

// Resolve maps unknown or empty ids to the standard template.
func Resolve(id string) string {
	if _, ok := presetIndex[id]; ok {
		return id
	}
	return TemplateStandard
}

// Default returns a fresh copy of the hard-coded default state for id.
func Default(id string) *TemplateState {
	p := presetIndex[Resolve(id)]
	s := &TemplateState{
		CompanyName:    "Your Company",
		CompanyAddress: "123 Business Street, City, Country",
		CompanyEmail:   "billing@yourcompany.com",
		CompanyPhone:   "+1 (555) 000-0000",
		ClientName:     "Client Name",
		ClientAddress:  "456 Client Avenue, City, Country",
		ClientEmail:    "client@example.com",
		ClientPhone:    "+1 (555) 111-1111",
		InvoiceNumber:  "INV-001",
		Currency:       p.currency,
		Items:          append([]LineItem(nil), p.items...),
		TaxRate:        p.taxRate,
		ShippingCost:   p.shipping,
		Notes:          p.notes,
		Terms:          p.terms,
		ThankYouNote:   p.thankYou,
		WatermarkText:  p.watermark,
		Style:          p.style,
		Visibility:     p.visibility,
	}
	if p.customFields != nil {
		s.CustomFields = make([]CustomField, len(p.customFields))
		for i, f := range p.customFields {
			s.CustomFields[i] = f.clone()
		}
	}
	Recalculate(s)
	return s
}
