package invoice

// Patch replaces whole fields of the active TemplateState. Nil fields are left
// untouched. Aggregates are not patchable.
type Patch struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyEmail   *string `json:"company_email"`
	CompanyPhone   *string `json:"company_phone"`

	ClientName    *string `json:"client_name"`
	ClientAddress *string `json:"client_address"`
	ClientEmail   *string `json:"client_email"`
	ClientPhone   *string `json:"client_phone"`

	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
	Currency      *string `json:"currency"`

	Items *[]LineItem `json:"items"`

	TaxRate        *float64 `json:"tax_rate"`
	DiscountAmount *float64 `json:"discount_amount"`
	ShippingCost   *float64 `json:"shipping_cost"`

	Notes         *string `json:"notes"`
	Terms         *string `json:"terms"`
	ThankYouNote  *string `json:"thank_you_note"`
	WatermarkText *string `json:"watermark_text"`
	LogoURL       *string `json:"logo_url"`
	SignatureURL  *string `json:"signature_url"`

	Style      *Style      `json:"style"`
	Visibility *Visibility `json:"visibility"`

	CustomFields *[]CustomField `json:"custom_fields"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// ItemPatch replaces the non-nil fields of a LineItem.
type ItemPatch struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Rate        *float64 `json:"rate"`
	Visible     *bool    `json:"visible"`
}

// Workspace holds one TemplateState per template identifier plus the active one.
// A Workspace is not safe for concurrent use.
type Workspace struct {
	ActiveID string                    `json:"active_template"`
	States   map[string]*TemplateState `json:"states"`
}

// NewWorkspace returns a workspace whose active record is the default of templateID.
func NewWorkspace(templateID string) *Workspace {
	id := Resolve(templateID)
	return &Workspace{
		ActiveID: id,
		States:   map[string]*TemplateState{id: Default(id)},
	}
}

// Active returns the active record, creating it from defaults if absent.
func (w *Workspace) Active() *TemplateState {
	w.ActiveID = Resolve(w.ActiveID)
	if w.States == nil {
		w.States = make(map[string]*TemplateState)
	}
	s, ok := w.States[w.ActiveID]
	if !ok || s == nil {
		s = Default(w.ActiveID)
		w.States[w.ActiveID] = s
	}
	return s
}

// Data derives InvoiceData for the active record.
func (w *Workspace) Data() InvoiceData {
	return Derive(w.ActiveID, w.Active())
}

// Snapshot returns a deep copy of the active record.
func (w *Workspace) Snapshot() *TemplateState {
	return w.Active().Clone()
}

// Clone returns a deep copy of w.
func (w *Workspace) Clone() *Workspace {
	c := &Workspace{ActiveID: w.ActiveID, States: make(map[string]*TemplateState, len(w.States))}
	for k, v := range w.States {
		c.States[k] = v.Clone()
	}
	return c
}

// UpdateTemplateState shallow-merges p into the active record. Replacement
// item or custom field lists must have unique ids and well-formed fields;
// otherwise nothing is changed.
func (w *Workspace) UpdateTemplateState(p Patch) error {
	if p.Items != nil {
		if err := checkItems(*p.Items); err != nil {
			return err
		}
	}
	if p.CustomFields != nil {
		if err := checkCustomFields(*p.CustomFields); err != nil {
			return err
		}
	}

	s := w.Active()
	setString(&s.CompanyName, p.CompanyName)
	setString(&s.CompanyAddress, p.CompanyAddress)
	setString(&s.CompanyEmail, p.CompanyEmail)
	setString(&s.CompanyPhone, p.CompanyPhone)
	setString(&s.ClientName, p.ClientName)
	setString(&s.ClientAddress, p.ClientAddress)
	setString(&s.ClientEmail, p.ClientEmail)
	setString(&s.ClientPhone, p.ClientPhone)
	setString(&s.InvoiceNumber, p.InvoiceNumber)
	setString(&s.InvoiceDate, p.InvoiceDate)
	setString(&s.DueDate, p.DueDate)
	setString(&s.Currency, p.Currency)
	setString(&s.Notes, p.Notes)
	setString(&s.Terms, p.Terms)
	setString(&s.ThankYouNote, p.ThankYouNote)
	setString(&s.WatermarkText, p.WatermarkText)
	setString(&s.LogoURL, p.LogoURL)
	setString(&s.SignatureURL, p.SignatureURL)

	if p.Items != nil {
		s.Items = append([]LineItem{}, (*p.Items)...)
	}
	if p.TaxRate != nil {
		s.TaxRate = *p.TaxRate
	}
	if p.DiscountAmount != nil {
		s.DiscountAmount = *p.DiscountAmount
	}
	if p.ShippingCost != nil {
		s.ShippingCost = *p.ShippingCost
	}
	if p.Style != nil {
		s.Style = *p.Style
	}
	if p.Visibility != nil {
		s.Visibility = *p.Visibility
	}
	if p.CustomFields != nil {
		fields := make([]CustomField, len(*p.CustomFields))
		for i, f := range *p.CustomFields {
			fields[i] = f.clone()
		}
		s.CustomFields = fields
	}
	Recalculate(s)
	return nil
}

// ToggleElement flips one visibility flag of the active record.
func (w *Workspace) ToggleElement(e Element) error {
	s := w.Active()
	f := s.Visibility.flag(e)
	if f == nil {
		return ErrUnknownElement
	}
	*f = !*f
	return nil
}

// AddInvoiceItem appends an item with id max(ids)+1.
func (w *Workspace) AddInvoiceItem() LineItem {
	s := w.Active()
	next := 1
	for _, it := range s.Items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	item := LineItem{ID: next, Quantity: 1, Visible: true}
	s.Items = append(s.Items, item)
	Recalculate(s)
	return s.Items[len(s.Items)-1]
}

// RemoveInvoiceItem deletes the item with id, preserving order. Unknown ids are ignored.
func (w *Workspace) RemoveInvoiceItem(id int) {
	s := w.Active()
	i := s.itemIndex(id)
	if i < 0 {
		return
	}
	s.Items = append(s.Items[:i:i], s.Items[i+1:]...)
	Recalculate(s)
}

// UpdateInvoiceItem applies p to the item with id. It reports whether the item exists.
func (w *Workspace) UpdateInvoiceItem(id int, p ItemPatch) bool {
	s := w.Active()
	i := s.itemIndex(id)
	if i < 0 {
		return false
	}
	it := &s.Items[i]
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Rate != nil {
		it.Rate = *p.Rate
	}
	if p.Visible != nil {
		it.Visible = *p.Visible
	}
	Recalculate(s)
	return true
}

// AddCustomField appends a new custom field to the active record.
func (w *Workspace) AddCustomField(t FieldType, label, section string, options []string) (CustomField, error) {
	f, err := NewCustomField(t, label, section, options)
	if err != nil {
		return CustomField{}, err
	}
	s := w.Active()
	s.CustomFields = append(s.CustomFields, f)
	return f.clone(), nil
}

// UpdateCustomField applies p to the field with id.
func (w *Workspace) UpdateCustomField(id string, p CustomFieldPatch) error {
	s := w.Active()
	i := s.fieldIndex(id)
	if i < 0 {
		return ErrCustomFieldMissing
	}
	updated := s.CustomFields[i].apply(p)
	if err := updated.Validate(); err != nil {
		return err
	}
	s.CustomFields[i] = updated
	return nil
}

// RemoveCustomField deletes the field with id. Unknown ids are ignored.
func (w *Workspace) RemoveCustomField(id string) {
	s := w.Active()
	i := s.fieldIndex(id)
	if i < 0 {
		return
	}
	s.CustomFields = append(s.CustomFields[:i:i], s.CustomFields[i+1:]...)
}

// SwitchTemplate makes id the active record without touching the others.
func (w *Workspace) SwitchTemplate(id string) {
	w.ActiveID = Resolve(id)
	w.Active()
}

// ResetTemplate replaces the record for id (the active one when empty) with its default.
func (w *Workspace) ResetTemplate(id string) {
	if id == "" {
		id = w.ActiveID
	}
	id = Resolve(id)
	if w.States == nil {
		w.States = make(map[string]*TemplateState)
	}
	w.States[id] = Default(id)
}

// Replace installs s as the record for id and makes it active. A record that
// fails CheckRecord is rejected.
func (w *Workspace) Replace(id string, s *TemplateState) error {
	if err := CheckRecord(s); err != nil {
		return err
	}
	id = Resolve(id)
	if w.States == nil {
		w.States = make(map[string]*TemplateState)
	}
	c := s.Clone()
	Recalculate(c)
	w.States[id] = c
	w.ActiveID = id
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
