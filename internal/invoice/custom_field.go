package invoice

import (
	"fmt"

	"github.com/google/uuid"
)

// FieldType is the closed set of custom field kinds.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldSelect, FieldDate, FieldTextarea:
		return true
	}
	return false
}

// CustomField is a user-defined field of the free-form "custom" template.
// Options is non-empty for FieldSelect and nil for every other type.
type CustomField struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	Value    string    `json:"value"`
	Section  string    `json:"section"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// CustomFieldPatch replaces the non-nil fields of a CustomField.
type CustomFieldPatch struct {
	Label    *string   `json:"label"`
	Value    *string   `json:"value"`
	Section  *string   `json:"section"`
	Required *bool     `json:"required"`
	Options  *[]string `json:"options"`
}

// NewCustomField builds a field with a fresh uuid.
func NewCustomField(t FieldType, label, section string, options []string) (CustomField, error) {
	f := CustomField{
		ID:      uuid.New().String(),
		Type:    t,
		Label:   label,
		Section: section,
	}
	if t == FieldSelect {
		f.Options = append([]string(nil), options...)
	}
	if err := f.Validate(); err != nil {
		return CustomField{}, err
	}
	return f, nil
}

// Validate enforces the per-type shape of the field.
func (f CustomField) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCustomField, f.Type)
	}
	if f.Type == FieldSelect && len(f.Options) == 0 {
		return fmt.Errorf("%w: select field requires options", ErrInvalidCustomField)
	}
	if f.Type != FieldSelect && f.Options != nil {
		return fmt.Errorf("%w: options are only allowed on select fields", ErrInvalidCustomField)
	}
	return nil
}

func (f CustomField) apply(p CustomFieldPatch) CustomField {
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Value != nil {
		f.Value = *p.Value
	}
	if p.Section != nil {
		f.Section = *p.Section
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	if p.Options != nil {
		f.Options = append([]string(nil), (*p.Options)...)
	}
	return f
}

func (f CustomField) clone() CustomField {
	if f.Options != nil {
		f.Options = append([]string(nil), f.Options...)
	}
	return f
}
