package invoice

import (
	"fmt"
	"strings"
)

// ValidationIssue is one failed required-field check.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckRecord verifies the structural rules of s: line item ids and custom
// field ids are unique and every custom field has a valid shape.
func CheckRecord(s *TemplateState) error {
	if err := checkItems(s.Items); err != nil {
		return err
	}
	return checkCustomFields(s.CustomFields)
}

func checkItems(items []LineItem) error {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			return fmt.Errorf("%w: line item %d", ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

func checkCustomFields(fields []CustomField) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			return fmt.Errorf("%w: missing id", ErrInvalidCustomField)
		}
		if seen[f.ID] {
			return fmt.Errorf("%w: custom field %q", ErrDuplicateID, f.ID)
		}
		seen[f.ID] = true
		if err := f.Validate(); err != nil {
			return fmt.Errorf("custom field %q: %w", f.ID, err)
		}
	}
	return nil
}

// Validate runs the checks that gate saving and exporting: required fields,
// unique ids and custom field shapes. Numeric sanity is not checked: negative
// values are accepted.
func Validate(s *TemplateState) []ValidationIssue {
	var issues []ValidationIssue
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			issues = append(issues, ValidationIssue{Field: field, Message: field + " is required"})
		}
	}

	required("company_name", s.CompanyName)
	required("client_name", s.ClientName)
	required("invoice_number", s.InvoiceNumber)

	if len(s.Items) == 0 {
		issues = append(issues, ValidationIssue{Field: "items", Message: "at least one line item is required"})
	}
	if err := checkItems(s.Items); err != nil {
		issues = append(issues, ValidationIssue{Field: "items", Message: err.Error()})
	}
	seen := make(map[string]bool, len(s.CustomFields))
	for i, f := range s.CustomFields {
		field := fmt.Sprintf("custom_fields[%d]", i)
		if err := f.Validate(); err != nil {
			issues = append(issues, ValidationIssue{Field: field, Message: err.Error()})
		}
		if f.ID == "" || seen[f.ID] {
			issues = append(issues, ValidationIssue{Field: field, Message: "custom field id must be present and unique"})
		}
		seen[f.ID] = true
	}
	for i, f := range s.CustomFields {
		if f.Required && strings.TrimSpace(f.Value) == "" {
			issues = append(issues, ValidationIssue{
				Field:   fmt.Sprintf("custom_fields[%d]", i),
				Message: fmt.Sprintf("%s is required", f.Label),
			})
		}
	}
	return issues
}
