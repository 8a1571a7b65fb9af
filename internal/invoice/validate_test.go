package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicegen/internal/invoice"
)

func TestValidate_DefaultIsValid(t *testing.T) {
	assert.Empty(t, invoice.Validate(invoice.Default(invoice.TemplateStandard)))
}

func TestValidate_MissingFields(t *testing.T) {
	s := invoice.Default(invoice.TemplateStandard)
	s.CompanyName = "  "
	s.InvoiceNumber = ""
	s.Items = nil

	issues := invoice.Validate(s)

	fields := make([]string, 0, len(issues))
	for _, i := range issues {
		fields = append(fields, i.Field)
	}
	assert.ElementsMatch(t, []string{"company_name", "invoice_number", "items"}, fields)
}

func TestValidate_RequiredCustomField(t *testing.T) {
	s := invoice.Default(invoice.TemplateCustom)
	s.CustomFields[0].Required = true

	issues := invoice.Validate(s)
	if assert.Len(t, issues, 1) {
		assert.Equal(t, "custom_fields[0]", issues[0].Field)
	}

	s.CustomFields[0].Value = "PRJ-7"
	assert.Empty(t, invoice.Validate(s))
}

func TestValidate_NegativeNumbersAccepted(t *testing.T) {
	s := invoice.Default(invoice.TemplateStandard)
	s.TaxRate = -3
	s.DiscountAmount = 1e6
	assert.Empty(t, invoice.Validate(s))
}

func TestValidate_DuplicateItemIDs(t *testing.T) {
	s := invoice.Default(invoice.TemplateStandard)
	s.Items = append(s.Items, s.Items[0])

	issues := invoice.Validate(s)
	if assert.Len(t, issues, 1) {
		assert.Equal(t, "items", issues[0].Field)
	}
}

func TestValidate_CustomFieldShape(t *testing.T) {
	s := invoice.Default(invoice.TemplateCustom)
	s.CustomFields[0].Type = invoice.FieldSelect
	s.CustomFields[0].Options = nil

	issues := invoice.Validate(s)
	if assert.Len(t, issues, 1) {
		assert.Equal(t, "custom_fields[0]", issues[0].Field)
	}
}

func TestValidate_DuplicateCustomFieldIDs(t *testing.T) {
	s := invoice.Default(invoice.TemplateCustom)
	s.CustomFields = append(s.CustomFields, s.CustomFields[0])

	issues := invoice.Validate(s)
	fields := make([]string, 0, len(issues))
	for _, i := range issues {
		fields = append(fields, i.Field)
	}
	assert.Contains(t, fields, "custom_fields[1]")
}
