package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, workspace string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--workspace", workspace}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseAssignments(t *testing.T) {
	patch, err := parseAssignments([]string{"company_name=Acme Ltd", "tax_rate=8.5", "notes=a=b"})
	require.NoError(t, err)
	require.NotNil(t, patch.CompanyName)
	assert.Equal(t, "Acme Ltd", *patch.CompanyName)
	require.NotNil(t, patch.TaxRate)
	assert.Equal(t, 8.5, *patch.TaxRate)
	assert.Equal(t, "a=b", *patch.Notes)
	assert.Nil(t, patch.ClientName)
}

func TestParseAssignments_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing equals", []string{"company_name"}},
		{"empty key", []string{"=x"}},
		{"bad number", []string{"tax_rate=lots"}},
		{"unknown field", []string{"colour=red"}},
		{"aggregate not patchable", []string{"total=5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAssignments(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestCLI_EditPersistsAcrossInvocations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.json")

	out, err := runCLI(t, path, "switch", "legal")
	require.NoError(t, err)
	assert.Contains(t, out, "active template: legal")

	_, err = runCLI(t, path, "set", "client_name=Globex")
	require.NoError(t, err)

	out, err = runCLI(t, path, "totals")
	require.NoError(t, err)
	assert.Contains(t, out, "template:  legal")

	out, err = runCLI(t, path, "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"client_name": "Globex"`)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestCLI_ItemAddAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.json")

	out, err := runCLI(t, path, "item", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "added item")

	_, err = runCLI(t, path, "item", "rm", "not-a-number")
	assert.Error(t, err)
}

func TestCLI_ToggleUnknownElement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.json")

	_, err := runCLI(t, path, "toggle", "confetti")
	assert.Error(t, err)

	out, err := runCLI(t, path, "toggle", "watermark")
	require.NoError(t, err)
	assert.Contains(t, out, "show_watermark")
}

func TestCLI_Templates(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "ws.json"), "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "standard")
	assert.Contains(t, out, "legal")
}

func TestCLI_RenderWritesPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ws.json")
	pdfPath := filepath.Join(dir, "out.pdf")

	_, err := runCLI(t, path, "set", "company_name=Acme", "client_name=Globex", "invoice_number=INV-1")
	require.NoError(t, err)
	_, err = runCLI(t, path, "item", "add")
	require.NoError(t, err)

	_, err = runCLI(t, path, "render", "-o", pdfPath)
	require.NoError(t, err)

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
