package documentai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/ocr/documentai"
)

func TestProcessorName(t *testing.T) {
	name, err := documentai.ProcessorName(config.OCRConfig{ProjectID: "proj", Location: "eu", ProcessorID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "projects/proj/locations/eu/processors/p1", name)

	name, err = documentai.ProcessorName(config.OCRConfig{ProjectID: "proj", ProcessorID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "projects/proj/locations/us/processors/p1", name)
}

func TestProcessorName_Incomplete(t *testing.T) {
	_, err := documentai.ProcessorName(config.OCRConfig{ProjectID: "proj"})
	assert.ErrorIs(t, err, documentai.ErrMissingProcessor)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "eu-documentai.googleapis.com:443", documentai.Endpoint("eu"))
	assert.Equal(t, "us-documentai.googleapis.com:443", documentai.Endpoint(""))
}
