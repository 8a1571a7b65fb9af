// Package documentai recognises document text with a Google Document AI processor.
package documentai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/ocr"
)

const processTimeout = 60 * time.Second

// ErrMissingProcessor is returned when the processor coordinates are incomplete.
var ErrMissingProcessor = errors.New("document ai project id and processor id are required")

// Extractor implements port.TextExtractor.
type Extractor struct {
	client        *documentai.DocumentProcessorClient
	processorName string
}

// ProcessorName builds the fully qualified processor resource name.
func ProcessorName(cfg config.OCRConfig) (string, error) {
	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return "", ErrMissingProcessor
	}
	location := cfg.Location
	if location == "" {
		location = "us"
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", cfg.ProjectID, location, cfg.ProcessorID), nil
}

// Endpoint returns the regional API endpoint for location.
func Endpoint(location string) string {
	if location == "" {
		location = "us"
	}
	return location + "-documentai.googleapis.com:443"
}

// NewExtractor creates a Document AI client for the configured processor.
func NewExtractor(ctx context.Context, cfg config.OCRConfig) (*Extractor, error) {
	const op = "NewExtractor"

	name, err := ProcessorName(cfg)
	if err != nil {
		return nil, ocr.Wrap(op, err, "")
	}

	opts := []option.ClientOption{option.WithEndpoint(Endpoint(cfg.Location))}
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, ocr.Wrap(op, err, "creating document ai client")
	}
	return &Extractor{client: client, processorName: name}, nil
}

// ExtractText runs the processor over a PDF or an image and returns the full text.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	const op = "ExtractText"

	ctx, cancel := context.WithTimeout(ctx, processTimeout)
	defer cancel()

	resp, err := e.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: e.processorName,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: contentType,
			},
		},
	})
	if err != nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, fmt.Sprintf("document ai call failed: %v", err))
	}
	if resp.GetDocument() == nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, "no document in response")
	}

	text := resp.GetDocument().GetText()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoTextFound
	}
	return text, nil
}

// Close releases the underlying client.
func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
