// Package vision recognises document text with Google Cloud Vision.
package vision

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/ocr"
)

// maxPDFPages is the synchronous page limit of BatchAnnotateFiles.
const maxPDFPages = 5

// Extractor implements port.TextExtractor.
type Extractor struct {
	client *vision.ImageAnnotatorClient
}

// NewExtractor creates a Vision client from inline JSON credentials, a
// credentials file, or application default credentials, in that order.
func NewExtractor(ctx context.Context, cfg config.OCRConfig) (*Extractor, error) {
	const op = "NewExtractor"

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, ocr.Wrap(op, err, "creating vision client")
	}
	return &Extractor{client: client}, nil
}

// ExtractText recognises the text of a PDF or an image.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	var (
		text string
		err  error
	)
	if contentType == "application/pdf" {
		text, err = e.extractPDF(ctx, data)
	} else {
		text, err = e.extractImage(ctx, data)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoTextFound
	}
	return text, nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	const op = "extractPDF"

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{{
			InputConfig: &visionpb.InputConfig{
				Content:  data,
				MimeType: "application/pdf",
			},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	}
	resp, err := e.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, fmt.Sprintf("vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, "empty response")
	}
	file := resp.Responses[0]
	if file.Error != nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, file.Error.Message)
	}
	if len(file.Responses) > maxPDFPages {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, fmt.Sprintf("document has %d pages", len(file.Responses)))
	}

	var sb strings.Builder
	for i, page := range file.Responses {
		if page.Error != nil {
			return "", ocr.Wrap(op, domain.ErrTextExtraction, fmt.Sprintf("page %d: %s", i+1, page.Error.Message))
		}
		if page.FullTextAnnotation == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(page.FullTextAnnotation.Text)
	}
	return sb.String(), nil
}

func (e *Extractor) extractImage(ctx context.Context, data []byte) (string, error) {
	const op = "extractImage"

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: data},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	}
	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, fmt.Sprintf("vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, "empty response")
	}
	img := resp.Responses[0]
	if img.Error != nil {
		return "", ocr.Wrap(op, domain.ErrTextExtraction, img.Error.Message)
	}
	if img.FullTextAnnotation == nil {
		return "", nil
	}
	return img.FullTextAnnotation.Text, nil
}

// Close releases the underlying client.
func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
