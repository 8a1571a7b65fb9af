package port

import "context"

// TextExtractor recognises the text of a scanned document or photo.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}
