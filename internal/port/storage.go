package port

import (
	"context"
	"io"
)

// StoredObject is an invoice artifact written to object storage: an exported
// PDF or a branding image.
type StoredObject struct {
	Key         string
	ContentType string
	Body        io.Reader
	Size        int64
	// DownloadName, when set, is the filename browsers save the object as.
	DownloadName string
}

// ObjectStorage keeps exports and assets in a single bucket and hands out
// time-limited links to them.
type ObjectStorage interface {
	Put(ctx context.Context, obj StoredObject) error
	SignedURL(ctx context.Context, key, downloadName string) (string, error)
	Remove(ctx context.Context, key string) error
}
