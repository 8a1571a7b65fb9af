package service_test

import (
	"bytes"
	"mime/multipart"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	pdfBytes = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
)

// memFile is an in-memory multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func upload(name string, data []byte) (multipart.File, *multipart.FileHeader) {
	return memFile{bytes.NewReader(data)}, &multipart.FileHeader{Filename: name, Size: int64(len(data))}
}
