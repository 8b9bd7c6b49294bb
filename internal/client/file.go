package client

import (
	"strings"

	"github.com/BerylCAtieno/pdf-signer/internal/models"
)

const (
	msgNotPDF   = "Please upload a PDF file"
	msgTooLarge = "File size must be less than 10MB"
)

// File is a named blob with a declared media type, as picked by the user
// or returned by the server.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// ValidationError is a client-side rejection shown to the user. No request
// is made when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the declared type and size before upload.
func Validate(f *File) error {
	if f == nil || f.ContentType != models.ContentTypePDF {
		return &ValidationError{Message: msgNotPDF}
	}
	if f.Size() > models.MaxFileSizeBytes {
		return &ValidationError{Message: msgTooLarge}
	}
	return nil
}

// SignedFileName replaces a trailing ".pdf" (any case) with "_signed.pdf".
// Other names are returned unchanged.
func SignedFileName(name string) string {
	const ext = ".pdf"
	if len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)] + "_signed.pdf"
	}
	return name
}
