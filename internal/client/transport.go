package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/pdf-signer/internal/models"
)

const (
	signPath = "/api/sign"

	// Used when a failed response carries no readable error body.
	msgServerFallback = "Failed to sign PDF"
)

// Signer sends a document to be stamped and returns the signed copy.
type Signer interface {
	Sign(ctx context.Context, f *File, signAllPages bool) (*File, error)
}

// ServerError is a non-2xx reply from the sign endpoint.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type HTTPSigner struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSigner(baseURL string, client *http.Client) *HTTPSigner {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func (s *HTTPSigner) Sign(ctx context.Context, f *File, signAllPages bool) (*File, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	// CreateFormFile would declare application/octet-stream.
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", f.ContentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	if err := writer.WriteField("signAllPages", strconv.FormatBool(signAllPages)); err != nil {
		return nil, fmt.Errorf("write signAllPages field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+signPath, &buffer)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := msgServerFallback
		var body models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
			message = body.Error
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: message}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read signed document: %w", err)
	}

	return &File{
		Name:        SignedFileName(f.Name),
		ContentType: models.ContentTypePDF,
		Data:        data,
	}, nil
}
