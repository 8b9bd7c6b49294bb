package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSignerSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sign", r.URL.Path)

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()

		data, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-in", string(data))
		assert.Equal(t, `quote"d.pdf`, header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.FormValue("signAllPages"))

		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-out"))
	}))
	defer srv.Close()

	signer := NewHTTPSigner(srv.URL+"/", srv.Client())
	out, err := signer.Sign(context.Background(), &File{Name: `quote"d.pdf`, ContentType: "application/pdf", Data: []byte("%PDF-in")}, true)
	require.NoError(t, err)

	assert.Equal(t, `quote"d_signed.pdf`, out.Name)
	assert.Equal(t, "application/pdf", out.ContentType)
	assert.Equal(t, "%PDF-out", string(out.Data))
}

func TestHTTPSignerSendsFalseFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.FormValue("signAllPages"))
		w.Write([]byte("%PDF"))
	}))
	defer srv.Close()

	_, err := NewHTTPSigner(srv.URL, nil).Sign(context.Background(), &File{Name: "a.pdf", ContentType: "application/pdf"}, false)
	require.NoError(t, err)
}

func TestHTTPSignerDecodesServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json error", http.StatusBadRequest, `{"error":"File must be a PDF"}`, "File must be a PDF"},
		{"server failure", http.StatusInternalServerError, `{"error":"Failed to sign PDF. Please try again."}`, "Failed to sign PDF. Please try again."},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "Failed to sign PDF"},
		{"empty object", http.StatusInternalServerError, `{}`, "Failed to sign PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPSigner(srv.URL, srv.Client()).Sign(context.Background(), &File{Name: "a.pdf", ContentType: "application/pdf"}, false)

			var serverErr *ServerError
			require.ErrorAs(t, err, &serverErr)
			assert.Equal(t, tt.status, serverErr.StatusCode)
			assert.Equal(t, tt.message, serverErr.Message)
		})
	}
}

func TestHTTPSignerNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSigner(url, nil).Sign(context.Background(), &File{Name: "a.pdf", ContentType: "application/pdf"}, false)
	assert.Error(t, err)
}
