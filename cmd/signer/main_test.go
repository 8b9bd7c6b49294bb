package main

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-signer/internal/config"
	"github.com/BerylCAtieno/pdf-signer/internal/pdf"
	"github.com/BerylCAtieno/pdf-signer/internal/pdf/pdftest"
	"github.com/BerylCAtieno/pdf-signer/internal/router"
	"github.com/BerylCAtieno/pdf-signer/internal/services"
	"github.com/BerylCAtieno/pdf-signer/internal/utils"
)

func TestRunSignsAndSaves(t *testing.T) {
	logger := utils.NewLoggerWithWriter(io.Discard, "error")
	svc := services.NewSigningService(pdf.NewPDFCPUEngine(), logger)
	srv := httptest.NewServer(router.NewRouter(svc, &config.Config{MultipartMaxMemory: 32 << 20, CORSAllowedOrigin: "*"}, logger))
	defer srv.Close()

	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "Invoice.pdf")
	require.NoError(t, os.WriteFile(in, pdftest.BuildPages(t, 2, pdftest.Letter), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-server", srv.URL, "-all", "-page", "2", in}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "Page 2 of 2")
	assert.Contains(t, stdout.String(), "DIGITALLY SIGNED")
	assert.Contains(t, stdout.String(), "Authorized Signatory")

	out, err := os.ReadFile(filepath.Join(dir, "Invoice_signed.pdf"))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRunRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	in := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(in, []byte("hello"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-server", "http://127.0.0.1:1", in}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Please upload a PDF file")
}

func TestRunUsage(t *testing.T) {
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: signer")
}
