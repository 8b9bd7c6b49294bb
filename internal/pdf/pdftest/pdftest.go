// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// PageSize is a page size in points.
type PageSize struct {
	Width, Height float64
}

var (
	A4     = PageSize{Width: 595.28, Height: 841.89}
	Letter = PageSize{Width: 612, Height: 792}
)

// Build returns a PDF with one page per entry in sizes. Each page carries
// the text "Page N" so tests can tell pages apart.
func Build(tb testing.TB, sizes ...PageSize) []byte {
	tb.Helper()

	if len(sizes) == 0 {
		tb.Fatal("pdftest.Build: at least one page size is required")
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sizes[0].Width, Ht: sizes[0].Height},
	})
	doc.SetFont("Helvetica", "", 14)

	for i, size := range sizes {
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: size.Width, Ht: size.Height})
		doc.Text(40, 60, fmt.Sprintf("Page %d", i+1))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		tb.Fatalf("pdftest.Build: %v", err)
	}
	return buf.Bytes()
}

// BuildPages returns a PDF with n pages of the given size.
func BuildPages(tb testing.TB, n int, size PageSize) []byte {
	tb.Helper()

	sizes := make([]PageSize, n)
	for i := range sizes {
		sizes[i] = size
	}
	return Build(tb, sizes...)
}
