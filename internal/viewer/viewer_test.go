package viewer

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-signer/internal/pdf/pdftest"
)

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open([]byte("not a pdf"))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPageReportsSizeAndText(t *testing.T) {
	doc, err := Open(pdftest.Build(t, pdftest.Letter, pdftest.A4))
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, 2, doc.NumPages())

	first, err := doc.Page(1)
	require.NoError(t, err)
	assert.InDelta(t, 612, first.Width, 0.01)
	assert.InDelta(t, 792, first.Height, 0.01)

	second, err := doc.Page(2)
	require.NoError(t, err)
	assert.InDelta(t, pdftest.A4.Width, second.Width, 0.01)

	run, ok := second.Find("Page 2")
	require.True(t, ok)
	assert.InDelta(t, 14, run.Size, 0.01)
	assert.InDelta(t, 40, run.X, 0.01)

	_, err = doc.Page(3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPlainText(t *testing.T) {
	doc, err := Open(pdftest.BuildPages(t, 2, pdftest.Letter))
	require.NoError(t, err)

	text, err := doc.PlainText()
	require.NoError(t, err)
	assert.Contains(t, text, "Page 1")
	assert.Contains(t, text, "Page 2")
}

func TestCloseReleasesDocument(t *testing.T) {
	doc, err := Open(pdftest.BuildPages(t, 1, pdftest.Letter))
	require.NoError(t, err)

	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close())

	assert.True(t, doc.Closed())
	assert.Equal(t, 0, doc.NumPages())
	_, err = doc.Page(1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = doc.PlainText()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestGroupRuns(t *testing.T) {
	chars := []pdf.Text{
		{Font: "Helvetica-Bold", FontSize: 12, X: 10, Y: 88, S: "O"},
		{Font: "Helvetica-Bold", FontSize: 12, X: 18, Y: 88, S: "K"},
		{S: "\n"},
		{Font: "Helvetica", FontSize: 9, X: 10, Y: 66, S: "D"},
		{Font: "Helvetica", FontSize: 9, X: 16, Y: 66, S: "a"},
	}

	runs := groupRuns(chars)
	require.Len(t, runs, 2)
	assert.Equal(t, TextRun{Font: "Helvetica-Bold", Size: 12, X: 10, Y: 88, Text: "OK"}, runs[0])
	assert.Equal(t, TextRun{Font: "Helvetica", Size: 9, X: 10, Y: 66, Text: "Da"}, runs[1])
}
