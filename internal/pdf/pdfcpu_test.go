package pdf

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-signer/internal/pdf/pdftest"
)

func pageCount(t *testing.T, data []byte) int {
	t.Helper()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), conf)
	require.NoError(t, err)
	return n
}

func TestLoadRejectsNonPDF(t *testing.T) {
	engine := NewPDFCPUEngine()

	for name, data := range map[string][]byte{
		"empty":      {},
		"plain text": []byte("definitely not a pdf"),
		"truncated":  []byte("%PDF-1.7\n1 0 obj\n<<"),
	} {
		t.Run(name, func(t *testing.T) {
			doc, err := engine.Load(data)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestPagesReportMediaBoxSize(t *testing.T) {
	data := pdftest.Build(t, pdftest.Letter, pdftest.A4)

	doc, err := NewPDFCPUEngine().Load(data)
	require.NoError(t, err)

	pages, err := doc.Pages()
	require.NoError(t, err)
	require.Len(t, pages, 2)

	w, h := pages[0].Size()
	assert.InDelta(t, 612, w, 0.01)
	assert.InDelta(t, 792, h, 0.01)

	w, h = pages[1].Size()
	assert.InDelta(t, pdftest.A4.Width, w, 0.01)
	assert.InDelta(t, pdftest.A4.Height, h, 0.01)
}

func TestSaveAppendsContentOnlyToDrawnPages(t *testing.T) {
	data := pdftest.BuildPages(t, 3, pdftest.A4)

	doc, err := NewPDFCPUEngine().Load(data)
	require.NoError(t, err)

	font, err := doc.EmbedFont(HelveticaBold)
	require.NoError(t, err)
	assert.Equal(t, HelveticaBold, font.Name())

	pages, err := doc.Pages()
	require.NoError(t, err)

	pages[1].DrawRectangle(RectangleOptions{X: 10, Y: 20, Width: 30, Height: 40, Color: RGB(1, 1, 1), BorderColor: RGB(0, 0, 0), BorderWidth: 1})
	pages[1].DrawText("marker (1)", TextOptions{X: 15, Y: 25, Size: 8, Font: font, Color: RGB(0, 0, 0)})

	out, err := doc.Save()
	require.NoError(t, err)

	assert.Equal(t, 3, pageCount(t, out))

	assert.Equal(t, 1, bytes.Count(out, []byte(`(marker \(1\)) Tj`)))
	assert.Equal(t, 1, bytes.Count(out, []byte("10 20 30 40 re")))
}

func TestSaveWithoutDrawingKeepsDocumentReadable(t *testing.T) {
	data := pdftest.BuildPages(t, 2, pdftest.Letter)

	doc, err := NewPDFCPUEngine().Load(data)
	require.NoError(t, err)

	out, err := doc.Save()
	require.NoError(t, err)

	assert.Equal(t, 2, pageCount(t, out))
}

type foreignFont struct{}

func (foreignFont) Name() StandardFont { return Helvetica }

func TestSaveFailsForForeignFont(t *testing.T) {
	doc, err := NewPDFCPUEngine().Load(pdftest.BuildPages(t, 1, pdftest.Letter))
	require.NoError(t, err)

	pages, err := doc.Pages()
	require.NoError(t, err)
	pages[0].DrawText("x", TextOptions{Font: foreignFont{}, Size: 9})

	_, err = doc.Save()
	assert.ErrorIs(t, err, ErrSerialize)
}
