// Package viewer opens signed PDF bytes for inspection: page sizes, the
// text runs drawn on each page and any rectangles. It is the terminal
// counterpart of a browser PDF viewer.
package viewer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

var (
	ErrClosed          = errors.New("viewer: document is closed")
	ErrInvalidDocument = errors.New("viewer: invalid document")
	ErrPageOutOfRange  = errors.New("viewer: page out of range")
)

// TextRun is a stretch of characters drawn with one font and size on one
// baseline. X and Y are those of the first character.
type TextRun struct {
	Font string
	Size float64
	X, Y float64
	Text string
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

type Page struct {
	Number        int
	Width, Height float64
	Runs          []TextRun
	Rects         []Rect
}

// Find returns the first run whose text starts with prefix.
func (p *Page) Find(prefix string) (TextRun, bool) {
	for _, r := range p.Runs {
		if strings.HasPrefix(r.Text, prefix) {
			return r, true
		}
	}
	return TextRun{}, false
}

// Document is an open view over PDF bytes. Close releases them.
type Document struct {
	mu     sync.Mutex
	data   []byte
	reader *pdf.Reader
}

func Open(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrInvalidDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if reader.NumPage() < 1 {
		return nil, fmt.Errorf("%w: no pages", ErrInvalidDocument)
	}

	return &Document{data: data, reader: reader}, nil
}

// NumPages returns 0 once the document is closed.
func (d *Document) NumPages() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// Page interprets page number (1-based).
func (d *Document) Page(number int) (page *Page, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reader == nil {
		return nil, ErrClosed
	}
	if number < 1 || number > d.reader.NumPage() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, number, d.reader.NumPage())
	}

	p := d.reader.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d not found", ErrInvalidDocument, number)
	}

	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("%w: page %d: %v", ErrInvalidDocument, number, r)
		}
	}()

	width, height := mediaBox(p)
	content := p.Content()

	page = &Page{
		Number: number,
		Width:  width,
		Height: height,
		Runs:   groupRuns(content.Text),
	}
	for _, r := range content.Rect {
		page.Rects = append(page.Rects, Rect{
			X:      r.Min.X,
			Y:      r.Min.Y,
			Width:  r.Max.X - r.Min.X,
			Height: r.Max.Y - r.Min.Y,
		})
	}
	return page, nil
}

// PlainText returns the text of every page, one page per line block.
func (d *Document) PlainText() (text string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reader == nil {
		return "", ErrClosed
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrInvalidDocument, r)
		}
	}()

	var sb strings.Builder
	for i := 1; i <= d.reader.NumPage(); i++ {
		p := d.reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		t, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Close drops the document bytes. It is safe to call more than once.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.data = nil
	d.reader = nil
	return nil
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reader == nil
}

// mediaBox walks up the page tree for an inherited MediaBox.
func mediaBox(p pdf.Page) (width, height float64) {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(2).Float64() - box.Index(0).Float64(),
				box.Index(3).Float64() - box.Index(1).Float64()
		}
	}
	return 0, 0
}

func groupRuns(chars []pdf.Text) []TextRun {
	var runs []TextRun
	for _, c := range chars {
		if c.S == "\n" {
			continue
		}
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Font == c.Font && last.Size == c.FontSize && last.Y == c.Y {
				last.Text += c.S
				continue
			}
		}
		runs = append(runs, TextRun{Font: c.Font, Size: c.FontSize, X: c.X, Y: c.Y, Text: c.S})
	}
	return runs
}
