// Package pdf defines the narrow set of PDF capabilities the signer needs:
// load a document, enumerate its pages, embed a standard font, draw
// rectangles, lines and text in bottom-left-origin user space, and save.
//
// The stamping code only talks to these interfaces. NewPDFCPUEngine provides
// the concrete implementation.
package pdf

import "errors"

var (
	// ErrParse is returned when the input bytes are not a readable PDF.
	ErrParse = errors.New("pdf: failed to parse document")
	// ErrSerialize is returned when a mutated document cannot be written back.
	ErrSerialize = errors.New("pdf: failed to serialize document")
)

// StandardFont names one of the 14 standard Type1 fonts every viewer ships with.
type StandardFont string

const (
	Helvetica     StandardFont = "Helvetica"
	HelveticaBold StandardFont = "Helvetica-Bold"
)

// Color is a DeviceRGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB mirrors the rgb() helper PDF libraries usually expose.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Point is a position in PDF user space.
type Point struct {
	X, Y float64
}

type RectangleOptions struct {
	X, Y          float64
	Width, Height float64
	Color         Color
	BorderColor   Color
	BorderWidth   float64
}

type LineOptions struct {
	Start, End Point
	Thickness  float64
	Color      Color
}

type TextOptions struct {
	X, Y  float64
	Size  float64
	Font  Font
	Color Color
}

// Font is a handle to a font that has been registered with a Document.
type Font interface {
	Name() StandardFont
}

// Page is a single page of a loaded document. Draw calls never fail; their
// output is buffered and committed when the owning Document is saved.
type Page interface {
	Size() (width, height float64)
	DrawRectangle(opts RectangleOptions)
	DrawLine(opts LineOptions)
	DrawText(text string, opts TextOptions)
}

// Document is a loaded, mutable PDF.
type Document interface {
	// Pages returns the pages in document order.
	Pages() ([]Page, error)
	EmbedFont(name StandardFont) (Font, error)
	Save() ([]byte, error)
}

// Engine turns raw bytes into a Document.
type Engine interface {
	Load(data []byte) (Document, error)
}
