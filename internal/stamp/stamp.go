// Package stamp draws the fixed "DIGITALLY SIGNED" box onto a page.
package stamp

import (
	"fmt"

	"github.com/BerylCAtieno/pdf-signer/internal/pdf"
)

// Fonts are the two weights the stamp is drawn with.
type Fonts struct {
	Bold    pdf.Font
	Regular pdf.Font
}

type Box struct {
	Width, Height float64
	Margin        float64
	BorderWidth   float64
	BorderColor   pdf.Color
	Background    pdf.Color
}

type Label struct {
	Text  string
	Size  float64
	Color pdf.Color
}

type Rule struct {
	Thickness float64
	Color     pdf.Color
}

// Stamp is the complete, constant layout of the signature box.
type Stamp struct {
	Box     Box
	Header  Label
	Divider Rule
	Date    Label
	Title   Label
	ID      Label

	// Offsets of each element inside the box, measured from its left edge
	// and from its top (header, divider, date, title) or bottom (id).
	Inset       float64
	HeaderDrop  float64
	DividerDrop float64
	DateDrop    float64
	TitleDrop   float64
	IDRise      float64
	DateFormat  string
	IDFormat    string
}

var defaultStamp = Stamp{
	Box: Box{
		Width:       220,
		Height:      90,
		Margin:      20,
		BorderWidth: 2,
		BorderColor: pdf.RGB(0.2, 0.4, 0.8),
		Background:  pdf.RGB(0.95, 0.97, 1),
	},
	Header: Label{
		Text:  "DIGITALLY SIGNED",
		Size:  12,
		Color: pdf.RGB(0.2, 0.4, 0.8),
	},
	Divider: Rule{
		Thickness: 0.5,
		Color:     pdf.RGB(0.2, 0.4, 0.8),
	},
	Date: Label{
		Size:  9,
		Color: pdf.RGB(0.3, 0.3, 0.3),
	},
	Title: Label{
		Text:  "Authorized Signatory",
		Size:  9,
		Color: pdf.RGB(0.3, 0.3, 0.3),
	},
	ID: Label{
		Size:  7,
		Color: pdf.RGB(0.5, 0.5, 0.5),
	},
	Inset:       10,
	HeaderDrop:  22,
	DividerDrop: 28,
	DateDrop:    44,
	TitleDrop:   58,
	IDRise:      10,
	DateFormat:  "Date: %s",
	IDFormat:    "ID: %s",
}

// Default returns the signature stamp layout. The value is shared; callers
// must not modify it.
func Default() *Stamp {
	return &defaultStamp
}

// Bounds returns the lower-left corner of the box on a page of the given
// width. The box always sits in the bottom-right corner; on pages narrower
// than Width+2*Margin x is negative.
func (s *Stamp) Bounds(pageWidth float64) (x, y float64) {
	return pageWidth - s.Box.Width - s.Box.Margin, s.Box.Margin
}

// Render draws the box, header, divider, date line, signatory caption and
// id line onto page.
func (s *Stamp) Render(page pdf.Page, fonts Fonts, signatureDate, signatureID string) {
	width, _ := page.Size()
	x, y := s.Bounds(width)
	top := y + s.Box.Height

	page.DrawRectangle(pdf.RectangleOptions{
		X:           x,
		Y:           y,
		Width:       s.Box.Width,
		Height:      s.Box.Height,
		Color:       s.Box.Background,
		BorderColor: s.Box.BorderColor,
		BorderWidth: s.Box.BorderWidth,
	})

	page.DrawText(s.Header.Text, pdf.TextOptions{
		X:     x + s.Inset,
		Y:     top - s.HeaderDrop,
		Size:  s.Header.Size,
		Font:  fonts.Bold,
		Color: s.Header.Color,
	})

	page.DrawLine(pdf.LineOptions{
		Start:     pdf.Point{X: x + s.Inset, Y: top - s.DividerDrop},
		End:       pdf.Point{X: x + s.Box.Width - s.Inset, Y: top - s.DividerDrop},
		Thickness: s.Divider.Thickness,
		Color:     s.Divider.Color,
	})

	page.DrawText(fmt.Sprintf(s.DateFormat, signatureDate), pdf.TextOptions{
		X:     x + s.Inset,
		Y:     top - s.DateDrop,
		Size:  s.Date.Size,
		Font:  fonts.Regular,
		Color: s.Date.Color,
	})

	page.DrawText(s.Title.Text, pdf.TextOptions{
		X:     x + s.Inset,
		Y:     top - s.TitleDrop,
		Size:  s.Title.Size,
		Font:  fonts.Regular,
		Color: s.Title.Color,
	})

	page.DrawText(fmt.Sprintf(s.IDFormat, signatureID), pdf.TextOptions{
		X:     x + s.Inset,
		Y:     y + s.IDRise,
		Size:  s.ID.Size,
		Font:  fonts.Regular,
		Color: s.ID.Color,
	})
}
