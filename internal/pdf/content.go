package pdf

import (
	"bytes"
	"strconv"
	"strings"
)

// contentBuilder accumulates PDF content stream operators for one page.
type contentBuilder struct {
	buf bytes.Buffer
}

func (c *contentBuilder) Len() int {
	return c.buf.Len()
}

func (c *contentBuilder) Bytes() []byte {
	return c.buf.Bytes()
}

func (c *contentBuilder) op(operator string, operands ...string) {
	for _, o := range operands {
		c.buf.WriteString(o)
		c.buf.WriteByte(' ')
	}
	c.buf.WriteString(operator)
	c.buf.WriteByte('\n')
}

func (c *contentBuilder) rectangle(o RectangleOptions) {
	c.op("q")
	c.op("rg", colorOperands(o.Color)...)
	if o.BorderWidth > 0 {
		c.op("RG", colorOperands(o.BorderColor)...)
		c.op("w", num(o.BorderWidth))
	}
	c.op("re", num(o.X), num(o.Y), num(o.Width), num(o.Height))
	if o.BorderWidth > 0 {
		// fill, then stroke
		c.op("B")
	} else {
		c.op("f")
	}
	c.op("Q")
}

func (c *contentBuilder) line(o LineOptions) {
	c.op("q")
	c.op("RG", colorOperands(o.Color)...)
	c.op("w", num(o.Thickness))
	c.op("m", num(o.Start.X), num(o.Start.Y))
	c.op("l", num(o.End.X), num(o.End.Y))
	c.op("S")
	c.op("Q")
}

func (c *contentBuilder) text(resource, s string, o TextOptions) {
	c.op("q")
	c.op("BT")
	c.op("rg", colorOperands(o.Color)...)
	c.op("Tf", "/"+resource, num(o.Size))
	c.op("Tm", "1", "0", "0", "1", num(o.X), num(o.Y))
	c.op("Tj", literal(s))
	c.op("ET")
	c.op("Q")
}

func colorOperands(col Color) []string {
	return []string{num(col.R), num(col.G), num(col.B)}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`, "\n", `\n`)

// literal encodes s as a PDF literal string. Standard fonts are registered
// with WinAnsiEncoding, so runes outside Latin-1 are replaced with '?'.
func literal(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		b.WriteByte(byte(r))
	}
	return "(" + literalEscaper.Replace(b.String()) + ")"
}
