package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// US Letter, used when a page carries no resolvable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

func init() {
	// Serverless friendly: never touch os.UserConfigDir().
	api.DisableConfigDir()
}

type pdfcpuEngine struct{}

// NewPDFCPUEngine returns an Engine backed by github.com/pdfcpu/pdfcpu.
func NewPDFCPUEngine() Engine {
	return pdfcpuEngine{}
}

func (pdfcpuEngine) Load(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := api.OptimizeContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrParse)
	}

	return &pdfcpuDocument{ctx: ctx}, nil
}

type pdfcpuDocument struct {
	ctx   *model.Context
	pages []*pdfcpuPage
}

type pdfcpuFont struct {
	name   StandardFont
	indRef types.IndirectRef
}

func (f *pdfcpuFont) Name() StandardFont {
	return f.name
}

func (d *pdfcpuDocument) Pages() (out []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	if d.pages == nil {
		pages := make([]*pdfcpuPage, 0, d.ctx.PageCount)
		for nr := 1; nr <= d.ctx.PageCount; nr++ {
			p, err := d.loadPage(nr)
			if err != nil {
				return nil, err
			}
			pages = append(pages, p)
		}
		d.pages = pages
	}

	out = make([]Page, len(d.pages))
	for i, p := range d.pages {
		out[i] = p
	}
	return out, nil
}

func (d *pdfcpuDocument) loadPage(nr int) (*pdfcpuPage, error) {
	pageDict, _, inherited, err := d.ctx.PageDict(nr, true)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrParse, nr, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("%w: page %d not found", ErrParse, nr)
	}

	p := &pdfcpuPage{
		nr:     nr,
		dict:   pageDict,
		width:  defaultPageWidth,
		height: defaultPageHeight,
		fonts:  map[*pdfcpuFont]string{},
	}
	if inherited != nil && inherited.MediaBox != nil {
		p.width = inherited.MediaBox.Width()
		p.height = inherited.MediaBox.Height()
	}

	fontDict, err := d.pageFontDict(pageDict, inherited)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d resources: %v", ErrParse, nr, err)
	}
	p.fontDict = fontDict

	return p, nil
}

// pageFontDict returns the /Font subdictionary of the page resources,
// creating the Resources and Font entries when missing.
func (d *pdfcpuDocument) pageFontDict(pageDict types.Dict, inherited *model.InheritedPageAttrs) (types.Dict, error) {
	var res types.Dict
	if obj, found := pageDict.Find("Resources"); found {
		r, err := d.ctx.DereferenceDict(obj)
		if err != nil {
			return nil, err
		}
		res = r
	}
	if res == nil {
		if inherited != nil && inherited.Resources != nil {
			res = inherited.Resources
		} else {
			res = types.NewDict()
		}
		pageDict["Resources"] = res
	}

	if obj, found := res.Find("Font"); found {
		fd, err := d.ctx.DereferenceDict(obj)
		if err != nil {
			return nil, err
		}
		if fd != nil {
			return fd, nil
		}
	}
	fd := types.NewDict()
	res["Font"] = fd
	return fd, nil
}

func (d *pdfcpuDocument) EmbedFont(name StandardFont) (Font, error) {
	fontDict := types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name(string(name)),
		"Encoding": types.Name("WinAnsiEncoding"),
	}
	indRef, err := d.ctx.IndRefForNewObject(fontDict)
	if err != nil {
		return nil, fmt.Errorf("embed font %s: %w", name, err)
	}
	return &pdfcpuFont{name: name, indRef: *indRef}, nil
}

func (d *pdfcpuDocument) Save() (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrSerialize, r)
		}
	}()

	for _, p := range d.pages {
		if p.err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrSerialize, p.nr, p.err)
		}
		if p.content.Len() == 0 {
			continue
		}
		if err := d.commit(p); err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrSerialize, p.nr, err)
		}
		p.content = contentBuilder{}
	}

	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// commit wraps the existing page content in q/Q and appends the buffered
// operators as a new content stream. Existing streams are not rewritten.
func (d *pdfcpuDocument) commit(p *pdfcpuPage) error {
	var existing types.Array
	if obj, found := p.dict.Find("Contents"); found && obj != nil {
		switch c := obj.(type) {
		case types.Array:
			existing = c
		case types.IndirectRef:
			target, err := d.ctx.Dereference(c)
			if err != nil {
				return err
			}
			if arr, ok := target.(types.Array); ok {
				existing = arr
			} else {
				existing = types.Array{c}
			}
		default:
			return fmt.Errorf("unexpected /Contents type %T", obj)
		}
	}

	stamp, err := d.newContentStream(p.content.Bytes())
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		p.dict["Contents"] = *stamp
		return nil
	}

	push, err := d.newContentStream([]byte("q\n"))
	if err != nil {
		return err
	}
	pop, err := d.newContentStream([]byte("Q\n"))
	if err != nil {
		return err
	}

	contents := make(types.Array, 0, len(existing)+3)
	contents = append(contents, *push)
	contents = append(contents, existing...)
	contents = append(contents, *pop, *stamp)
	p.dict["Contents"] = contents
	return nil
}

// newContentStream registers an unfiltered stream object holding buf.
func (d *pdfcpuDocument) newContentStream(buf []byte) (*types.IndirectRef, error) {
	length := int64(len(buf))
	sd := types.StreamDict{
		Dict:         types.Dict{"Length": types.Integer(length)},
		StreamLength: &length,
		Content:      buf,
		Raw:          buf,
	}
	return d.ctx.IndRefForNewObject(sd)
}

type pdfcpuPage struct {
	nr            int
	dict          types.Dict
	fontDict      types.Dict
	width, height float64
	fonts         map[*pdfcpuFont]string
	content       contentBuilder
	err           error
}

func (p *pdfcpuPage) Size() (float64, float64) {
	return p.width, p.height
}

func (p *pdfcpuPage) DrawRectangle(opts RectangleOptions) {
	p.content.rectangle(opts)
}

func (p *pdfcpuPage) DrawLine(opts LineOptions) {
	p.content.line(opts)
}

func (p *pdfcpuPage) DrawText(text string, opts TextOptions) {
	name := p.fontResource(opts.Font)
	if name == "" {
		return
	}
	p.content.text(name, text, opts)
}

// fontResource maps a registered font to a resource name on this page,
// picking a key that does not clash with the page's own fonts.
func (p *pdfcpuPage) fontResource(f Font) string {
	pf, ok := f.(*pdfcpuFont)
	if !ok {
		p.err = fmt.Errorf("font %v was not embedded by this document", f)
		return ""
	}
	if name, ok := p.fonts[pf]; ok {
		return name
	}

	var name string
	for i := 1; ; i++ {
		name = fmt.Sprintf("SigF%d", i)
		existing, taken := p.fontDict.Find(name)
		if !taken {
			break
		}
		if ref, ok := existing.(types.IndirectRef); ok && ref.ObjectNumber == pf.indRef.ObjectNumber {
			break
		}
	}
	p.fontDict[name] = pf.indRef
	p.fonts[pf] = name
	return name
}
