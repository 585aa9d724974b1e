package pdfcard

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

// Image is a decoded picture re-encoded as an 8-bit PNG, which fpdf embeds
// without surprises regardless of the source format.
type Image struct {
	name string
	data []byte
}

func NewImage(name string, raw []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return &Image{name: name, data: buf.Bytes()}, nil
}

// Page wraps the document with the drawing helpers layouts use.
type Page struct {
	doc  *fpdf.Fpdf
	tr   func(string) string
	W, H float64
}

func newPage(doc *fpdf.Fpdf) *Page {
	return &Page{
		doc: doc,
		tr:  doc.UnicodeTranslatorFromDescriptor(""),
		W:   Width,
		H:   Height,
	}
}

func (p *Page) AddPage() {
	p.doc.AddPage()
}

func (p *Page) Fill(c rgb, x, y, w, h float64) {
	p.doc.SetFillColor(c.r, c.g, c.b)
	p.doc.Rect(x, y, w, h, "F")
}

func (p *Page) Frame(c rgb, width, x, y, w, h float64) {
	p.doc.SetDrawColor(c.r, c.g, c.b)
	p.doc.SetLineWidth(width)
	p.doc.Rect(x, y, w, h, "D")
}

func (p *Page) Line(c rgb, width, x1, y1, x2, y2 float64) {
	p.doc.SetDrawColor(c.r, c.g, c.b)
	p.doc.SetLineWidth(width)
	p.doc.Line(x1, y1, x2, y2)
}

// Font sets family Helvetica with style "", "B" or "I".
func (p *Page) Font(style string, size float64, c rgb) {
	p.doc.SetFont("Helvetica", style, size)
	p.doc.SetTextColor(c.r, c.g, c.b)
}

// Text draws s with its baseline at y.
func (p *Page) Text(s string, x, y float64) {
	if s == "" {
		return
	}
	p.doc.Text(x, y, p.tr(s))
}

// Center draws s horizontally centered on the page.
func (p *Page) Center(s string, y float64) {
	if s == "" {
		return
	}
	s = p.tr(s)
	p.doc.Text((p.W-p.doc.GetStringWidth(s))/2, y, s)
}

// Image draws img into the box. A nil image draws nothing.
func (p *Page) Image(img *Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if p.doc.GetImageInfo(img.name) == nil {
		p.doc.RegisterImageOptionsReader(img.name, opts, bytes.NewReader(img.data))
	}
	p.doc.ImageOptions(img.name, x, y, w, h, false, opts, 0, "")
}
