// Package pdfcard lays out a business card as a two page PDF at the physical
// card size: the front with the card details, the back with a QR code that
// points at the public card page.
//
// Every theme is a pair of layout procedures with its own absolute
// coordinates. Adding a theme means adding a Layout, not branching inside an
// existing one.
//
// Text is set in the core Helvetica font through the cp1252 translator, so
// characters outside Western European Latin (Cyrillic, Greek, CJK and so on)
// print as placeholders. The rest of the card still renders.
package pdfcard

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"cardhub/logging"
	"cardhub/models"
)

const (
	// ISO/IEC 7810 ID-1, in millimetres
	Width  = 85.6
	Height = 53.98

	DefaultTheme = "modern"
)

// ImageFetcher downloads image bytes by URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Card is the input of a layout: the card plus its resolved assets. Missing
// assets are nil and the layout leaves their space empty.
type Card struct {
	*models.BusinessCard
	URL    string
	QR     *Image
	Avatar *Image
}

type Layout struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Front func(p *Page, c *Card) `json:"-"`
	Back  func(p *Page, c *Card) `json:"-"`
}

var layouts = []Layout{modern, classic, elegant, minimal}

// Layouts lists the available themes in display order.
func Layouts() []Layout {
	out := make([]Layout, len(layouts))
	copy(out, layouts)
	return out
}

// LayoutByID returns the named layout, or modern when id is unknown.
func LayoutByID(id string) Layout {
	for _, l := range layouts {
		if l.ID == id {
			return l
		}
	}
	return modern
}

type Generator struct {
	images ImageFetcher
	qrURL  func(data string) string
}

// NewGenerator takes the fetcher for QR and avatar images and the function
// that turns a card URL into a QR image URL.
func NewGenerator(images ImageFetcher, qrURL func(data string) string) *Generator {
	return &Generator{images: images, qrURL: qrURL}
}

// Generate renders the card with the given theme and returns the PDF bytes.
func (g *Generator) Generate(ctx context.Context, card *models.BusinessCard, themeID, cardURL string) ([]byte, error) {
	doc, err := g.Render(ctx, card, themeID, cardURL)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Render lays out both pages and returns the document unserialized.
func (g *Generator) Render(ctx context.Context, card *models.BusinessCard, themeID, cardURL string) (*fpdf.Fpdf, error) {
	layout := LayoutByID(themeID)

	c := &Card{BusinessCard: card, URL: cardURL}
	if g.qrURL != nil && cardURL != "" {
		c.QR = g.fetch(ctx, "qr", g.qrURL(cardURL))
	}
	if card.AvatarURL != "" {
		c.Avatar = g.fetch(ctx, "avatar", card.AvatarURL)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: Width, Ht: Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(card.FullName, true)
	doc.SetCreator("cardhub", true)

	p := newPage(doc)
	p.AddPage()
	layout.Front(p, c)
	layout.Back(p, c)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render %s card: %w", layout.ID, err)
	}
	return doc, nil
}

// fetch downloads and prepares an image. Failures are logged and yield nil.
func (g *Generator) fetch(ctx context.Context, name, url string) *Image {
	if g.images == nil {
		return nil
	}
	data, err := g.images.Fetch(ctx, url)
	if err != nil {
		logging.Warn().Err(err).Str("image", name).Msg("pdf image unavailable")
		return nil
	}
	img, err := NewImage(name, data)
	if err != nil {
		logging.Warn().Err(err).Str("image", name).Msg("pdf image unreadable")
		return nil
	}
	return img
}

// Truncate elides s with "..." once it exceeds max runes.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max <= 3 {
		return s
	}
	return string(r[:max-3]) + "..."
}
