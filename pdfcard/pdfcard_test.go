package pdfcard

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardhub/models"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	return f.data, f.err
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fullCard() *models.BusinessCard {
	return &models.BusinessCard{
		Slug:      "jane-doe",
		FullName:  "Jane Marie Doe",
		Title:     "Principal Engineer and Occasional Conference Speaker",
		Company:   "Acme Widgets International",
		Email:     "jane@acme.example",
		Phone:     "+1 (555) 010-2030",
		Website:   "https://jane.example/portfolio",
		Address:   "1 Main St, Springfield, IL 62701",
		AvatarURL: "https://img.example/jane.png",
	}
}

func qrURL(data string) string { return "https://qr.example/?data=" + data }

func TestRender_AllThemesProduceTwoPages(t *testing.T) {
	fetcher := &fakeFetcher{data: testPNG(t)}
	gen := NewGenerator(fetcher, qrURL)

	for _, l := range Layouts() {
		t.Run(l.ID, func(t *testing.T) {
			doc, err := gen.Render(context.Background(), fullCard(), l.ID, "https://cards.example/c/jane-doe")
			require.NoError(t, err)
			assert.Equal(t, 2, doc.PageCount())

			w, h := doc.GetPageSize()
			assert.InDelta(t, Width, w, 0.01)
			assert.InDelta(t, Height, h, 0.01)
		})
	}
}

func TestRender_MinimalCardOnEveryTheme(t *testing.T) {
	gen := NewGenerator(nil, nil)
	card := &models.BusinessCard{FullName: "Jane"}

	for _, l := range Layouts() {
		doc, err := gen.Render(context.Background(), card, l.ID, "")
		require.NoError(t, err, l.ID)
		assert.Equal(t, 2, doc.PageCount(), l.ID)
	}
}

func TestRender_NonLatinTextStillRenders(t *testing.T) {
	gen := NewGenerator(nil, nil)
	card := &models.BusinessCard{
		FullName: "Анна Петрова",
		Title:    "工程师",
		Company:  "Ærøskøbing Café",
		Email:    "anna@example.com",
	}

	for _, l := range Layouts() {
		out, err := gen.Generate(context.Background(), card, l.ID, "https://cards.example/c/anna")
		require.NoError(t, err, l.ID)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), l.ID)
	}
}

func TestRender_FetchesQRAndAvatar(t *testing.T) {
	fetcher := &fakeFetcher{data: testPNG(t)}
	gen := NewGenerator(fetcher, qrURL)

	_, err := gen.Render(context.Background(), fullCard(), "modern", "https://cards.example/c/jane-doe")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://qr.example/?data=https://cards.example/c/jane-doe",
		"https://img.example/jane.png",
	}, fetcher.calls)
}

func TestRender_ImageFailuresAreNotFatal(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
	}{
		{"fetch error", &fakeFetcher{err: errors.New("connection refused")}},
		{"not an image", &fakeFetcher{data: []byte("<html>nope</html>")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(tt.fetcher, qrURL)
			doc, err := gen.Render(context.Background(), fullCard(), "elegant", "https://cards.example/c/jane-doe")
			require.NoError(t, err)
			assert.Equal(t, 2, doc.PageCount())
		})
	}
}

func TestGenerate_WritesPDF(t *testing.T) {
	gen := NewGenerator(&fakeFetcher{data: testPNG(t)}, qrURL)

	out, err := gen.Generate(context.Background(), fullCard(), "classic", "https://cards.example/c/jane-doe")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestLayoutByID(t *testing.T) {
	assert.Equal(t, "elegant", LayoutByID("elegant").ID)
	assert.Equal(t, "modern", LayoutByID("").ID)
	assert.Equal(t, "modern", LayoutByID("neon").ID)
}

func TestLayouts(t *testing.T) {
	ids := make([]string, 0)
	for _, l := range Layouts() {
		ids = append(ids, l.ID)
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Description)
	}
	assert.Equal(t, []string{"modern", "classic", "elegant", "minimal"}, ids)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "héllo w...", Truncate("héllo wörld!", 10))
}

func TestNewImage_RejectsGarbage(t *testing.T) {
	_, err := NewImage("x", []byte("garbage"))
	assert.Error(t, err)

	img, err := NewImage("ok", testPNG(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img.data, []byte("\x89PNG")))
}
