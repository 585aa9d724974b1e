package site

import (
	"bytes"
	"embed"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"cardhub/models"
)

//go:embed views/*.html
var views embed.FS

var templates = template.Must(template.ParseFS(views, "views/*.html"))

// markdown renderer for card bios; raw HTML in the source is dropped
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

func renderMarkdown(content string) template.HTML {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}

type contactRow struct {
	Icon     string
	Label    string
	Value    string
	Href     string
	External bool
}

// contactRows lists the clickable contact entries of a card. Every link goes
// through the click tracker.
func contactRows(card *models.BusinessCard, base string) []contactRow {
	var rows []contactRow

	if card.Email != "" {
		rows = append(rows, contactRow{Icon: "✉", Label: "Email", Value: card.Email, Href: base + "/out/email"})
	}
	for i, e := range card.Emails {
		if e.Value == "" || e.Value == card.Email {
			continue
		}
		rows = append(rows, contactRow{
			Icon:  "✉",
			Label: entryLabel("Email", e.Type),
			Value: e.Value,
			Href:  base + "/out/email?i=" + strconv.Itoa(i),
		})
	}

	if card.Phone != "" {
		rows = append(rows, contactRow{Icon: "☎", Label: "Phone", Value: card.Phone, Href: base + "/out/phone"})
	}
	for i, p := range card.Phones {
		if p.Value == "" || p.Value == card.Phone {
			continue
		}
		rows = append(rows, contactRow{
			Icon:  "☎",
			Label: entryLabel("Phone", p.Type),
			Value: p.Value,
			Href:  base + "/out/phone?i=" + strconv.Itoa(i),
		})
	}

	if card.Website != "" {
		rows = append(rows, contactRow{
			Icon:     "↗",
			Label:    "Website",
			Value:    card.Website,
			Href:     base + "/out/website",
			External: true,
		})
	}
	return rows
}

func entryLabel(kind, typ string) string {
	if typ == "" {
		return kind
	}
	r := []rune(typ)
	r[0] = unicode.ToUpper(r[0])
	return kind + " (" + string(r) + ")"
}

// initials is shown in place of a missing avatar.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(part)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func websiteHref(website string) string {
	lower := strings.ToLower(website)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return website
	}
	return "https://" + website
}
