// Package vcard serializes a business card as a vCard 3.0 record.
package vcard

import (
	"regexp"
	"strings"

	"cardhub/models"
)

const ContentType = "text/vcard; charset=utf-8"

var (
	nonDigits  = regexp.MustCompile(`\D`)
	whitespace = regexp.MustCompile(`\s+`)
	textEscape = strings.NewReplacer(`\`, `\\`, `,`, `\,`, `;`, `\;`, "\r\n", `\n`, "\n", `\n`)
)

// Generate renders card as CRLF separated vCard lines. Fields the card leaves
// empty produce no line. The output depends only on the card.
func Generate(card *models.BusinessCard) string {
	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}
	add := func(line string) { lines = append(lines, line) }

	if name := strings.TrimSpace(card.FullName); name != "" {
		given, family := SplitName(name)
		add("N:" + esc(family) + ";" + esc(given) + ";;;")
		add("FN:" + esc(name))
	}
	if card.Title != "" {
		add("TITLE:" + esc(card.Title))
	}
	if card.Company != "" {
		add("ORG:" + esc(card.Company))
	}

	if card.Email != "" {
		add("EMAIL;TYPE=INTERNET:" + card.Email)
	}
	for _, e := range card.Emails {
		if e.Value == "" || e.Value == card.Email {
			continue
		}
		add("EMAIL;TYPE=INTERNET" + typeSuffix(e.Type) + ":" + e.Value)
	}

	primaryPhone := nonDigits.ReplaceAllString(card.Phone, "")
	if primaryPhone != "" {
		add("TEL;TYPE=WORK,VOICE:" + primaryPhone)
	}
	for _, p := range card.Phones {
		digits := nonDigits.ReplaceAllString(p.Value, "")
		if digits == "" || digits == primaryPhone {
			continue
		}
		add("TEL;TYPE=" + phoneType(p.Type) + ",VOICE:" + digits)
	}

	if card.Website != "" {
		add("URL:" + card.Website)
	}
	if card.Address != "" {
		street, rest := splitAddress(card.Address)
		add("ADR;TYPE=WORK:;;" + esc(street) + ";" + esc(rest) + ";;;")
	}
	if card.Bio != "" {
		add("NOTE:" + esc(card.Bio))
	}
	if card.AvatarURL != "" {
		add("PHOTO;VALUE=URI:" + card.AvatarURL)
	}
	for _, s := range card.SocialMedia {
		if s.URL == "" {
			continue
		}
		add("X-SOCIALPROFILE;TYPE=" + strings.ToUpper(s.Platform) + ":" + s.URL)
	}

	add("END:VCARD")
	return strings.Join(lines, "\r\n")
}

// Filename is the download name: the full name with whitespace runs replaced
// by underscores, or the slug when there is no name.
func Filename(card *models.BusinessCard) string {
	base := whitespace.ReplaceAllString(strings.TrimSpace(card.FullName), "_")
	if base == "" {
		base = card.Slug
	}
	if base == "" {
		base = "contact"
	}
	return base + ".vcf"
}

// SplitName treats the last word as the family name and the rest as given
// names.
func SplitName(full string) (given, family string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	family = parts[len(parts)-1]
	given = strings.Join(parts[:len(parts)-1], " ")
	return given, family
}

// splitAddress cuts at the first comma: street, then everything else.
func splitAddress(addr string) (street, rest string) {
	street, rest, _ = strings.Cut(addr, ",")
	return strings.TrimSpace(street), strings.TrimSpace(rest)
}

func esc(s string) string {
	return textEscape.Replace(s)
}

func typeSuffix(t string) string {
	t = strings.ToUpper(strings.TrimSpace(t))
	if t == "" {
		return ""
	}
	return "," + t
}

func phoneType(t string) string {
	switch t = strings.ToUpper(strings.TrimSpace(t)); t {
	case "":
		return "WORK"
	case "MOBILE":
		return "CELL"
	default:
		return t
	}
}
