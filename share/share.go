// Package share builds links for posting a card to social platforms.
package share

import (
	"net/url"
	"strings"

	"cardhub/models"
)

var Platforms = []string{"twitter", "facebook", "linkedin", "whatsapp", "email"}

// Text is the sentence posted alongside the card link.
func Text(card *models.BusinessCard) string {
	var b strings.Builder
	b.WriteString("Check out ")
	b.WriteString(card.FullName)
	b.WriteString("'s business card")
	if card.Title != "" {
		b.WriteString(" - " + card.Title)
	}
	if card.Company != "" {
		b.WriteString(" at " + card.Company)
	}
	return b.String()
}

// URL returns the share link for platform. Unknown platforms get the card URL
// itself.
func URL(platform string, card *models.BusinessCard, cardURL string) string {
	text := escape(Text(card))
	link := escape(cardURL)

	switch platform {
	case "twitter":
		return "https://twitter.com/intent/tweet?text=" + text + "&url=" + link
	case "facebook":
		return "https://www.facebook.com/sharer/sharer.php?u=" + link
	case "linkedin":
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + link
	case "whatsapp":
		return "https://wa.me/?text=" + text + "%20" + link
	case "email":
		subject := escape("Business Card: " + card.FullName)
		body := escape(Text(card) + "\n\nView their business card here: " + cardURL)
		return "mailto:?subject=" + subject + "&body=" + body
	default:
		return cardURL
	}
}

// All returns the share link for every platform.
func All(card *models.BusinessCard, cardURL string) map[string]string {
	out := make(map[string]string, len(Platforms))
	for _, p := range Platforms {
		out[p] = URL(p, card, cardURL)
	}
	return out
}

// escape percent-encodes like a URI component: spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
