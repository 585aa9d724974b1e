// Package theme holds the fixed catalogue of card themes. A theme is a set of
// structured style descriptors; Stylesheet maps them to CSS for the public
// card page, so the catalogue itself knows nothing about the renderer.
package theme

import (
	"errors"
	"fmt"
)

// DefaultID is the id of the first catalogue entry.
const DefaultID = "modern-blue"

// Fill is a solid color or a gradient. Via is optional; a Fill with only From
// set is solid.
type Fill struct {
	From string `json:"from"`
	Via  string `json:"via,omitempty"`
	To   string `json:"to,omitempty"`
}

func (f Fill) IsZero() bool { return f.From == "" }

// Style is one renderable element. Empty attributes are not emitted.
type Style struct {
	Background Fill   `json:"background"`
	Text       string `json:"text,omitempty"`
	Border     string `json:"border,omitempty"`
	Radius     string `json:"radius,omitempty"`
	Padding    string `json:"padding,omitempty"`
	FontSize   string `json:"font_size,omitempty"`
	FontWeight string `json:"font_weight,omitempty"`
	Shadow     string `json:"shadow,omitempty"`
	Height     string `json:"height,omitempty"`
}

// Interactive is an element with a hover state.
type Interactive struct {
	Base  Style `json:"base"`
	Hover Style `json:"hover"`
}

// Preview are the swatches shown in the theme picker.
type Preview struct {
	HeaderGradient Fill   `json:"header_gradient"`
	Background     Fill   `json:"background"`
	CardBackground string `json:"card_background"`
	Accent         Fill   `json:"accent"`
	Text           string `json:"text"`
}

type Styles struct {
	PageBackground Style       `json:"page_background"`
	CardContainer  Style       `json:"card_container"`
	Header         Style       `json:"header"`
	Avatar         Style       `json:"avatar"`
	AvatarFallback Style       `json:"avatar_fallback"`
	Title          Style       `json:"title"`
	Subtitle       Style       `json:"subtitle"`
	BioContainer   Style       `json:"bio_container"`
	BioText        Style       `json:"bio_text"`
	ContactItem    Interactive `json:"contact_item"`
	ContactIcon    Interactive `json:"contact_icon"`
	ContactLabel   Style       `json:"contact_label"`
	ContactValue   Style       `json:"contact_value"`
	SocialButton   Interactive `json:"social_button"`
	ActionButton   Interactive `json:"action_button"`
	QRContainer    Style       `json:"qr_container"`
}

type Theme struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Preview     Preview `json:"preview"`
	Styles      Styles  `json:"styles"`
}

// Validate reports every token a renderer needs that the theme leaves empty.
func (t Theme) Validate() error {
	var errs []error
	need := func(ok bool, name string) {
		if !ok {
			errs = append(errs, fmt.Errorf("theme %q: %s is empty", t.ID, name))
		}
	}

	need(t.ID != "", "id")
	need(t.Name != "", "name")
	need(t.Description != "", "description")

	p := t.Preview
	need(!p.HeaderGradient.IsZero(), "preview.header_gradient")
	need(!p.Background.IsZero(), "preview.background")
	need(p.CardBackground != "", "preview.card_background")
	need(!p.Accent.IsZero(), "preview.accent")
	need(p.Text != "", "preview.text")

	s := t.Styles
	need(!s.PageBackground.Background.IsZero(), "styles.page_background.background")
	need(!s.CardContainer.Background.IsZero(), "styles.card_container.background")
	need(s.CardContainer.Radius != "", "styles.card_container.radius")
	need(s.Header.Height != "", "styles.header.height")
	need(s.Avatar.Border != "", "styles.avatar.border")
	need(!s.AvatarFallback.Background.IsZero(), "styles.avatar_fallback.background")
	need(s.AvatarFallback.Text != "", "styles.avatar_fallback.text")
	need(s.Title.Text != "" && s.Title.FontSize != "", "styles.title")
	need(s.Subtitle.Text != "", "styles.subtitle.text")
	need(s.BioContainer.Padding != "", "styles.bio_container.padding")
	need(s.BioText.Text != "", "styles.bio_text.text")
	need(!s.ContactItem.Base.Background.IsZero(), "styles.contact_item.base.background")
	need(!s.ContactItem.Hover.Background.IsZero() || s.ContactItem.Hover.Border != "", "styles.contact_item.hover")
	need(!s.ContactIcon.Base.Background.IsZero(), "styles.contact_icon.base.background")
	need(s.ContactLabel.Text != "", "styles.contact_label.text")
	need(s.ContactValue.Text != "", "styles.contact_value.text")
	need(!s.SocialButton.Base.Background.IsZero(), "styles.social_button.base.background")
	need(!s.ActionButton.Base.Background.IsZero() && s.ActionButton.Base.Text != "", "styles.action_button.base")
	need(!s.ActionButton.Hover.Background.IsZero(), "styles.action_button.hover.background")
	need(s.QRContainer.Padding != "", "styles.qr_container.padding")

	return errors.Join(errs...)
}

// All returns the catalogue in display order.
func All() []Theme {
	out := make([]Theme, len(catalogue))
	copy(out, catalogue)
	return out
}

// ByID returns the theme with the given id, or the first catalogue entry when
// the id is empty or unknown.
func ByID(id string) Theme {
	for _, t := range catalogue {
		if t.ID == id {
			return t
		}
	}
	return catalogue[0]
}

// Known reports whether id names a catalogue entry.
func Known(id string) bool {
	for _, t := range catalogue {
		if t.ID == id {
			return true
		}
	}
	return false
}
