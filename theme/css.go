package theme

import (
	"fmt"
	"html/template"
	"strings"
)

// CSS renders the fill as a background value.
func (f Fill) CSS() string {
	switch {
	case f.From == "":
		return ""
	case f.To == "":
		return f.From
	case f.Via != "":
		return fmt.Sprintf("linear-gradient(135deg, %s, %s, %s)", f.From, f.Via, f.To)
	default:
		return fmt.Sprintf("linear-gradient(135deg, %s, %s)", f.From, f.To)
	}
}

// Declarations renders the non-empty attributes as CSS declarations.
func (s Style) Declarations() string {
	var b strings.Builder
	decl := func(prop, val string) {
		if val != "" {
			fmt.Fprintf(&b, "%s:%s;", prop, val)
		}
	}
	decl("background", s.Background.CSS())
	decl("color", s.Text)
	decl("border", s.Border)
	decl("border-radius", s.Radius)
	decl("padding", s.Padding)
	decl("font-size", s.FontSize)
	decl("font-weight", s.FontWeight)
	decl("box-shadow", s.Shadow)
	decl("height", s.Height)
	return b.String()
}

// Stylesheet maps a theme onto the class names used by the public card page.
// Catalogue values are constants, so the result is trusted CSS.
func Stylesheet(t Theme) template.CSS {
	s := t.Styles
	rules := []struct {
		selector string
		style    Style
	}{
		{"body", s.PageBackground},
		{".card", s.CardContainer},
		{".card-header", s.Header},
		{".avatar", s.Avatar},
		{".avatar-fallback", s.AvatarFallback},
		{".card-title", s.Title},
		{".card-subtitle", s.Subtitle},
		{".bio", s.BioContainer},
		{".bio-text", s.BioText},
		{".contact-item", s.ContactItem.Base},
		{".contact-item:hover", s.ContactItem.Hover},
		{".contact-icon", s.ContactIcon.Base},
		{".contact-item:hover .contact-icon", s.ContactIcon.Hover},
		{".contact-label", s.ContactLabel},
		{".contact-value", s.ContactValue},
		{".social-button", s.SocialButton.Base},
		{".social-button:hover", s.SocialButton.Hover},
		{".action-button", s.ActionButton.Base},
		{".action-button:hover", s.ActionButton.Hover},
		{".qr", s.QRContainer},
	}

	var b strings.Builder
	for _, r := range rules {
		if d := r.style.Declarations(); d != "" {
			fmt.Fprintf(&b, "%s{%s}\n", r.selector, d)
		}
	}
	return template.CSS(b.String())
}
