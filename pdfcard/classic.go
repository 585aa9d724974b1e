package pdfcard

import (
	"strings"

	"cardhub/vcard"
)

var (
	classicPaper  = rgb{255, 255, 255}
	classicBorder = rgb{226, 232, 240}
	classicInk    = rgb{15, 23, 42}
	classicAccent = rgb{59, 130, 246}
	classicMuted  = rgb{71, 85, 105}
	classicSoft   = rgb{100, 116, 139}
	classicFaint  = rgb{148, 163, 184}
)

const (
	classicBudget = 36
	classicQR     = 26.0
)

var classic = Layout{
	ID:          "classic",
	Name:        "Classic Business",
	Description: "Traditional business card layout with elegant typography",
	Front:       classicFront,
	Back:        classicBack,
}

func classicFrame(p *Page) {
	p.Fill(classicPaper, 0, 0, p.W, p.H)
	p.Frame(classicBorder, 0.5, 2, 2, p.W-4, p.H-4)
}

func classicFront(p *Page, c *Card) {
	classicFrame(p)

	first, last := splitName(c.FullName)
	if first == "" {
		first, last = last, ""
	}
	y := 12.0

	p.Font("B", 16, classicInk)
	p.Center(Truncate(strings.ToUpper(first), 22), y)
	y += 7
	if last != "" {
		p.Font("B", 13, classicInk)
		p.Center(Truncate(strings.ToUpper(last), 24), y)
	}
	y += 3
	p.Line(classicAccent, 1, 30, y, p.W-30, y)
	y += 6

	if c.Title != "" {
		p.Font("", 8, classicMuted)
		p.Center(Truncate(strings.ToUpper(c.Title), classicBudget), y)
		y += 4
	}
	if c.Company != "" {
		p.Font("B", 8, classicMuted)
		p.Center(Truncate(strings.ToUpper(c.Company), classicBudget), y)
		y += 5
	} else {
		y += 2
	}

	p.Font("", 7, classicSoft)
	if c.Address != "" {
		street, rest, _ := strings.Cut(c.Address, ",")
		p.Center(Truncate(strings.ToUpper(strings.TrimSpace(street)), classicBudget+6), y)
		y += 3.5
		if rest = strings.TrimSpace(rest); rest != "" {
			p.Center(Truncate(strings.ToUpper(rest), classicBudget+6), y)
			y += 4.5
		} else {
			y += 1
		}
	}
	if c.Phone != "" {
		p.Center(c.Phone, y)
		y += 4
	}
	if c.Website != "" {
		p.Center(Truncate(strings.ToUpper(c.Website), classicBudget+6), y)
	}
}

func classicBack(p *Page, c *Card) {
	p.AddPage()
	classicFrame(p)

	p.Font("B", 9, classicInk)
	p.Center("CONTACT INFORMATION", 8)
	p.Line(classicAccent, 0.5, 30, 10.5, p.W-30, 10.5)

	y := 13.0
	p.Image(c.QR, (p.W-classicQR)/2, y, classicQR, classicQR)

	p.Font("", 7, classicSoft)
	p.Center("SCAN TO CONNECT", y+classicQR+4)

	website := c.Website
	if website == "" {
		website = "yourwebsite.com"
	}
	email := c.Email
	if email == "" {
		email = "email@example.com"
	}

	p.Font("", 6, classicFaint)
	p.Center("VISIT: "+Truncate(website, classicBudget), p.H-7)
	p.Center("EMAIL: "+Truncate(email, classicBudget), p.H-4)
}

// splitName uses the same first/last split as the vCard export.
func splitName(full string) (first, last string) {
	return vcard.SplitName(full)
}
