package pdfcard

var (
	modernBlue  = rgb{59, 130, 246}
	modernWhite = rgb{255, 255, 255}
	modernTitle = rgb{100, 116, 139}
	modernOrg   = rgb{148, 163, 184}
	modernInk   = rgb{30, 41, 59}
)

const (
	modernHeader  = 15.0
	modernBudget  = 48
	modernNameMax = 30
	modernQR      = 35.0
)

var modern = Layout{
	ID:          "modern",
	Name:        "Modern Professional",
	Description: "Clean and contemporary design with blue accents",
	Front:       modernFront,
	Back:        modernBack,
}

func modernFront(p *Page, c *Card) {
	p.Fill(modernBlue, 0, 0, p.W, modernHeader)
	p.Fill(modernWhite, 0, modernHeader, p.W, p.H-modernHeader)

	p.Image(c.Avatar, 5, 2.5, 10, 10)

	p.Font("B", 16, modernWhite)
	p.Text(Truncate(c.FullName, modernNameMax), 18, 10)

	y := 22.0
	if c.Title != "" {
		p.Font("", 10, modernTitle)
		p.Text(c.Title, 5, y)
		y += 5
	}
	if c.Company != "" {
		p.Font("", 9, modernOrg)
		p.Text(c.Company, 5, y)
		y += 6
	}

	p.Font("", 8, modernInk)
	for _, line := range []string{c.Email, c.Phone, c.Website} {
		if line == "" {
			continue
		}
		p.Text(Truncate(line, modernBudget), 5, y)
		y += 4
	}
}

func modernBack(p *Page, c *Card) {
	p.AddPage()
	p.Fill(modernBlue, 0, 0, p.W, p.H)

	x := (p.W - modernQR) / 2
	y := (p.H-modernQR)/2 - 5
	p.Fill(modernWhite, x-2, y-2, modernQR+4, modernQR+4)
	p.Image(c.QR, x, y, modernQR, modernQR)

	p.Font("", 9, modernWhite)
	p.Center("Scan to view digital card", p.H-8)
}
