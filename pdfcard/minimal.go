package pdfcard

var (
	minimalPaper = rgb{255, 255, 255}
	minimalInk   = rgb{15, 23, 42}
	minimalTitle = rgb{100, 116, 139}
	minimalOrg   = rgb{148, 163, 184}
	minimalRule  = rgb{226, 232, 240}
	minimalBody  = rgb{71, 85, 105}
)

const (
	minimalBudget = 52
	minimalQR     = 35.0
)

var minimal = Layout{
	ID:          "minimal",
	Name:        "Minimal Clean",
	Description: "Minimalist design focusing on essential information",
	Front:       minimalFront,
	Back:        minimalBack,
}

func minimalFront(p *Page, c *Card) {
	p.Fill(minimalPaper, 0, 0, p.W, p.H)

	y := 18.0
	p.Font("", 14, minimalInk)
	p.Text(Truncate(c.FullName, 34), 10, y)
	y += 6

	if c.Title != "" {
		p.Font("", 9, minimalTitle)
		p.Text(Truncate(c.Title, minimalBudget-8), 10, y)
		y += 5
	}
	if c.Company != "" {
		p.Font("", 8, minimalOrg)
		p.Text(Truncate(c.Company, minimalBudget-4), 10, y)
		y += 5
	} else {
		y += 3
	}

	p.Line(minimalRule, 0.2, 10, y, p.W-10, y)
	y += 4

	p.Font("", 7, minimalBody)
	for _, line := range []string{c.Email, c.Phone, c.Website} {
		if line == "" {
			continue
		}
		p.Text(Truncate(line, minimalBudget), 10, y)
		y += 3.5
	}
}

func minimalBack(p *Page, c *Card) {
	p.AddPage()
	p.Fill(minimalPaper, 0, 0, p.W, p.H)

	y := (p.H-minimalQR)/2 - 3
	p.Image(c.QR, (p.W-minimalQR)/2, y, minimalQR, minimalQR)

	p.Font("", 7, minimalTitle)
	p.Center("scan for digital card", p.H-8)
}
