package pdfcard

var (
	elegantNight = rgb{30, 41, 59}
	elegantGold  = rgb{251, 191, 36}
	elegantTitle = rgb{226, 232, 240}
	elegantOrg   = rgb{203, 213, 225}
	elegantInk   = rgb{241, 245, 249}
	elegantWhite = rgb{255, 255, 255}
)

const (
	elegantBudget = 42
	elegantQR     = 35.0
)

var elegant = Layout{
	ID:          "elegant",
	Name:        "Elegant Premium",
	Description: "Sophisticated design with gold accents and refined layout",
	Front:       elegantFront,
	Back:        elegantBack,
}

func elegantFrame(p *Page) {
	p.Fill(elegantNight, 0, 0, p.W, p.H)
	p.Frame(elegantGold, 0.8, 3, 3, p.W-6, p.H-6)
}

func elegantFront(p *Page, c *Card) {
	elegantFrame(p)

	y := 14.0
	p.Font("B", 16, elegantGold)
	p.Center(Truncate(c.FullName, 28), y)
	y += 4
	p.Line(elegantGold, 0.3, p.W/2-10, y, p.W/2+10, y)
	y += 5

	if c.Title != "" {
		p.Font("", 10, elegantTitle)
		p.Center(Truncate(c.Title, elegantBudget-6), y)
		y += 5
	}
	if c.Company != "" {
		p.Font("", 9, elegantOrg)
		p.Center(Truncate(c.Company, elegantBudget-4), y)
		y += 7
	} else {
		y += 4
	}

	p.Font("", 8, elegantInk)
	for _, line := range []string{c.Email, c.Phone, c.Website} {
		if line == "" {
			continue
		}
		p.Center(Truncate(line, elegantBudget), y)
		y += 4
	}
}

func elegantBack(p *Page, c *Card) {
	p.AddPage()
	elegantFrame(p)

	x := (p.W - elegantQR) / 2
	y := (p.H-elegantQR)/2 - 3
	p.Fill(elegantWhite, x-2, y-2, elegantQR+4, elegantQR+4)
	p.Image(c.QR, x, y, elegantQR, elegantQR)

	p.Font("", 9, elegantGold)
	p.Center("SCAN TO CONNECT", p.H-6)
}
