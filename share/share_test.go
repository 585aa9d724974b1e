package share

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardhub/models"
)

func card() *models.BusinessCard {
	return &models.BusinessCard{FullName: "Jane Doe", Title: "CTO", Company: "Acme"}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Check out Jane Doe's business card - CTO at Acme", Text(card()))
	assert.Equal(t, "Check out Jane Doe's business card", Text(&models.BusinessCard{FullName: "Jane Doe"}))
}

func TestURL(t *testing.T) {
	const cardURL = "https://cards.example/c/jane-doe"
	enc := "https%3A%2F%2Fcards.example%2Fc%2Fjane-doe"
	text := "Check%20out%20Jane%20Doe%27s%20business%20card%20-%20CTO%20at%20Acme"

	tests := []struct {
		platform string
		want     string
	}{
		{"twitter", "https://twitter.com/intent/tweet?text=" + text + "&url=" + enc},
		{"facebook", "https://www.facebook.com/sharer/sharer.php?u=" + enc},
		{"linkedin", "https://www.linkedin.com/sharing/share-offsite/?url=" + enc},
		{"whatsapp", "https://wa.me/?text=" + text + "%20" + enc},
		{"copy", cardURL},
		{"", cardURL},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.platform, card(), cardURL))
		})
	}
}

func TestURL_Email(t *testing.T) {
	got := URL("email", card(), "https://cards.example/c/jane-doe")
	assert.Equal(t,
		"mailto:?subject=Business%20Card%3A%20Jane%20Doe&body="+
			"Check%20out%20Jane%20Doe%27s%20business%20card%20-%20CTO%20at%20Acme"+
			"%0A%0AView%20their%20business%20card%20here%3A%20https%3A%2F%2Fcards.example%2Fc%2Fjane-doe",
		got)
}

func TestAll(t *testing.T) {
	links := All(card(), "https://cards.example/c/jane-doe")
	assert.Len(t, links, len(Platforms))
	for _, p := range Platforms {
		assert.NotEmpty(t, links[p])
	}
}
