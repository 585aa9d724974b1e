package theme

// palette is the handful of decisions that differ between themes. build
// expands it into a full Theme.
type palette struct {
	id, name, description string

	page     Fill
	header   Fill
	headerH  string
	card     string
	border   string // card container border, optional
	radius   string
	shadow   string
	accent   Fill
	accentFg string
	accentHv Fill

	text, muted, label string
	titleSize          string
	titleWeight        string

	surface, surfaceHv, surfaceBorder string
	iconBg, iconHv                    string
	avatarBorder                      string
}

const (
	shadowXL  = "0 20px 25px -5px rgba(0,0,0,.1), 0 8px 10px -6px rgba(0,0,0,.1)"
	shadow2XL = "0 25px 50px -12px rgba(0,0,0,.25)"
)

func solid(c string) Fill { return Fill{From: c} }

func gradient(from, to string) Fill { return Fill{From: from, To: to} }

func build(p palette) Theme {
	borderOf := func(c string) string {
		if c == "" {
			return ""
		}
		return "1px solid " + c
	}

	return Theme{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Preview: Preview{
			HeaderGradient: p.header,
			Background:     p.page,
			CardBackground: p.card,
			Accent:         p.accent,
			Text:           p.text,
		},
		Styles: Styles{
			PageBackground: Style{Background: p.page},
			CardContainer: Style{
				Background: solid(p.card),
				Border:     borderOf(p.border),
				Radius:     p.radius,
				Shadow:     p.shadow,
			},
			Header: Style{Background: p.header, Height: p.headerH},
			Avatar: Style{
				Border: "4px solid " + p.avatarBorder,
				Radius: "9999px",
				Shadow: p.shadow,
			},
			AvatarFallback: Style{
				Background: gradient(p.accent.From, p.accentHv.From),
				Text:       p.accentFg,
				Border:     "4px solid " + p.avatarBorder,
				Radius:     "9999px",
				FontSize:   "2.25rem",
				FontWeight: "700",
			},
			Title:    Style{Text: p.text, FontSize: p.titleSize, FontWeight: p.titleWeight},
			Subtitle: Style{Text: p.muted, FontSize: "1.25rem"},
			BioContainer: Style{
				Background: solid(p.surface),
				Border:     borderOf(p.surfaceBorder),
				Radius:     "0.75rem",
				Padding:    "1.5rem",
			},
			BioText: Style{Text: p.muted},
			ContactItem: Interactive{
				Base: Style{
					Background: solid(p.surface),
					Border:     borderOf(p.surfaceBorder),
					Radius:     "0.75rem",
					Padding:    "1rem",
				},
				Hover: Style{Background: solid(p.surfaceHv)},
			},
			ContactIcon: Interactive{
				Base:  Style{Background: solid(p.iconBg), Text: p.accent.From, Radius: "0.5rem", Height: "3rem"},
				Hover: Style{Background: solid(p.iconHv)},
			},
			ContactLabel: Style{Text: p.label, FontSize: "0.75rem", FontWeight: "500"},
			ContactValue: Style{Text: p.text},
			SocialButton: Interactive{
				Base: Style{
					Background: solid(p.surface),
					Text:       p.text,
					Border:     borderOf(p.surfaceBorder),
					Radius:     "0.5rem",
					Padding:    "0.75rem 1rem",
				},
				Hover: Style{Background: solid(p.surfaceHv)},
			},
			ActionButton: Interactive{
				Base: Style{
					Background: p.accent,
					Text:       p.accentFg,
					Radius:     "0.75rem",
					Padding:    "1rem 1.5rem",
					FontWeight: "500",
				},
				Hover: Style{Background: p.accentHv},
			},
			QRContainer: Style{
				Background: solid(p.surface),
				Border:     borderOf(p.surfaceBorder),
				Radius:     "0.75rem",
				Padding:    "2rem",
			},
		},
	}
}

var catalogue = []Theme{
	build(palette{
		id: "modern-blue", name: "Modern Blue",
		description: "Clean and professional with blue accents",
		page:        gradient("#eff6ff", "#f1f5f9"),
		header:      gradient("#2563eb", "#1d4ed8"), headerH: "8rem",
		card: "#ffffff", radius: "1rem", shadow: shadowXL,
		accent: solid("#2563eb"), accentFg: "#ffffff", accentHv: solid("#1d4ed8"),
		text: "#0f172a", muted: "#475569", label: "#64748b",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "#f8fafc", surfaceHv: "#f1f5f9", surfaceBorder: "#e2e8f0",
		iconBg: "#dbeafe", iconHv: "#bfdbfe", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "elegant-dark", name: "Elegant Dark",
		description: "Sophisticated dark theme with gold accents",
		page:        gradient("#0f172a", "#1e293b"),
		header:      gradient("#1e293b", "#0f172a"), headerH: "8rem",
		card: "#1e293b", border: "#334155", radius: "1rem", shadow: shadow2XL,
		accent: solid("#f59e0b"), accentFg: "#0f172a", accentHv: solid("#d97706"),
		text: "#ffffff", muted: "#cbd5e1", label: "#94a3b8",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "rgba(51,65,85,.5)", surfaceHv: "#334155", surfaceBorder: "#475569",
		iconBg: "rgba(245,158,11,.2)", iconHv: "rgba(245,158,11,.3)", avatarBorder: "#f59e0b",
	}),
	build(palette{
		id: "minimalist", name: "Minimalist",
		description: "Clean and simple with maximum whitespace",
		page:        solid("#ffffff"),
		header:      gradient("#ffffff", "#f8fafc"), headerH: "5rem",
		card: "#ffffff", border: "#e2e8f0", radius: "0", shadow: "none",
		accent: solid("#0f172a"), accentFg: "#ffffff", accentHv: solid("#334155"),
		text: "#0f172a", muted: "#475569", label: "#94a3b8",
		titleSize: "1.875rem", titleWeight: "300",
		surface: "#ffffff", surfaceHv: "#f8fafc", surfaceBorder: "#e2e8f0",
		iconBg: "#ffffff", iconHv: "#f1f5f9", avatarBorder: "#0f172a",
	}),
	build(palette{
		id: "vibrant-gradient", name: "Vibrant Gradient",
		description: "Bold colors with dynamic gradients",
		page:        gradient("#fff7ed", "#fdf2f8"),
		header:      Fill{From: "#ec4899", Via: "#f43f5e", To: "#f97316"}, headerH: "10rem",
		card: "#ffffff", radius: "1.5rem", shadow: shadow2XL,
		accent: gradient("#ec4899", "#f97316"), accentFg: "#ffffff", accentHv: gradient("#db2777", "#ea580c"),
		text: "#0f172a", muted: "#334155", label: "#db2777",
		titleSize: "2.25rem", titleWeight: "900",
		surface: "#fdf2f8", surfaceHv: "#fce7f3", surfaceBorder: "#fbcfe8",
		iconBg: "#fce7f3", iconHv: "#fbcfe8", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "nature-green", name: "Nature Green",
		description: "Fresh and organic with green tones",
		page:        gradient("#ecfdf5", "#f0fdfa"),
		header:      gradient("#059669", "#0f766e"), headerH: "8rem",
		card: "#ffffff", radius: "1rem", shadow: shadowXL,
		accent: solid("#059669"), accentFg: "#ffffff", accentHv: solid("#047857"),
		text: "#0f172a", muted: "#475569", label: "#64748b",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "#f0fdf4", surfaceHv: "#dcfce7", surfaceBorder: "#bbf7d0",
		iconBg: "#d1fae5", iconHv: "#a7f3d0", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "corporate-navy", name: "Corporate Navy",
		description: "Professional navy blue for business",
		page:        gradient("#f1f5f9", "#eff6ff"),
		header:      gradient("#1e293b", "#1e3a8a"), headerH: "8rem",
		card: "#ffffff", radius: "0.75rem", shadow: shadowXL,
		accent: solid("#1e3a8a"), accentFg: "#ffffff", accentHv: solid("#1e40af"),
		text: "#0f172a", muted: "#475569", label: "#64748b",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "#f8fafc", surfaceHv: "#f1f5f9", surfaceBorder: "#e2e8f0",
		iconBg: "#dbeafe", iconHv: "#bfdbfe", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "sunset-warm", name: "Sunset Warm",
		description: "Warm sunset colors with orange and red",
		page:        gradient("#fff7ed", "#fef2f2"),
		header:      gradient("#f97316", "#dc2626"), headerH: "8rem",
		card: "#ffffff", radius: "1rem", shadow: shadowXL,
		accent: solid("#f97316"), accentFg: "#ffffff", accentHv: solid("#ea580c"),
		text: "#0f172a", muted: "#475569", label: "#64748b",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "#fff7ed", surfaceHv: "#ffedd5", surfaceBorder: "#fed7aa",
		iconBg: "#ffedd5", iconHv: "#fed7aa", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "royal-purple", name: "Royal Purple",
		description: "Luxurious purple for creative professionals",
		page:        gradient("#f5f3ff", "#fdf4ff"),
		header:      gradient("#7c3aed", "#a21caf"), headerH: "8rem",
		card: "#ffffff", radius: "1rem", shadow: shadowXL,
		accent: solid("#7c3aed"), accentFg: "#ffffff", accentHv: solid("#6d28d9"),
		text: "#0f172a", muted: "#475569", label: "#64748b",
		titleSize: "2.25rem", titleWeight: "700",
		surface: "#faf5ff", surfaceHv: "#f3e8ff", surfaceBorder: "#e9d5ff",
		iconBg: "#ede9fe", iconHv: "#ddd6fe", avatarBorder: "#ffffff",
	}),
	build(palette{
		id: "dot-dark", name: "Dot Dark",
		description: "Minimal dark profile card",
		page:        gradient("#000000", "#171717"),
		header:      gradient("#171717", "#262626"), headerH: "5rem",
		card: "#171717", border: "#262626", radius: "1.5rem", shadow: shadow2XL,
		accent: solid("#262626"), accentFg: "#ffffff", accentHv: solid("#404040"),
		text: "#ffffff", muted: "#a3a3a3", label: "#737373",
		titleSize: "1.5rem", titleWeight: "600",
		surface: "#262626", surfaceHv: "#404040", surfaceBorder: "#404040",
		iconBg: "#404040", iconHv: "#525252", avatarBorder: "#262626",
	}),
}
