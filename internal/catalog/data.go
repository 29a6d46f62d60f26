package catalog

// 共享配色组。多个模板允许复用同一组配色。
var (
	professionalColors = []ColorOption{
		{ID: "blue", Name: "Professional Blue", Primary: "#2563eb", Secondary: "#93c5fd"},
		{ID: "teal", Name: "Teal Accent", Primary: "#0d9488", Secondary: "#5eead4"},
		{ID: "purple", Name: "Royal Purple", Primary: "#7e22ce", Secondary: "#d8b4fe"},
		{ID: "gray", Name: "Executive Gray", Primary: "#4b5563", Secondary: "#cbd5e1"},
	}

	creativeColors = []ColorOption{
		{ID: "coral", Name: "Coral Sunset", Primary: "#f43f5e", Secondary: "#fecdd3"},
		{ID: "emerald", Name: "Vibrant Emerald", Primary: "#059669", Secondary: "#6ee7b7"},
		{ID: "amber", Name: "Golden Amber", Primary: "#d97706", Secondary: "#fcd34d"},
		{ID: "indigo", Name: "Deep Indigo", Primary: "#4f46e5", Secondary: "#c7d2fe"},
	}

	minimalColors = []ColorOption{
		{ID: "monochrome", Name: "Monochrome", Primary: "#262626", Secondary: "#e5e5e5"},
		{ID: "light", Name: "Light Minimal", Primary: "#737373", Secondary: "#f5f5f5"},
		{ID: "warm", Name: "Warm Gray", Primary: "#78716c", Secondary: "#f5f5f4"},
		{ID: "cool", Name: "Cool Gray", Primary: "#64748b", Secondary: "#f1f5f9"},
	}
)

func mergeColors(groups ...[]ColorOption) []ColorOption {
	var out []ColorOption
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// templates 是静态模板目录。顺序即展示顺序。
var templates = []Template{
	{
		ID:          "classic",
		Name:        "Classic",
		Description: "A timeless template with a professional look",
		IsPro:       false,
		Colors:      professionalColors,
		Styles:      &Styles{FontFamily: "serif", Spacing: "standard", Layout: "traditional"},
	},
	{
		ID:          "modern",
		Name:        "Modern",
		Description: "Clean and contemporary design",
		IsPro:       false,
		Colors:      mergeColors(professionalColors, minimalColors),
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "spacious", Layout: "modern"},
	},
	{
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Simple and elegant with plenty of white space",
		IsPro:       false,
		Colors:      minimalColors,
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "spacious", Layout: "traditional"},
	},
	{
		ID:          "creative",
		Name:        "Creative",
		Description: "Stand out with this unique design",
		IsPro:       true,
		Colors:      creativeColors,
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "standard", Layout: "creative"},
	},
	{
		ID:          "professional",
		Name:        "Professional",
		Description: "Corporate style for senior positions",
		IsPro:       true,
		Colors:      professionalColors,
		Styles:      &Styles{FontFamily: "serif", Spacing: "compact", Layout: "traditional"},
	},
	{
		ID:          "executive",
		Name:        "Executive",
		Description: "Sophisticated design for leadership roles",
		IsPro:       true,
		Colors:      mergeColors(professionalColors, minimalColors[:1]),
		Styles:      &Styles{FontFamily: "serif", Spacing: "standard", Layout: "traditional"},
	},
	{
		ID:          "tech",
		Name:        "Tech",
		Description: "Perfect for IT and tech professionals",
		IsPro:       true,
		Colors:      mergeColors(professionalColors, minimalColors),
		Styles:      &Styles{FontFamily: "mono", Spacing: "compact", Layout: "modern"},
		Sections:    []string{"personal", "experience", "skills", "education", "expertise"},
	},
	{
		ID:          "academic",
		Name:        "Academic",
		Description: "Ideal for researchers and educators",
		IsPro:       true,
		Colors:      professionalColors,
		Styles:      &Styles{FontFamily: "serif", Spacing: "standard", Layout: "traditional"},
		Sections:    []string{"personal", "education", "experience", "honors", "languages", "certifications"},
	},
	{
		ID:          "corporate",
		Name:        "Corporate",
		Description: "Traditional business style",
		IsPro:       true,
		Colors:      professionalColors,
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "standard", Layout: "traditional"},
	},
	{
		ID:          "compact",
		Name:        "Compact",
		Description: "Fits more information on one page",
		IsPro:       true,
		Colors:      mergeColors(professionalColors, minimalColors),
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "compact", Layout: "modern"},
	},
	{
		ID:          "minimalist",
		Name:        "Minimalist",
		Description: "Ultra-clean design that puts content first",
		IsPro:       true,
		Colors:      minimalColors,
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "spacious", Layout: "modern"},
	},
	{
		ID:          "bold",
		Name:        "Bold",
		Description: "Strong visual elements that make an impact",
		IsPro:       true,
		Colors:      creativeColors,
		Styles:      &Styles{FontFamily: "sans-serif", Spacing: "standard", Layout: "creative"},
	},
}
