package catalog

// Template 描述一种简历版式：固定的配色列表、样式属性与可渲染的分区。
type Template struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsPro       bool          `json:"is_pro"`
	Colors      []ColorOption `json:"colors"`
	Styles      *Styles       `json:"styles,omitempty"`
	// Sections 为空表示按内容渲染全部分区；非空时只渲染列出的分区。
	Sections []string `json:"sections,omitempty"`
}

// ColorOption 是模板允许的一组主/辅/强调色。
type ColorOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent,omitempty"`
}

// Styles 描述模板的排版属性。
type Styles struct {
	FontFamily string `json:"font_family,omitempty"`
	Spacing    string `json:"spacing,omitempty"` // compact | standard | spacious
	Layout     string `json:"layout,omitempty"`  // traditional | modern | creative
}

// List 返回全部模板，顺序固定。返回的切片是副本，调用方可以安全遍历。
func List() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Find 按 ID 查找模板。
func Find(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// FindColor 在模板的配色列表中查找指定配色。
func FindColor(t Template, colorID string) (ColorOption, bool) {
	for _, c := range t.Colors {
		if c.ID == colorID {
			return c, true
		}
	}
	return ColorOption{}, false
}

// DefaultColor 返回模板的默认配色（列表首项）。
// 模板数据保证 Colors 非空。
func DefaultColor(t Template) ColorOption {
	return t.Colors[0]
}
