package document

// Patch 是类型化的部分更新。nil 字段表示保持不变。
// 取代前端里按字符串路径做的浅合并：字段集合固定，边界处即可校验。
type Patch struct {
	Name         *string       `json:"name,omitempty"`
	TemplateID   *string       `json:"templateId,omitempty"`
	ColorID      *string       `json:"colorId,omitempty"`
	Colors       *Colors       `json:"colors,omitempty"`
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`

	Education  *[]Education  `json:"education,omitempty"`
	Experience *[]Experience `json:"experience,omitempty"`
	Skills     *[]Skill      `json:"skills,omitempty"`

	Languages      *[]Language      `json:"languages,omitempty"`
	Certifications *[]Certification `json:"certifications,omitempty"`
	Expertise      *[]string        `json:"expertise,omitempty"`
	Honors         *[]Honor         `json:"honors,omitempty"`
}

// Apply 将补丁浅合并到文档副本上并返回。
// ID、UserID、CreatedAt 不可变；UpdatedAt 由调用方（Store）统一刷新。
func (p Patch) Apply(r Resume) Resume {
	out := r.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.TemplateID != nil {
		out.TemplateID = *p.TemplateID
	}
	if p.ColorID != nil {
		out.ColorID = *p.ColorID
	}
	if p.Colors != nil {
		c := *p.Colors
		out.Colors = &c
	}
	if p.PersonalInfo != nil {
		out.PersonalInfo = *p.PersonalInfo
	}
	if p.Education != nil {
		out.Education = append([]Education(nil), *p.Education...)
	}
	if p.Experience != nil {
		out.Experience = append([]Experience(nil), *p.Experience...)
	}
	if p.Skills != nil {
		out.Skills = append([]Skill(nil), *p.Skills...)
	}
	if p.Languages != nil {
		out.Languages = append([]Language(nil), *p.Languages...)
	}
	if p.Certifications != nil {
		out.Certifications = append([]Certification(nil), *p.Certifications...)
	}
	if p.Expertise != nil {
		out.Expertise = append([]string(nil), *p.Expertise...)
	}
	if p.Honors != nil {
		out.Honors = append([]Honor(nil), *p.Honors...)
	}
	return out
}

// EnsureEntryIDs 为补丁里缺少 ID 或 ID 重复的教育/经历/技能条目分配条目 ID。
// 条目 ID 在进入集合时分配一次，客户端后续提交时原样带回。
func (p Patch) EnsureEntryIDs() {
	if p.Education != nil {
		seen := map[string]bool{}
		for i := range *p.Education {
			id := (*p.Education)[i].ID
			if id == "" || seen[id] {
				id = NewEntryID("edu")
			}
			(*p.Education)[i].ID = id
			seen[id] = true
		}
	}
	if p.Experience != nil {
		seen := map[string]bool{}
		for i := range *p.Experience {
			id := (*p.Experience)[i].ID
			if id == "" || seen[id] {
				id = NewEntryID("exp")
			}
			(*p.Experience)[i].ID = id
			seen[id] = true
		}
	}
	if p.Skills != nil {
		seen := map[string]bool{}
		for i := range *p.Skills {
			id := (*p.Skills)[i].ID
			if id == "" || seen[id] {
				id = NewEntryID("skill")
			}
			(*p.Skills)[i].ID = id
			seen[id] = true
		}
	}
}

// Empty 报告补丁是否没有任何字段。
// 即便为空，Store 的更新语义仍会刷新 UpdatedAt。
func (p Patch) Empty() bool {
	return p.Name == nil &&
		p.TemplateID == nil &&
		p.ColorID == nil &&
		p.Colors == nil &&
		p.PersonalInfo == nil &&
		p.Education == nil &&
		p.Experience == nil &&
		p.Skills == nil &&
		p.Languages == nil &&
		p.Certifications == nil &&
		p.Expertise == nil &&
		p.Honors == nil
}
