package render

import (
	"strings"

	"resumio/internal/catalog"
	"resumio/internal/document"
)

// 分区标识，同时用于模板的 Sections 白名单。
const (
	SectionPersonal       = "personal"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionLanguages      = "languages"
	SectionCertifications = "certifications"
	SectionExpertise      = "expertise"
	SectionHonors         = "honors"
)

// 默认渲染顺序；模板声明 Sections 时以声明顺序为准。
var defaultSectionOrder = []string{
	SectionPersonal,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionExpertise,
	SectionLanguages,
	SectionCertifications,
	SectionHonors,
}

// View 是交给栅格化协作方的自包含渲染模型：
// 配色已解析、日期已格式化、分区可见性已按模板裁剪，不再依赖目录或 Store。
type View struct {
	Name     string
	FileName string

	FontFamily string
	Spacing    string
	Layout     string

	Colors document.Colors

	Personal document.PersonalInfo

	// Sections 是最终可见的分区 ID，按渲染顺序排列。
	Sections []string

	Experience     []EntryView
	Education      []EntryView
	Skills         []SkillView
	Languages      []document.Language
	Certifications []CertificationView
	Expertise      []string
	Honors         []HonorView
}

// EntryView 是教育/经历条目的展示形态：抬头、副题、已格式化的时间段。
type EntryView struct {
	Heading     string
	Subheading  string
	Location    string
	Period      string
	Description string
}

// SkillView 附带按 1-5 等级换算的百分比，供进度条渲染。
type SkillView struct {
	Name    string
	Level   int
	Percent int
}

type CertificationView struct {
	Name   string
	Issuer string
	Date   string
}

type HonorView struct {
	Title       string
	Issuer      string
	Date        string
	Description string
}

// BuildView 把文档解析为渲染模型。模板缺失时按无样式、全部分区处理。
func BuildView(doc document.Resume) View {
	v := View{
		Name:     doc.Name,
		FileName: FileName(doc),
		Personal: doc.PersonalInfo,
	}

	tpl, hasTemplate := catalog.Find(doc.TemplateID)
	if hasTemplate && tpl.Styles != nil {
		v.FontFamily = tpl.Styles.FontFamily
		v.Spacing = tpl.Styles.Spacing
		v.Layout = tpl.Styles.Layout
	}

	v.Colors = resolveColors(doc, tpl, hasTemplate)

	for _, e := range doc.Experience {
		v.Experience = append(v.Experience, EntryView{
			Heading:     e.Position,
			Subheading:  e.Company,
			Location:    e.Location,
			Period:      FormatDateRange(e.StartDate, e.EndDate),
			Description: e.Description,
		})
	}
	for _, e := range doc.Education {
		heading := e.Degree
		if e.Field != "" {
			heading = strings.TrimSpace(e.Degree + ", " + e.Field)
		}
		v.Education = append(v.Education, EntryView{
			Heading:     heading,
			Subheading:  e.Institution,
			Period:      FormatDateRange(e.StartDate, e.EndDate),
			Description: e.Description,
		})
	}
	for _, s := range doc.Skills {
		level := s.Level
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		v.Skills = append(v.Skills, SkillView{Name: s.Name, Level: level, Percent: level * 20})
	}
	v.Languages = append(v.Languages, doc.Languages...)
	for _, c := range doc.Certifications {
		v.Certifications = append(v.Certifications, CertificationView{
			Name:   c.Name,
			Issuer: c.Issuer,
			Date:   FormatDate(c.Date),
		})
	}
	v.Expertise = append(v.Expertise, doc.Expertise...)
	for _, h := range doc.Honors {
		v.Honors = append(v.Honors, HonorView{
			Title:       h.Title,
			Issuer:      h.Issuer,
			Date:        FormatDate(h.Date),
			Description: h.Description,
		})
	}

	v.Sections = visibleSections(v, tpl, hasTemplate)
	return v
}

// resolveColors 优先使用文档的配色快照；缺失时回落到模板默认配色。
func resolveColors(doc document.Resume, tpl catalog.Template, hasTemplate bool) document.Colors {
	if doc.Colors != nil {
		return *doc.Colors
	}
	if !hasTemplate {
		return document.Colors{Primary: "#262626", Secondary: "#e5e5e5"}
	}
	c := catalog.DefaultColor(tpl)
	return document.Colors{Primary: c.Primary, Secondary: c.Secondary, Accent: c.Accent}
}

// visibleSections 计算最终渲染的分区：
// 列表类分区只有非空才渲染；模板显式声明了 Sections 时，未列出的分区
// 无论是否有内容都不渲染。
func visibleSections(v View, tpl catalog.Template, hasTemplate bool) []string {
	order := defaultSectionOrder
	if hasTemplate && len(tpl.Sections) > 0 {
		order = tpl.Sections
	}

	var out []string
	for _, id := range order {
		switch id {
		case SectionPersonal:
			out = append(out, id)
		case SectionExperience:
			if len(v.Experience) > 0 {
				out = append(out, id)
			}
		case SectionEducation:
			if len(v.Education) > 0 {
				out = append(out, id)
			}
		case SectionSkills:
			if len(v.Skills) > 0 {
				out = append(out, id)
			}
		case SectionLanguages:
			if len(v.Languages) > 0 {
				out = append(out, id)
			}
		case SectionCertifications:
			if len(v.Certifications) > 0 {
				out = append(out, id)
			}
		case SectionExpertise:
			if len(v.Expertise) > 0 {
				out = append(out, id)
			}
		case SectionHonors:
			if len(v.Honors) > 0 {
				out = append(out, id)
			}
		}
	}
	return out
}

// Has 报告某分区是否可见，供 HTML 模板查询。
func (v View) Has(section string) bool {
	for _, id := range v.Sections {
		if id == section {
			return true
		}
	}
	return false
}

// FileName 返回导出文件名（不含扩展名），空名称回落到 "resume"。
func FileName(doc document.Resume) string {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return "resume"
	}
	// 去掉会破坏下载文件名的路径分隔符。
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	return name
}
