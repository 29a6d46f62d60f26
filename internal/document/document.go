package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resume 是一份简历文档。JSON 字段名与前端存储格式保持一致。
type Resume struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`

	TemplateID string `json:"templateId"`
	ColorID    string `json:"colorId,omitempty"`
	// Colors 是创建/选色时从目录拷贝的快照，目录后续变更不影响已有文档。
	Colors *Colors `json:"colors,omitempty"`

	PersonalInfo PersonalInfo `json:"personalInfo"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       []Skill      `json:"skills"`

	Languages      []Language      `json:"languages,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Expertise      []string        `json:"expertise,omitempty"`
	Honors         []Honor         `json:"honors,omitempty"`
}

// Colors 是文档级的配色快照。
type Colors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent,omitempty"`
}

// PersonalInfo 的所有字段都是建议性的，核心不强制必填。
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // 空串表示至今
	Description string `json:"description"`
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // 空串表示至今
	Description string `json:"description"`
}

// Skill 的 Level 取值 1-5，5 为最高。
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Honor struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}

// NewID 生成文档 ID：毫秒时间戳 + 随机后缀，保证同一用户内唯一。
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("resume-%d-%s", now.UnixMilli(), suffix)
}

// NewEntryID 为列表条目（教育/经历/技能）生成条目级 ID。
// 条目 ID 在创建时分配，之后不可变。
func NewEntryID(kind string) string {
	return kind + "-" + uuid.NewString()
}

// Clone 返回文档的深拷贝，避免调用方共享内部切片。
func (r Resume) Clone() Resume {
	out := r
	if r.Colors != nil {
		c := *r.Colors
		out.Colors = &c
	}
	out.Education = append([]Education(nil), r.Education...)
	out.Experience = append([]Experience(nil), r.Experience...)
	out.Skills = append([]Skill(nil), r.Skills...)
	if r.Languages != nil {
		out.Languages = append([]Language(nil), r.Languages...)
	}
	if r.Certifications != nil {
		out.Certifications = append([]Certification(nil), r.Certifications...)
	}
	if r.Expertise != nil {
		out.Expertise = append([]string(nil), r.Expertise...)
	}
	if r.Honors != nil {
		out.Honors = append([]Honor(nil), r.Honors...)
	}
	return out
}
