package render

import (
	"strings"
	"testing"

	"resumio/internal/document"
)

func TestFormatDateRange(t *testing.T) {
	if got := FormatDateRange("2020-03-01", ""); got != "Mar 2020 - Present" {
		t.Fatalf("open range = %q", got)
	}
	if got := FormatDateRange("2018-06-01", "2020-02-28"); got != "Jun 2018 - Feb 2020" {
		t.Fatalf("closed range = %q", got)
	}
	if strings.Contains(FormatDateRange("2018-06-01", "2020-02-28"), "-01") {
		t.Fatal("raw ISO leaked into output")
	}
	// 证书只有年月。
	if got := FormatDate("2021-05"); got != "May 2021" {
		t.Fatalf("year-month = %q", got)
	}
	// 脏数据原样透传。
	if got := FormatDate("sometime"); got != "sometime" {
		t.Fatalf("garbage = %q", got)
	}
}

func TestBuildViewSectionVisibility(t *testing.T) {
	doc := document.Resume{
		Name:       "Dev Resume",
		TemplateID: "modern",
		Colors:     &document.Colors{Primary: "#2563eb", Secondary: "#93c5fd"},
		Experience: []document.Experience{{
			ID: "exp-1", Company: "Tech Solutions", Position: "Engineer",
			StartDate: "2020-03-01",
		}},
	}

	v := BuildView(doc)
	if !v.Has(SectionExperience) {
		t.Fatal("non-empty experience must be visible")
	}
	for _, s := range []string{SectionEducation, SectionSkills, SectionLanguages, SectionHonors} {
		if v.Has(s) {
			t.Fatalf("empty section %q must be hidden", s)
		}
	}
	if v.Experience[0].Period != "Mar 2020 - Present" {
		t.Fatalf("period = %q", v.Experience[0].Period)
	}
}

func TestBuildViewRespectsTemplateSectionList(t *testing.T) {
	// academic 模板未声明 skills 分区，有内容也不渲染。
	doc := document.Resume{
		Name:       "Researcher",
		TemplateID: "academic",
		Skills:     []document.Skill{{ID: "skill-1", Name: "Statistics", Level: 5}},
		Education: []document.Education{{
			ID: "edu-1", Institution: "MIT", Degree: "PhD", StartDate: "2010-09-01", EndDate: "2015-06-01",
		}},
	}

	v := BuildView(doc)
	if v.Has(SectionSkills) {
		t.Fatal("template section list must filter out unlisted sections")
	}
	if !v.Has(SectionEducation) {
		t.Fatal("listed non-empty section must stay visible")
	}
}

func TestBuildViewColorsFallBackToTemplateDefault(t *testing.T) {
	doc := document.Resume{Name: "N", TemplateID: "minimal"}
	v := BuildView(doc)
	if v.Colors.Primary != "#262626" {
		t.Fatalf("colors = %+v, want minimal default", v.Colors)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(document.Resume{Name: "  "}); got != "resume" {
		t.Fatalf("fallback = %q", got)
	}
	if got := FileName(document.Resume{Name: "My CV / 2024"}); got != "My CV - 2024" {
		t.Fatalf("sanitized = %q", got)
	}
}

func TestHTMLRendersResolvedValues(t *testing.T) {
	doc := document.Resume{
		Name:       "Dev Resume",
		TemplateID: "modern",
		Colors:     &document.Colors{Primary: "#0d9488", Secondary: "#5eead4"},
		PersonalInfo: document.PersonalInfo{
			FullName: "Alex Johnson",
			Email:    "alex@example.com",
			Summary:  "Line one\nLine two",
		},
		Experience: []document.Experience{{
			ID: "exp-1", Company: "Tech Solutions", Position: "Engineer",
			StartDate: "2020-03-01",
		}},
		Skills: []document.Skill{{ID: "skill-1", Name: "Go", Level: 4}},
	}

	html, err := HTML(BuildView(doc))
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	for _, want := range []string{
		"Alex Johnson",
		"#0d9488",
		"Mar 2020 - Present",
		"width: 80%",
		"@page { size: A4 portrait;",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html misses %q", want)
		}
	}
	if strings.Contains(html, "2020-03-01") {
		t.Fatal("raw ISO date leaked into html")
	}
}
