package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// pageTemplate 是交给无头浏览器打印的自包含 HTML 页面。
// 尺寸为 A4 @ 96 DPI（794x1122px），由 @page 规则控制纸张。
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  @page { size: A4 portrait; margin: 0; }
  :root {
    --primary: {{.Colors.Primary}};
    --secondary: {{.Colors.Secondary}};
    --accent: {{if .Colors.Accent}}{{.Colors.Accent}}{{else}}{{.Colors.Primary}}{{end}};
  }
  body {
    margin: 0;
    padding: 0;
    font-family: {{fontStack .FontFamily}};
    color: #1f2937;
    background: white;
  }
  .page {
    width: 794px;
    min-height: 1122px;
    margin: 0 auto;
    box-sizing: border-box;
    padding: {{pagePadding .Spacing}}px;
    background: white;
  }
  header.identity {
    border-bottom: 3px solid var(--primary);
    padding-bottom: {{sectionGap .Spacing}}px;
    margin-bottom: {{sectionGap .Spacing}}px;
  }
  h1 { margin: 0; font-size: 26pt; color: var(--primary); }
  .title { font-size: 13pt; color: #374151; margin-top: 4px; }
  .contact { font-size: 9pt; color: #4b5563; margin-top: 8px; }
  .contact span + span::before { content: "  \2022  "; color: var(--secondary); }
  section { margin-bottom: {{sectionGap .Spacing}}px; }
  h2 {
    font-size: 11pt;
    text-transform: uppercase;
    letter-spacing: 0.08em;
    color: var(--primary);
    border-bottom: 1px solid var(--secondary);
    padding-bottom: 3px;
    margin: 0 0 8px;
  }
  .entry { margin-bottom: {{entryGap .Spacing}}px; }
  .entry-head { display: flex; justify-content: space-between; font-size: 10.5pt; }
  .entry-head b { color: #111827; }
  .period { color: var(--accent); font-size: 9pt; white-space: nowrap; }
  .sub { font-size: 10pt; color: #374151; }
  .desc { font-size: 9.5pt; color: #4b5563; margin-top: 3px; white-space: pre-wrap; }
  .summary { font-size: 10pt; color: #374151; white-space: pre-wrap; }
  .skills { display: flex; flex-wrap: wrap; gap: 6px 18px; }
  .skill { width: 44%; font-size: 9.5pt; }
  .bar { height: 5px; background: var(--secondary); border-radius: 3px; margin-top: 3px; }
  .bar i { display: block; height: 100%; border-radius: 3px; background: var(--primary); }
  .tags span {
    display: inline-block;
    font-size: 9pt;
    background: var(--secondary);
    color: #111827;
    border-radius: 3px;
    padding: 2px 8px;
    margin: 0 6px 6px 0;
  }
  .inline-list { font-size: 9.5pt; color: #374151; }
</style>
</head>
<body>
<div class="page" id="resume-root">
  {{if .Has "personal"}}
  <header class="identity">
    <h1>{{.Personal.FullName}}</h1>
    {{if .Personal.Title}}<div class="title">{{.Personal.Title}}</div>{{end}}
    <div class="contact">
      {{if .Personal.Email}}<span>{{.Personal.Email}}</span>{{end}}
      {{if .Personal.Phone}}<span>{{.Personal.Phone}}</span>{{end}}
      {{if .Personal.Address}}<span>{{.Personal.Address}}</span>{{end}}
      {{if .Personal.Website}}<span>{{.Personal.Website}}</span>{{end}}
      {{if .Personal.LinkedIn}}<span>{{.Personal.LinkedIn}}</span>{{end}}
      {{if .Personal.GitHub}}<span>{{.Personal.GitHub}}</span>{{end}}
    </div>
  </header>
  {{if .Personal.Summary}}<section><h2>Summary</h2><div class="summary">{{.Personal.Summary}}</div></section>{{end}}
  {{end}}

  {{range .Sections}}
    {{if eq . "experience"}}
    <section>
      <h2>Experience</h2>
      {{range $.Experience}}
      <div class="entry">
        <div class="entry-head"><b>{{.Heading}}</b><span class="period">{{.Period}}</span></div>
        <div class="sub">{{.Subheading}}{{if .Location}} &middot; {{.Location}}{{end}}</div>
        {{if .Description}}<div class="desc">{{.Description}}</div>{{end}}
      </div>
      {{end}}
    </section>
    {{else if eq . "education"}}
    <section>
      <h2>Education</h2>
      {{range $.Education}}
      <div class="entry">
        <div class="entry-head"><b>{{.Heading}}</b><span class="period">{{.Period}}</span></div>
        <div class="sub">{{.Subheading}}</div>
        {{if .Description}}<div class="desc">{{.Description}}</div>{{end}}
      </div>
      {{end}}
    </section>
    {{else if eq . "skills"}}
    <section>
      <h2>Skills</h2>
      <div class="skills">
        {{range $.Skills}}
        <div class="skill">{{.Name}}<div class="bar"><i style="width: {{.Percent}}%"></i></div></div>
        {{end}}
      </div>
    </section>
    {{else if eq . "expertise"}}
    <section>
      <h2>Areas of Expertise</h2>
      <div class="tags">{{range $.Expertise}}<span>{{.}}</span>{{end}}</div>
    </section>
    {{else if eq . "languages"}}
    <section>
      <h2>Languages</h2>
      <div class="inline-list">{{range $i, $l := $.Languages}}{{if $i}} &nbsp;&bull;&nbsp; {{end}}{{$l.Language}} ({{$l.Proficiency}}){{end}}</div>
    </section>
    {{else if eq . "certifications"}}
    <section>
      <h2>Certifications</h2>
      {{range $.Certifications}}
      <div class="entry">
        <div class="entry-head"><b>{{.Name}}</b><span class="period">{{.Date}}</span></div>
        <div class="sub">{{.Issuer}}</div>
      </div>
      {{end}}
    </section>
    {{else if eq . "honors"}}
    <section>
      <h2>Honors &amp; Awards</h2>
      {{range $.Honors}}
      <div class="entry">
        <div class="entry-head"><b>{{.Title}}</b><span class="period">{{.Date}}</span></div>
        <div class="sub">{{.Issuer}}</div>
        {{if .Description}}<div class="desc">{{.Description}}</div>{{end}}
      </div>
      {{end}}
    </section>
    {{end}}
  {{end}}
</div>
</body>
</html>`

var pageTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"fontStack":   fontStack,
	"pagePadding": pagePadding,
	"sectionGap":  sectionGap,
	"entryGap":    entryGap,
}).Parse(pageTemplate))

// HTML 将渲染模型展开为独立可打印的 HTML 页面。
func HTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("execute resume template: %w", err)
	}
	return buf.String(), nil
}

func fontStack(family string) template.CSS {
	switch family {
	case "serif":
		return "Georgia, 'Times New Roman', serif"
	case "mono":
		return "'Courier New', Consolas, monospace"
	default:
		return "Arial, Helvetica, sans-serif"
	}
}

// 间距密度换算为像素。standard 是未声明样式时的默认值。
func pagePadding(spacing string) int {
	switch spacing {
	case "compact":
		return 32
	case "spacious":
		return 56
	default:
		return 44
	}
}

func sectionGap(spacing string) int {
	switch spacing {
	case "compact":
		return 10
	case "spacious":
		return 22
	default:
		return 16
	}
}

func entryGap(spacing string) int {
	switch spacing {
	case "compact":
		return 6
	case "spacious":
		return 14
	default:
		return 10
	}
}
