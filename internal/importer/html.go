// Package importer extracts draft resume content from an HTML page, such as
// an exported profile or a personal site. The output is a best-effort draft
// the user edits afterward, not a faithful conversion.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/resumatehq/resumate/internal/document"
)

// Draft is the raw harvest from one page: a candidate name from the first
// top-level heading and the text grouped under each subsequent heading.
type Draft struct {
	Name     string         `json:"name,omitempty"`
	Headline string         `json:"headline,omitempty"`
	Sections []DraftSection `json:"sections"`
}

// DraftSection is the text found under one heading.
type DraftSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Parse reads an HTML page and groups paragraph and list-item text under the
// nearest preceding h1-h3 heading. Script, style, and navigation subtrees
// are ignored.
func Parse(r io.Reader) (*Draft, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, nav, footer").Remove()

	draft := &Draft{}
	var current *DraftSection

	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}

		switch goquery.NodeName(sel) {
		case "h1":
			if draft.Name == "" {
				draft.Name = text
				return
			}
			fallthrough
		case "h2", "h3":
			draft.Sections = append(draft.Sections, DraftSection{Title: text})
			current = &draft.Sections[len(draft.Sections)-1]
		default:
			if current == nil {
				if draft.Headline == "" {
					draft.Headline = text
					return
				}
				draft.Sections = append(draft.Sections, DraftSection{Title: ""})
				current = &draft.Sections[len(draft.Sections)-1]
			}
			current.Lines = append(current.Lines, text)
		}
	})

	if draft.Name == "" && len(draft.Sections) == 0 {
		return nil, fmt.Errorf("no resume content found in page")
	}
	return draft, nil
}

// Document converts the draft into a resume document. Headings are mapped to
// known section types by keyword; anything unrecognized becomes a custom
// section. The result goes through the same store and normalizer as any
// other document, so a sloppy page cannot produce a malformed resume.
func (d *Draft) Document(title, templateID string) *document.ResumeDocument {
	doc := document.New(title, templateID)

	if d.Name != "" || d.Headline != "" {
		doc.Sections = append(doc.Sections, document.Section{
			ID:      document.NewSectionID(),
			Type:    document.TypePersonal,
			Title:   document.DefaultTitle(document.TypePersonal),
			Enabled: true,
			Content: []document.Record{{
				"fullName": d.Name,
				"jobTitle": d.Headline,
			}},
		})
	}

	for _, sec := range d.Sections {
		if len(sec.Lines) == 0 {
			continue
		}
		typ := classify(sec.Title)
		out := document.Section{
			ID:      document.NewSectionID(),
			Type:    typ,
			Title:   sectionTitle(sec.Title, typ),
			Enabled: true,
			Content: sectionContent(typ, sec.Lines),
		}
		doc.Sections = append(doc.Sections, out)
	}

	for i := range doc.Sections {
		doc.Sections[i].Order = i
	}
	return doc
}

// classify maps a page heading to a section type by keyword.
func classify(heading string) document.SectionType {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "experience"), strings.Contains(h, "employment"), strings.Contains(h, "work history"):
		return document.TypeExperience
	case strings.Contains(h, "education"):
		return document.TypeEducation
	case strings.Contains(h, "skill"):
		return document.TypeSkills
	case strings.Contains(h, "project"):
		return document.TypeProjects
	case strings.Contains(h, "certific"), strings.Contains(h, "license"):
		return document.TypeCertifications
	case strings.Contains(h, "award"), strings.Contains(h, "honor"):
		return document.TypeAwards
	case strings.Contains(h, "summary"), strings.Contains(h, "about"), strings.Contains(h, "profile"):
		return document.TypeSummary
	default:
		return document.TypeCustom
	}
}

func sectionTitle(heading string, typ document.SectionType) string {
	if heading != "" {
		return heading
	}
	return document.DefaultTitle(typ)
}

func sectionContent(typ document.SectionType, lines []string) []document.Record {
	switch typ {
	case document.TypeSummary:
		return []document.Record{{"text": strings.Join(lines, " ")}}
	case document.TypeSkills:
		items := make([]any, 0, len(lines))
		for _, line := range splitSkillLines(lines) {
			items = append(items, line)
		}
		return []document.Record{{"technical": items}}
	default:
		content := make([]document.Record, 0, len(lines))
		for _, line := range lines {
			content = append(content, document.Record{"description": line})
		}
		return content
	}
}

// splitSkillLines breaks comma- or pipe-separated skill lists into
// individual entries.
func splitSkillLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		for _, part := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '|' || r == ';' || r == '·'
		}) {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
