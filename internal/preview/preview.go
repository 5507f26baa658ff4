// Package preview projects a resume document into a display structure for
// templates and clients. The projection is pure: it never mutates the
// document store and has no failure mode. Disabled sections are skipped
// entirely; missing content degrades to a placeholder.
package preview

import (
	"strings"

	"github.com/resumatehq/resumate/internal/document"
)

// View is the renderable projection of one resume document.
type View struct {
	Title      string   `json:"title"`
	TemplateID string   `json:"templateId"`
	Language   string   `json:"language,omitempty"`
	Personal   Personal `json:"personal"`
	Summary    string   `json:"summary"`
	Sections   []Block  `json:"sections"`
}

// Personal is the flattened personal-info singleton.
type Personal struct {
	FullName    string            `json:"fullName"`
	JobTitle    string            `json:"jobTitle,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Location    string            `json:"location,omitempty"`
	Website     string            `json:"website,omitempty"`
	SocialLinks map[string]string `json:"socialLinks,omitempty"`
}

// Skills is the flattened skills singleton.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// Block is one rendered section in document order. Exactly one of Skills or
// Items carries the body, depending on the section type; Placeholder marks a
// section whose content was missing or empty.
type Block struct {
	ID          string               `json:"id"`
	Type        document.SectionType `json:"type"`
	Title       string               `json:"title"`
	Skills      *Skills              `json:"skills,omitempty"`
	Items       []Item               `json:"items,omitempty"`
	Placeholder bool                 `json:"placeholder,omitempty"`
}

// Item is one entry of a repeatable section, reduced to the fields the
// templates care about. Field names differ per section type (company vs
// institution vs project name); the mapping below flattens them.
type Item struct {
	Heading     string   `json:"heading"`
	Subheading  string   `json:"subheading,omitempty"`
	Period      string   `json:"period,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Render builds the view for a document. Sections are visited in stored
// order; the personal and summary singletons are lifted into dedicated slots
// while everything else, including unknown custom types, lands in Sections.
func Render(doc *document.ResumeDocument) View {
	view := View{
		Title:      doc.Title,
		TemplateID: doc.TemplateID,
		Language:   doc.Language,
		Sections:   []Block{},
	}

	for _, sec := range doc.Sections {
		if !sec.Enabled {
			continue
		}
		normalized, _ := document.Normalize(sec)

		switch normalized.Type {
		case document.TypePersonal:
			view.Personal = personalView(normalized.Content[0])
		case document.TypeSummary:
			view.Summary = stringField(normalized.Content[0], "text")
		case document.TypeSkills:
			skills := skillsView(normalized.Content[0])
			view.Sections = append(view.Sections, Block{
				ID:          normalized.ID,
				Type:        normalized.Type,
				Title:       normalized.Title,
				Skills:      &skills,
				Placeholder: skills.empty(),
			})
		default:
			items := itemsView(normalized.Type, normalized.Content)
			view.Sections = append(view.Sections, Block{
				ID:          normalized.ID,
				Type:        normalized.Type,
				Title:       normalized.Title,
				Items:       items,
				Placeholder: len(items) == 0,
			})
		}
	}

	return view
}

func personalView(rec document.Record) Personal {
	return Personal{
		FullName:    stringField(rec, "fullName"),
		JobTitle:    stringField(rec, "jobTitle"),
		Email:       stringField(rec, "email"),
		Phone:       stringField(rec, "phone"),
		Location:    stringField(rec, "location"),
		Website:     stringField(rec, "website"),
		SocialLinks: stringMapField(rec, "socialLinks"),
	}
}

func skillsView(rec document.Record) Skills {
	return Skills{
		Technical: stringListField(rec, "technical"),
		Soft:      stringListField(rec, "soft"),
		Languages: stringListField(rec, "languages"),
	}
}

func (s Skills) empty() bool {
	return len(s.Technical) == 0 && len(s.Soft) == 0 && len(s.Languages) == 0
}

func itemsView(t document.SectionType, content []document.Record) []Item {
	items := make([]Item, 0, len(content))
	for _, rec := range content {
		item := itemView(t, rec)
		if item.empty() {
			continue
		}
		items = append(items, item)
	}
	return items
}

// itemView flattens one record. Field aliases cover the per-type naming:
// experience uses company/position, education institution/degree, projects
// name/url, certifications and awards name/issuer.
func itemView(t document.SectionType, rec document.Record) Item {
	item := Item{
		Period:      period(rec),
		Link:        stringField(rec, "url", "link"),
		Description: stringField(rec, "description", "summary", "text"),
		Bullets:     stringListField(rec, "highlights", "bullets"),
	}

	switch t {
	case document.TypeExperience:
		item.Heading = stringField(rec, "company")
		item.Subheading = stringField(rec, "position", "role", "title")
	case document.TypeEducation:
		item.Heading = stringField(rec, "institution", "school")
		item.Subheading = strings.TrimSpace(strings.TrimSuffix(
			stringField(rec, "degree")+", "+stringField(rec, "field", "fieldOfStudy"), ", "))
	case document.TypeProjects:
		item.Heading = stringField(rec, "name", "title")
		item.Subheading = stringField(rec, "stack", "technologies")
	case document.TypeCertifications, document.TypeAwards:
		item.Heading = stringField(rec, "name", "title")
		item.Subheading = stringField(rec, "issuer", "organization")
	default:
		item.Heading = stringField(rec, "title", "name", "heading")
		item.Subheading = stringField(rec, "subtitle")
	}

	return item
}

func (i Item) empty() bool {
	return i.Heading == "" && i.Subheading == "" && i.Period == "" &&
		i.Link == "" && i.Description == "" && len(i.Bullets) == 0
}

func period(rec document.Record) string {
	single := stringField(rec, "period", "date")
	if single != "" {
		return single
	}
	start := stringField(rec, "startDate", "start")
	end := stringField(rec, "endDate", "end")
	if boolField(rec, "current") && end == "" {
		end = "Present"
	}
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " – " + end
	}
}

// stringField returns the first non-empty string among the aliased keys.
func stringField(rec document.Record, keys ...string) string {
	for _, key := range keys {
		if v, ok := rec[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func boolField(rec document.Record, key string) bool {
	v, _ := rec[key].(bool)
	return v
}

func stringListField(rec document.Record, keys ...string) []string {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case []string:
			if len(v) > 0 {
				return v
			}
		case []any:
			out := make([]string, 0, len(v))
			for _, elem := range v {
				if s, ok := elem.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func stringMapField(rec document.Record, key string) map[string]string {
	raw, ok := rec[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
