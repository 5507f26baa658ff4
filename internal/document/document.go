// Package document defines the resume document model shared by the editing
// core, the preview renderer, and the persistence layer.
package document

import (
	"time"

	"github.com/google/uuid"
)

// SectionType identifies the shape contract of a section's content.
type SectionType string

// Known section types. The set is closed: anything else is treated as a
// custom section by the normalizer and the preview renderer.
const (
	TypePersonal       SectionType = "personal"
	TypeSummary        SectionType = "summary"
	TypeExperience     SectionType = "experience"
	TypeEducation      SectionType = "education"
	TypeSkills         SectionType = "skills"
	TypeProjects       SectionType = "projects"
	TypeCertifications SectionType = "certifications"
	TypeAwards         SectionType = "awards"
	TypeCustom         SectionType = "custom"
)

// KnownTypes lists every section type the normalizer has rules for.
var KnownTypes = []SectionType{
	TypePersonal,
	TypeSummary,
	TypeExperience,
	TypeEducation,
	TypeSkills,
	TypeProjects,
	TypeCertifications,
	TypeAwards,
	TypeCustom,
}

// KnownType reports whether t is one of the built-in section types.
func KnownType(t SectionType) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Record is one content entry of a section. Values are restricted to
// JSON-compatible types (string, float64, bool, []any, map[string]any) so
// documents round-trip through the backend API unchanged.
type Record = map[string]any

// Section is one named, typed block of a resume.
//
// Content is always a sequence of records. Singleton types (personal,
// summary, skills) use the array-of-one convention so every section reads
// the same way; repeatable types hold zero or more same-shaped records.
type Section struct {
	ID       string         `json:"_id"`
	Type     SectionType    `json:"type"`
	Title    string         `json:"title"`
	Enabled  bool           `json:"enabled"`
	Order    int            `json:"order"`
	Content  []Record       `json:"content"`
	Settings map[string]any `json:"settings,omitempty"`
}

// ShareConfig is the sharing portion of document metadata. The editing core
// treats it as passthrough; the share store fills it in.
type ShareConfig struct {
	Public bool   `json:"public"`
	Slug   string `json:"slug,omitempty"`
}

// Counters tracks usage numbers maintained by the backend.
type Counters struct {
	Views     int `json:"views"`
	Downloads int `json:"downloads"`
}

// Metadata is owned exclusively by the document store. UpdatedAt is
// refreshed on every committed mutation.
type Metadata struct {
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Published bool        `json:"published"`
	Share     ShareConfig `json:"share"`
	Counters  Counters    `json:"counters"`
}

// ResumeDocument is the root aggregate: an ordered list of sections plus
// display metadata. Section order is significant and kept contiguous
// (Sections[i].Order == i) by the document store.
type ResumeDocument struct {
	ID         string    `json:"id,omitempty"`
	Title      string    `json:"title"`
	TemplateID string    `json:"templateId"`
	Language   string    `json:"language,omitempty"`
	Sections   []Section `json:"sections"`
	Metadata   Metadata  `json:"metadata"`
}

// New returns an empty document with a fresh metadata block. ID stays empty
// until the backend assigns one on first save.
func New(title, templateID string) *ResumeDocument {
	now := time.Now().UTC()
	return &ResumeDocument{
		Title:      title,
		TemplateID: templateID,
		Sections:   []Section{},
		Metadata: Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// NewSectionID generates a client-side section identifier. Uniqueness is
// only required within one document; the backend may substitute its own on
// persisted resumes and both are treated as opaque strings.
func NewSectionID() string {
	return uuid.NewString()
}

// SectionByID returns a pointer into Sections for the given id, or nil when
// the id is unknown.
func (d *ResumeDocument) SectionByID(id string) *Section {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i]
		}
	}
	return nil
}

// DefaultTitle returns the display label used when a section is created
// without an explicit title.
func DefaultTitle(t SectionType) string {
	switch t {
	case TypePersonal:
		return "Personal Information"
	case TypeSummary:
		return "Summary"
	case TypeExperience:
		return "Experience"
	case TypeEducation:
		return "Education"
	case TypeSkills:
		return "Skills"
	case TypeProjects:
		return "Projects"
	case TypeCertifications:
		return "Certifications"
	case TypeAwards:
		return "Awards"
	default:
		return "Custom Section"
	}
}
