package editor

import (
	"time"

	"github.com/resumatehq/resumate/internal/document"
)

// Store is the sole owner and mutator of one editing session's resume
// document. Every mutation clones the current document, applies the change
// to the clone, and installs it, pushing the previous state onto the undo
// history. Mutations targeting an unknown section ID are no-ops signalled by
// a false return, never an error.
//
// Store is not goroutine-safe: one editing session is one logical writer.
// Callers that share a store across goroutines serialize access themselves.
type Store struct {
	current *document.ResumeDocument
	history History
	now     func() time.Time
}

// NewStore creates a store with no document. The first ReplaceDocument call
// installs one without recording history (there is nothing to undo).
func NewStore() *Store {
	return &Store{now: time.Now}
}

// SetHistoryLimit caps undo depth. Zero means unbounded.
func (s *Store) SetHistoryLimit(n int) {
	s.history.Limit = n
}

// SectionMetaPatch is a partial update of a section's mutable metadata.
// Nil fields are left untouched.
type SectionMetaPatch struct {
	Title   *string
	Enabled *bool
}

// DocumentMetaPatch is a partial update of document-level fields. Nil fields
// are left untouched. TemplateID changes never affect section content.
type DocumentMetaPatch struct {
	Title      *string
	TemplateID *string
	Language   *string
}

// HasDocument reports whether a document has been loaded.
func (s *Store) HasDocument() bool { return s.current != nil }

// Document returns a deep copy of the current document, or nil when none is
// loaded. Callers get their own copy so nothing they do can reach the
// store's state or its history snapshots.
func (s *Store) Document() *document.ResumeDocument {
	return s.current.Clone()
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// ReplaceDocument installs doc wholesale, renumbering section order to be
// contiguous. Used on initial load and when a fetch resolves. The very first
// call does not push a history entry; later calls are committed mutations.
func (s *Store) ReplaceDocument(doc *document.ResumeDocument) {
	incoming := doc.Clone()
	renumber(incoming)
	if s.current == nil {
		s.current = incoming
		return
	}
	incoming.Metadata.UpdatedAt = s.now().UTC()
	s.history.Record(s.current)
	s.current = incoming
}

// UpdateDocumentMeta merges a partial update of title, template, or language
// into the document.
func (s *Store) UpdateDocumentMeta(patch DocumentMetaPatch) bool {
	return s.commit(func(doc *document.ResumeDocument) bool {
		if patch.Title != nil {
			doc.Title = *patch.Title
		}
		if patch.TemplateID != nil {
			doc.TemplateID = *patch.TemplateID
		}
		if patch.Language != nil {
			doc.Language = *patch.Language
		}
		return true
	})
}

// UpdateSectionMeta merges a partial update into the targeted section.
// Returns false without committing when the section does not exist.
func (s *Store) UpdateSectionMeta(sectionID string, patch SectionMetaPatch) bool {
	return s.commit(func(doc *document.ResumeDocument) bool {
		sec := doc.SectionByID(sectionID)
		if sec == nil {
			return false
		}
		if patch.Title != nil {
			sec.Title = *patch.Title
		}
		if patch.Enabled != nil {
			sec.Enabled = *patch.Enabled
		}
		return true
	})
}

// UpdateSectionContent replaces a section's content wholesale. The caller is
// responsible for a shape-correct sequence; the store does not re-normalize
// on write (normalization is a read-time concern, see NormalizedContent).
func (s *Store) UpdateSectionContent(sectionID string, content []document.Record) bool {
	return s.commit(func(doc *document.ResumeDocument) bool {
		sec := doc.SectionByID(sectionID)
		if sec == nil {
			return false
		}
		sec.Content = document.CloneContent(content)
		return true
	})
}

// AddSection appends a new enabled section of the given type with a fresh
// client-generated ID, empty content, and default settings. Returns the new
// section's ID.
func (s *Store) AddSection(t document.SectionType) (string, bool) {
	id := document.NewSectionID()
	ok := s.commit(func(doc *document.ResumeDocument) bool {
		doc.Sections = append(doc.Sections, document.Section{
			ID:       id,
			Type:     t,
			Title:    document.DefaultTitle(t),
			Enabled:  true,
			Order:    len(doc.Sections),
			Content:  []document.Record{},
			Settings: defaultSettings(),
		})
		return true
	})
	if !ok {
		return "", false
	}
	return id, true
}

// RemoveSection deletes the section and renumbers the remaining order values
// to be contiguous from zero.
func (s *Store) RemoveSection(sectionID string) bool {
	return s.commit(func(doc *document.ResumeDocument) bool {
		idx := indexOf(doc, sectionID)
		if idx < 0 {
			return false
		}
		doc.Sections = append(doc.Sections[:idx], doc.Sections[idx+1:]...)
		renumber(doc)
		return true
	})
}

// ReorderSection moves the section to newOrder, clamped to the valid range,
// shifting the sections in between by one position. Section IDs are
// preserved; every order value is rewritten to match array index afterward.
func (s *Store) ReorderSection(sectionID string, newOrder int) bool {
	return s.commit(func(doc *document.ResumeDocument) bool {
		idx := indexOf(doc, sectionID)
		if idx < 0 {
			return false
		}
		target := newOrder
		if target < 0 {
			target = 0
		}
		if last := len(doc.Sections) - 1; target > last {
			target = last
		}
		moved := doc.Sections[idx]
		doc.Sections = append(doc.Sections[:idx], doc.Sections[idx+1:]...)
		doc.Sections = append(doc.Sections[:target], append([]document.Section{moved}, doc.Sections[target:]...)...)
		renumber(doc)
		return true
	})
}

// SetSectionVisibility is a convenience wrapper over UpdateSectionMeta.
func (s *Store) SetSectionVisibility(sectionID string, enabled bool) bool {
	return s.UpdateSectionMeta(sectionID, SectionMetaPatch{Enabled: &enabled})
}

// NormalizedContent returns the section's content healed to its type's shape
// contract. When healing was needed, the corrected content is written back
// through UpdateSectionContent so persisted state self-repairs; calling this
// twice in a row commits at most once. Returns false when the section does
// not exist.
func (s *Store) NormalizedContent(sectionID string) ([]document.Record, bool) {
	if s.current == nil {
		return nil, false
	}
	sec := s.current.SectionByID(sectionID)
	if sec == nil {
		return nil, false
	}
	normalized, changed := document.Normalize(*sec)
	if changed {
		s.UpdateSectionContent(sectionID, normalized.Content)
	}
	return normalized.Clone().Content, true
}

// Undo restores the previous committed state. Safe no-op when there is
// nothing to undo.
func (s *Store) Undo() bool {
	restored, ok := s.history.Undo(s.current)
	if !ok {
		return false
	}
	s.current = restored
	return true
}

// Redo restores the state an undo stepped back from. Safe no-op when there
// is nothing to redo.
func (s *Store) Redo() bool {
	restored, ok := s.history.Redo(s.current)
	if !ok {
		return false
	}
	s.current = restored
	return true
}

// commit runs mutate against a clone of the current document. When mutate
// reports a real change, the clone becomes current and the previous state
// goes onto the undo history; otherwise nothing happens, including no
// history entry.
func (s *Store) commit(mutate func(*document.ResumeDocument) bool) bool {
	if s.current == nil {
		return false
	}
	next := s.current.Clone()
	if !mutate(next) {
		return false
	}
	next.Metadata.UpdatedAt = s.now().UTC()
	s.history.Record(s.current)
	s.current = next
	return true
}

func indexOf(doc *document.ResumeDocument, sectionID string) int {
	for i := range doc.Sections {
		if doc.Sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}

// renumber rewrites every section's order to match its array index.
func renumber(doc *document.ResumeDocument) {
	for i := range doc.Sections {
		doc.Sections[i].Order = i
	}
}

func defaultSettings() map[string]any {
	return map[string]any{
		"visibility": "public",
		"layout":     "standard",
	}
}
