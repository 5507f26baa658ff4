package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownType(t *testing.T) {
	for _, typ := range KnownTypes {
		assert.True(t, KnownType(typ))
	}
	assert.False(t, KnownType("hobbies"))
	assert.False(t, KnownType(""))
}

func TestNewDocument(t *testing.T) {
	doc := New("My Resume", "modern")
	assert.Equal(t, "My Resume", doc.Title)
	assert.Equal(t, "modern", doc.TemplateID)
	assert.Empty(t, doc.ID)
	assert.NotNil(t, doc.Sections)
	assert.False(t, doc.Metadata.CreatedAt.IsZero())
}

func TestSectionByID(t *testing.T) {
	doc := New("r", "modern")
	doc.Sections = []Section{
		{ID: "a", Type: TypeSummary},
		{ID: "b", Type: TypeExperience},
	}

	sec := doc.SectionByID("b")
	assert.NotNil(t, sec)
	assert.Equal(t, TypeExperience, sec.Type)

	// The pointer aliases the stored section
	sec.Title = "Work"
	assert.Equal(t, "Work", doc.Sections[1].Title)

	assert.Nil(t, doc.SectionByID("missing"))
}

func TestNewSectionIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewSectionID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "Experience", DefaultTitle(TypeExperience))
	assert.NotEmpty(t, DefaultTitle("anything"))
}
