package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatehq/resumate/internal/document"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Ada</title><style>p { color: red }</style></head>
<body>
<nav><li>Home</li><li>Contact</li></nav>
<h1>Ada Lovelace</h1>
<p>Mathematician and programmer</p>
<h2>Work Experience</h2>
<li>Programmer at Analytical Engines Ltd, 1842-1843</li>
<li>Translator and annotator, scientific memoirs</li>
<h2>Skills</h2>
<p>Mathematics, Analysis | Computing</p>
<h2>Hobbies</h2>
<p>Horse racing models</p>
<footer><p>copyright</p></footer>
</body></html>`

func TestParseExtractsStructure(t *testing.T) {
	draft, err := Parse(strings.NewReader(samplePage))

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", draft.Name)
	assert.Equal(t, "Mathematician and programmer", draft.Headline)

	require.Len(t, draft.Sections, 3)
	assert.Equal(t, "Work Experience", draft.Sections[0].Title)
	assert.Len(t, draft.Sections[0].Lines, 2)
	assert.Equal(t, "Skills", draft.Sections[1].Title)
	assert.Equal(t, "Hobbies", draft.Sections[2].Title)
}

func TestParseIgnoresChrome(t *testing.T) {
	draft, err := Parse(strings.NewReader(samplePage))

	require.NoError(t, err)
	for _, sec := range draft.Sections {
		for _, line := range sec.Lines {
			assert.NotEqual(t, "Home", line, "nav items must be dropped")
			assert.NotEqual(t, "copyright", line, "footer must be dropped")
		}
	}
}

func TestParseEmptyPage(t *testing.T) {
	_, err := Parse(strings.NewReader("<html><body></body></html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resume content")
}

func TestDocumentMapsSectionTypes(t *testing.T) {
	draft, err := Parse(strings.NewReader(samplePage))
	require.NoError(t, err)

	doc := draft.Document("Imported Resume", "modern")

	require.Len(t, doc.Sections, 4)

	personal := doc.Sections[0]
	assert.Equal(t, document.TypePersonal, personal.Type)
	assert.Equal(t, "Ada Lovelace", personal.Content[0]["fullName"])
	assert.Equal(t, "Mathematician and programmer", personal.Content[0]["jobTitle"])

	exp := doc.Sections[1]
	assert.Equal(t, document.TypeExperience, exp.Type)
	assert.Equal(t, "Work Experience", exp.Title)
	require.Len(t, exp.Content, 2)
	assert.Contains(t, exp.Content[0]["description"], "Analytical Engines")

	skills := doc.Sections[2]
	assert.Equal(t, document.TypeSkills, skills.Type)
	assert.Equal(t, []any{"Mathematics", "Analysis", "Computing"}, skills.Content[0]["technical"])

	custom := doc.Sections[3]
	assert.Equal(t, document.TypeCustom, custom.Type)
	assert.Equal(t, "Hobbies", custom.Title)
}

func TestDocumentOrderIsContiguous(t *testing.T) {
	draft, err := Parse(strings.NewReader(samplePage))
	require.NoError(t, err)

	doc := draft.Document("Imported", "modern")

	for i, sec := range doc.Sections {
		assert.Equal(t, i, sec.Order)
		assert.NotEmpty(t, sec.ID)
		assert.True(t, sec.Enabled)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		heading string
		want    document.SectionType
	}{
		{"Work Experience", document.TypeExperience},
		{"Employment History", document.TypeExperience},
		{"Education", document.TypeEducation},
		{"Technical Skills", document.TypeSkills},
		{"Side Projects", document.TypeProjects},
		{"Certifications & Licenses", document.TypeCertifications},
		{"Awards and Honors", document.TypeAwards},
		{"About Me", document.TypeSummary},
		{"Volunteering", document.TypeCustom},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.heading), "heading %q", tt.heading)
	}
}
