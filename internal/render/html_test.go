package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatehq/resumate/internal/preview"
)

func sampleView(templateID string) preview.View {
	return preview.View{
		Title:      "Ada's Resume",
		TemplateID: templateID,
		Personal: preview.Personal{
			FullName: "Ada Lovelace",
			Email:    "ada@example.com",
		},
		Summary: "Engineer and analyst.",
		Sections: []preview.Block{
			{
				ID:    "exp",
				Type:  "experience",
				Title: "Experience",
				Items: []preview.Item{
					{Heading: "Analytical Engines Ltd", Subheading: "Programmer", Period: "1842 – 1843", Bullets: []string{"Wrote the first program"}},
				},
			},
		},
	}
}

func TestAvailableTemplates(t *testing.T) {
	names := Available()

	require.NotEmpty(t, names)
	assert.Contains(t, names, "modern")
	assert.Contains(t, names, "classic")
	assert.True(t, Known(DefaultTemplate))
	assert.False(t, Known("no-such-template"))
}

func TestHTMLRendersKnownTemplates(t *testing.T) {
	for _, id := range Available() {
		html, err := HTML(sampleView(id))
		require.NoError(t, err, "template %s", id)

		page := string(html)
		assert.Contains(t, page, "Ada Lovelace")
		assert.Contains(t, page, "Analytical Engines Ltd")
		assert.Contains(t, page, "Wrote the first program")
	}
}

func TestHTMLFallsBackForUnknownTemplate(t *testing.T) {
	html, err := HTML(sampleView("no-such-template"))

	require.NoError(t, err)
	assert.Contains(t, string(html), "Ada Lovelace")
}

func TestHTMLEscapesContent(t *testing.T) {
	view := sampleView("modern")
	view.Summary = `<script>alert("x")</script>`

	html, err := HTML(view)

	require.NoError(t, err)
	assert.False(t, strings.Contains(string(html), "<script>alert"), "user content must be escaped")
}

func TestHTMLPlaceholderBlock(t *testing.T) {
	view := sampleView("modern")
	view.Sections = []preview.Block{
		{ID: "exp", Type: "experience", Title: "Experience", Placeholder: true},
	}

	html, err := HTML(view)

	require.NoError(t, err)
	assert.Contains(t, string(html), "Nothing here yet.")
}
