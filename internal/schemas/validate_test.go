package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatehq/resumate/internal/document"
)

func TestValidateResumeAcceptsCoreDocument(t *testing.T) {
	doc := document.New("My Resume", "modern")
	doc.Sections = []document.Section{
		{
			ID: "sec-1", Type: document.TypeExperience, Title: "Experience",
			Enabled: true, Order: 0,
			Content: []document.Record{{"company": "Initech"}},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	assert.NoError(t, ValidateResume(data))
}

func TestValidateResumeRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing title", `{"sections": []}`},
		{"empty title", `{"title": "", "sections": []}`},
		{"sections not array", `{"title": "r", "sections": {}}`},
		{"section without id", `{"title": "r", "sections": [{"type": "summary"}]}`},
		{"section without type", `{"title": "r", "sections": [{"_id": "a"}]}`},
		{"content not array", `{"title": "r", "sections": [{"_id": "a", "type": "summary", "content": "text"}]}`},
		{"negative order", `{"title": "r", "sections": [{"_id": "a", "type": "summary", "order": -1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateResumeMalformedJSON(t *testing.T) {
	err := ValidateResume([]byte(`{not json`))
	assert.Error(t, err)
}
