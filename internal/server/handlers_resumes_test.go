package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumatehq/resumate/internal/db"
	"github.com/resumatehq/resumate/internal/document"
)

func TestResumeCRUDOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	// Create
	rec := ts.do(t, "POST", "/resumes", token, CreateResumeRequest{Title: "Backend Resume"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeJSON[ResumeResponse](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)

	var doc document.ResumeDocument
	require.NoError(t, json.Unmarshal(created.Document, &doc))
	assert.Equal(t, "Backend Resume", doc.Title)
	assert.Equal(t, "modern", doc.TemplateID)

	// List
	rec = ts.do(t, "GET", "/resumes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summaries := decodeJSON[[]db.ResumeSummary](t, rec)
	require.Len(t, summaries, 1)
	assert.Equal(t, created.ID, summaries[0].ID)

	// Get
	rec = ts.do(t, "GET", "/resumes/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[ResumeResponse](t, rec)
	assert.Equal(t, "Backend Resume", got.Title)

	// Update
	doc.Title = "Renamed"
	data, err := json.Marshal(&doc)
	require.NoError(t, err)
	rec = ts.do(t, "PUT", "/resumes/"+created.ID.String(), token, UpdateResumeRequest{
		Title: "Renamed", Document: data,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, "GET", "/resumes/"+created.ID.String(), token, nil)
	got = decodeJSON[ResumeResponse](t, rec)
	assert.Equal(t, "Renamed", got.Title)

	// Delete
	rec = ts.do(t, "DELETE", "/resumes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, "GET", "/resumes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResumeOwnershipOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.newUser(t)
	_, strangerToken := ts.newUser(t)

	rec := ts.do(t, "POST", "/resumes", ownerToken, CreateResumeRequest{Title: "Private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeJSON[ResumeResponse](t, rec).ID.String()

	rec = ts.do(t, "GET", "/resumes/"+id, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign resumes read as absent")

	rec = ts.do(t, "DELETE", "/resumes/"+id, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, "GET", "/resumes", strangerToken, nil)
	assert.Empty(t, decodeJSON[[]db.ResumeSummary](t, rec))
}

func TestCreateResumeValidation(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	rec := ts.do(t, "POST", "/resumes", token, CreateResumeRequest{Title: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, "POST", "/resumes", token, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateResumeRejectsInvalidDocument(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	rec := ts.do(t, "POST", "/resumes", token, CreateResumeRequest{Title: "R"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeJSON[ResumeResponse](t, rec).ID.String()

	// Sections must be an array per the document schema
	rec = ts.do(t, "PUT", "/resumes/"+id, token, UpdateResumeRequest{
		Title: "R", Document: json.RawMessage(`{"title":"R","sections":{}}`),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetResumeBadID(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	rec := ts.do(t, "GET", "/resumes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTemplates(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/templates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "modern", body["default"])
	assert.Contains(t, body["templates"], "classic")
}
