package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createShareableResume(t *testing.T, ts *testServer, token string) string {
	t.Helper()
	rec := ts.do(t, "POST", "/resumes", token, CreateResumeRequest{Title: "Shared Resume"})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeJSON[ResumeResponse](t, rec).ID.String()
}

func TestShareLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)
	resumeID := createShareableResume(t, ts, token)

	// Create link
	rec := ts.do(t, "POST", "/resumes/"+resumeID+"/share", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	link := decodeJSON[ShareResponse](t, rec)
	require.NotEmpty(t, link.Slug)
	assert.Equal(t, "/shared/"+link.Slug, link.URL)

	// Public page needs no token
	rec = ts.do(t, "GET", link.URL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Shared Resume")

	// Views are counted
	ts.do(t, "GET", link.URL, "", nil)
	assert.Equal(t, int64(2), ts.shares.views[link.Slug])

	// Revoke
	rec = ts.do(t, "DELETE", "/share/"+link.Slug, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, "GET", link.URL, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareRequiresOwnership(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.newUser(t)
	_, strangerToken := ts.newUser(t)
	resumeID := createShareableResume(t, ts, ownerToken)

	rec := ts.do(t, "POST", "/resumes/"+resumeID+"/share", strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, "POST", "/resumes/"+resumeID+"/share", ownerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	slug := decodeJSON[ShareResponse](t, rec).Slug

	rec = ts.do(t, "DELETE", "/share/"+slug, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "only the owner may revoke")
}

func TestShareUnknownSlug(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, "GET", "/shared/no-such-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareUnconfigured(t *testing.T) {
	ts := newTestServer(t)
	ts.Server.shares = nil
	_, token := ts.newUser(t)
	resumeID := createShareableResume(t, ts, token)

	rec := ts.do(t, "POST", "/resumes/"+resumeID+"/share", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = ts.do(t, "GET", "/shared/any", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportPDF(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)
	resumeID := createShareableResume(t, ts, token)

	rec := ts.do(t, "GET", "/export/"+resumeID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shared-resume.pdf")
	assert.Contains(t, rec.Body.String(), "%PDF")
}

func TestExportRequiresOwnership(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.newUser(t)
	_, strangerToken := ts.newUser(t)
	resumeID := createShareableResume(t, ts, ownerToken)

	rec := ts.do(t, "GET", "/export/"+resumeID, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportResume(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	page := `<html><body>
		<h1>Grace Hopper</h1>
		<h2>Experience</h2>
		<p>Rear Admiral, US Navy</p>
		<h2>Skills</h2>
		<p>COBOL, compilers, debugging</p>
	</body></html>`

	rec := ts.do(t, "POST", "/resumes/import?title=Imported", token, page)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeJSON[ResumeResponse](t, rec)
	assert.Equal(t, "Imported", created.Title)
	assert.Contains(t, string(created.Document), "Grace Hopper")

	// The import landed in storage
	rec = ts.do(t, "GET", "/resumes/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestImportRejectsEmptyPage(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.newUser(t)

	rec := ts.do(t, "POST", "/resumes/import", token, "<html><body></body></html>")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
