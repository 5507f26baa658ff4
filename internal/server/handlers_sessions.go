package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/editor"
	"github.com/resumatehq/resumate/internal/preview"
	"github.com/resumatehq/resumate/internal/render"
	"github.com/resumatehq/resumate/internal/schemas"
)

// handleOpenSession loads a stored resume into a fresh editing session.
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	resumeID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	resume, ok := s.loadResume(w, r, userID, resumeID)
	if !ok {
		return
	}

	var doc document.ResumeDocument
	if err := json.Unmarshal(resume.Document, &doc); err != nil {
		s.logger.Error("stored document is not valid JSON",
			zap.String("resume_id", resumeID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "stored document is corrupt")
		return
	}

	session := s.sessions.Open(userID, resumeID, &doc)
	s.logger.Info("editing session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("resume_id", resumeID.String()))

	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(session))
}

// getSession resolves the {id} path value to a session owned by the caller,
// writing the error response on failure. Foreign sessions read as absent so
// the response does not reveal that they exist.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) (*EditSession, bool) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return nil, false
	}
	sessionID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return nil, false
	}

	session, found := s.sessions.Get(sessionID)
	if !found || session.UserID != userID {
		notFound := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}
	return session, true
}

// sessionResponse snapshots the session state for a response body.
func (s *Server) sessionResponse(session *EditSession) SessionResponse {
	resp := SessionResponse{
		SessionID: session.ID,
		ResumeID:  session.ResumeID,
	}
	session.Do(func(st *editor.Store) {
		resp.Document = st.Document()
		resp.CanUndo = st.CanUndo()
		resp.CanRedo = st.CanRedo()
	})
	return resp
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	s.sessions.Close(session.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateDocumentMeta(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req DocumentMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Do(func(st *editor.Store) {
		st.UpdateDocumentMeta(editor.DocumentMetaPatch{
			Title:      req.Title,
			TemplateID: req.TemplateID,
			Language:   req.Language,
		})
	})
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var req AddSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	sectionType := document.SectionType(req.Type)
	if !document.KnownType(sectionType) {
		s.errorResponse(w, http.StatusBadRequest, "unknown section type: "+req.Type)
		return
	}

	var sectionID string
	session.Do(func(st *editor.Store) {
		sectionID, _ = st.AddSection(sectionType)
	})

	s.jsonResponse(w, http.StatusCreated, map[string]string{"section_id": sectionID})
}

// sectionMutation runs a section-scoped store operation and writes the
// session state, or a 404 when the section ID matched nothing.
func (s *Server) sectionMutation(w http.ResponseWriter, r *http.Request, mutate func(st *editor.Store, sectionID string) bool) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	sectionID := r.PathValue("section_id")

	var applied bool
	session.Do(func(st *editor.Store) {
		applied = mutate(st, sectionID)
	})
	if !applied {
		notFound := &ErrSectionNotFound{SectionID: sectionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

func (s *Server) handleUpdateSectionMeta(w http.ResponseWriter, r *http.Request) {
	var req SectionMetaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.sectionMutation(w, r, func(st *editor.Store, sectionID string) bool {
		return st.UpdateSectionMeta(sectionID, editor.SectionMetaPatch{
			Title:   req.Title,
			Enabled: req.Enabled,
		})
	})
}

func (s *Server) handleUpdateSectionContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.sectionMutation(w, r, func(st *editor.Store, sectionID string) bool {
		return st.UpdateSectionContent(sectionID, req.Content)
	})
}

func (s *Server) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.sectionMutation(w, r, func(st *editor.Store, sectionID string) bool {
		return st.ReorderSection(sectionID, req.Order)
	})
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	s.sectionMutation(w, r, func(st *editor.Store, sectionID string) bool {
		return st.RemoveSection(sectionID)
	})
}

// handleNormalizedContent returns the healed content of one section. The
// healed form is written back to the document, so reading it twice is stable.
func (s *Server) handleNormalizedContent(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	sectionID := r.PathValue("section_id")

	var (
		content []document.Record
		found   bool
	)
	session.Do(func(st *editor.Store) {
		content, found = st.NormalizedContent(sectionID)
	})
	if !found {
		notFound := &ErrSectionNotFound{SectionID: sectionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ContentRequest{Content: content})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	session.Do(func(st *editor.Store) {
		st.Undo()
	})
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}
	session.Do(func(st *editor.Store) {
		st.Redo()
	})
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(session))
}

// handlePreview renders the session document. The default response is the
// JSON view; ?format=html returns the rendered template instead, and
// ?template= overrides the document's template for this response only.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var doc *document.ResumeDocument
	session.Do(func(st *editor.Store) {
		doc = st.Document()
	})

	view := preview.Render(doc)
	if override := r.URL.Query().Get("template"); override != "" {
		if !render.Known(override) {
			s.errorResponse(w, http.StatusBadRequest, "unknown template: "+override)
			return
		}
		view.TemplateID = override
	}

	if r.URL.Query().Get("format") != "html" {
		s.jsonResponse(w, http.StatusOK, view)
		return
	}

	page, err := render.HTML(view)
	if err != nil {
		s.logger.Error("failed to render preview", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// handleSaveSession persists the session document back to storage.
func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getSession(w, r)
	if !ok {
		return
	}

	var doc *document.ResumeDocument
	session.Do(func(st *editor.Store) {
		doc = st.Document()
	})

	data, err := json.Marshal(doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode document")
		return
	}
	if err := schemas.ValidateResume(data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.resumes.UpdateResume(r.Context(), session.UserID, session.ResumeID, doc.Title, data); err != nil {
		s.logger.Error("failed to save session", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to save resume")
		return
	}

	s.logger.Info("session saved",
		zap.String("session_id", session.ID.String()),
		zap.String("resume_id", session.ResumeID.String()))
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "resume saved"})
}
