package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/export"
	"github.com/resumatehq/resumate/internal/importer"
	"github.com/resumatehq/resumate/internal/render"
)

// handleExportPDF renders an owned resume to PDF.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
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

	pdf, err := export.Document(r.Context(), s.exporter, &doc)
	if err != nil {
		s.logger.Error("pdf export failed",
			zap.String("resume_id", resumeID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "pdf export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(doc.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleImportResume builds a new resume from an uploaded HTML page. The
// body is the raw HTML; title and template come from query parameters.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	draft, err := importer.Parse(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to parse html: "+err.Error())
		return
	}

	title := r.URL.Query().Get("title")
	if title == "" {
		title = "Imported Resume"
	}
	templateID := r.URL.Query().Get("template")
	if templateID == "" {
		templateID = render.DefaultTemplate
	}

	doc := draft.Document(title, templateID)
	data, err := json.Marshal(doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode document")
		return
	}

	id, err := s.resumes.CreateResume(r.Context(), userID, title, data)
	if err != nil {
		s.logger.Error("failed to store imported resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create resume")
		return
	}

	s.logger.Info("resume imported",
		zap.String("resume_id", id.String()),
		zap.Int("sections", len(doc.Sections)))
	s.jsonResponse(w, http.StatusCreated, ResumeResponse{
		ID:       id,
		Title:    title,
		Document: data,
	})
}
