package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/db"
	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/render"
	"github.com/resumatehq/resumate/internal/schemas"
	"github.com/resumatehq/resumate/internal/server/middleware"
)

// ResumeStore is the resume persistence surface the handlers need.
// *db.DB satisfies it; tests substitute a fake.
type ResumeStore interface {
	CreateResume(ctx context.Context, userID uuid.UUID, title string, document []byte) (uuid.UUID, error)
	GetResume(ctx context.Context, userID, resumeID uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.ResumeSummary, error)
	UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, title string, document []byte) error
	DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error
	GetPublicResume(ctx context.Context, resumeID uuid.UUID) (*db.Resume, error)
}

// requestUser returns the authenticated user, or writes a 401 and returns
// false. The auth middleware always sets it; this guards misconfigured routes.
func (s *Server) requestUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses the named path value as a UUID, or writes a 400 and
// returns false.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// loadResume fetches a resume owned by the user, writing the error response
// on failure.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request, userID, resumeID uuid.UUID) (*db.Resume, bool) {
	resume, err := s.resumes.GetResume(r.Context(), userID, resumeID)
	if err != nil {
		s.logger.Error("failed to load resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume")
		return nil, false
	}
	if resume == nil {
		notFound := &ErrResumeNotFound{ResumeID: resumeID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}
	return resume, true
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	summaries, err := s.resumes.ListResumes(r.Context(), userID)
	if err != nil {
		s.logger.Error("failed to list resumes", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	s.jsonResponse(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}

	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = render.DefaultTemplate
	}

	doc := document.New(req.Title, templateID)
	data, err := json.Marshal(doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode document")
		return
	}

	id, err := s.resumes.CreateResume(r.Context(), userID, req.Title, data)
	if err != nil {
		s.logger.Error("failed to create resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create resume")
		return
	}

	s.jsonResponse(w, http.StatusCreated, ResumeResponse{
		ID:       id,
		Title:    req.Title,
		Document: data,
	})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, ResumeResponse{
		ID:        resume.ID,
		Title:     resume.Title,
		Document:  resume.Document,
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	})
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	resumeID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if err := schemas.ValidateResume(req.Document); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok := s.loadResume(w, r, userID, resumeID); !ok {
		return
	}

	if err := s.resumes.UpdateResume(r.Context(), userID, resumeID, req.Title, req.Document); err != nil {
		s.logger.Error("failed to update resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to update resume")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "resume updated"})
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	resumeID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, ok := s.loadResume(w, r, userID, resumeID); !ok {
		return
	}

	if err := s.resumes.DeleteResume(r.Context(), userID, resumeID); err != nil {
		s.logger.Error("failed to delete resume", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete resume")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListTemplates returns the available preview template IDs.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": render.Available(),
		"default":   render.DefaultTemplate,
	})
}
