package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/document"
	"github.com/resumatehq/resumate/internal/preview"
	"github.com/resumatehq/resumate/internal/render"
	"github.com/resumatehq/resumate/internal/share"
)

// ShareStore is the share link surface. *share.Store satisfies it; tests
// substitute a fake.
type ShareStore interface {
	Create(ctx context.Context, resumeID uuid.UUID, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, slug string) (share.Link, error)
	Revoke(ctx context.Context, slug string) error
	RecordView(ctx context.Context, slug string) (int64, error)
}

// shareAvailable guards share routes when no Redis backend was configured.
func (s *Server) shareAvailable(w http.ResponseWriter) bool {
	if s.shares == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "sharing is not configured")
		return false
	}
	return true
}

// handleCreateShare mints a share link for an owned resume.
func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	if !s.shareAvailable(w) {
		return
	}
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

	var req ShareRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.validator.Struct(req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
			return
		}
	}

	slug, err := s.shares.Create(r.Context(), resumeID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		s.logger.Error("failed to create share link", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create share link")
		return
	}

	s.jsonResponse(w, http.StatusCreated, ShareResponse{
		Slug: slug,
		URL:  "/shared/" + slug,
	})
}

// handleRevokeShare deletes a share link. Only the resume owner may revoke.
func (s *Server) handleRevokeShare(w http.ResponseWriter, r *http.Request) {
	if !s.shareAvailable(w) {
		return
	}
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	slug := r.PathValue("slug")

	link, err := s.shares.Resolve(r.Context(), slug)
	if err != nil {
		notFound := &ErrShareNotFound{Slug: slug}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if _, ok := s.loadResume(w, r, userID, link.ResumeID); !ok {
		return
	}

	if err := s.shares.Revoke(r.Context(), slug); err != nil {
		s.logger.Error("failed to revoke share link", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to revoke share link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSharedPage serves the public HTML page for a share link. No
// authentication; the slug is the capability.
func (s *Server) handleSharedPage(w http.ResponseWriter, r *http.Request) {
	if !s.shareAvailable(w) {
		return
	}
	slug := r.PathValue("slug")

	link, err := s.shares.Resolve(r.Context(), slug)
	if err != nil {
		notFound := &ErrShareNotFound{Slug: slug}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	resume, err := s.resumes.GetPublicResume(r.Context(), link.ResumeID)
	if err != nil || resume == nil {
		notFound := &ErrShareNotFound{Slug: slug}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	var doc document.ResumeDocument
	if err := json.Unmarshal(resume.Document, &doc); err != nil {
		s.logger.Error("stored document is not valid JSON",
			zap.String("resume_id", link.ResumeID.String()), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "stored document is corrupt")
		return
	}

	page, err := render.HTML(preview.Render(&doc))
	if err != nil {
		s.logger.Error("failed to render shared page", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	if _, err := s.shares.RecordView(r.Context(), slug); err != nil {
		// Counter failures do not block the page.
		s.logger.Warn("failed to record share view", zap.Error(err))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
