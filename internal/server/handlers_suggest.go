package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/ai"
)

// Suggester is the AI suggestion surface. *ai.Suggester satisfies it; tests
// substitute a fake.
type Suggester interface {
	Summaries(ctx context.Context, in ai.SummaryInput) ([]string, error)
	ExperienceBullets(ctx context.Context, in ai.BulletsInput) ([]string, error)
	Skills(ctx context.Context, jobTitle string, existing []string) ([]string, error)
	Rewrite(ctx context.Context, section, text string) (string, error)
}

// suggestAvailable guards suggestion routes when no API key was configured.
func (s *Server) suggestAvailable(w http.ResponseWriter) bool {
	if s.suggester == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "suggestions are not configured")
		return false
	}
	return true
}

func (s *Server) handleSuggestSummary(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.getSession(w, r); !ok {
		return
	}
	if !s.suggestAvailable(w) {
		return
	}

	var req SuggestSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	suggestions, err := s.suggester.Summaries(r.Context(), ai.SummaryInput{
		JobTitle: req.JobTitle,
		Existing: req.Existing,
		Skills:   req.Skills,
	})
	if err != nil {
		s.logger.Error("summary suggestion failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "suggestion generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleSuggestBullets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.getSession(w, r); !ok {
		return
	}
	if !s.suggestAvailable(w) {
		return
	}

	var req SuggestBulletsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	suggestions, err := s.suggester.ExperienceBullets(r.Context(), ai.BulletsInput{
		Company:  req.Company,
		Position: req.Position,
		Existing: req.Existing,
	})
	if err != nil {
		s.logger.Error("bullet suggestion failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "suggestion generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.getSession(w, r); !ok {
		return
	}
	if !s.suggestAvailable(w) {
		return
	}

	var req SuggestSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	suggestions, err := s.suggester.Skills(r.Context(), req.JobTitle, req.Existing)
	if err != nil {
		s.logger.Error("skill suggestion failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "suggestion generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.getSession(w, r); !ok {
		return
	}
	if !s.suggestAvailable(w) {
		return
	}

	var req RewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	rewritten, err := s.suggester.Rewrite(r.Context(), req.Section, req.Text)
	if err != nil {
		s.logger.Error("rewrite failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "suggestion generation failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"text": rewritten})
}
