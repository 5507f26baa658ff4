package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/resumatehq/resumate/internal/ai"
	"github.com/resumatehq/resumate/internal/config"
	"github.com/resumatehq/resumate/internal/db"
	"github.com/resumatehq/resumate/internal/export"
	"github.com/resumatehq/resumate/internal/server/middleware"
	"github.com/resumatehq/resumate/internal/server/ratelimit"
	"github.com/resumatehq/resumate/internal/share"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	logger      *zap.Logger
	validator   *validator.Validate
	rateLimiter *ratelimit.Limiter
	sessions    *SessionRegistry

	resumes   ResumeStore
	shares    ShareStore
	suggester Suggester
	exporter  export.Renderer

	userService *UserService
	jwtService  *JWTService
	authHandler *AuthHandler

	allowedOrigins []string

	// Owned connections, closed on shutdown. Nil when the backing store
	// was injected for tests.
	database   *db.DB
	shareStore *share.Store
	aiClient   ai.Client
}

// New creates a server wired to its backends. Redis and the Gemini API are
// optional; the corresponding routes answer 503 when they are not configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		logger:         logger,
		validator:      validator.New(),
		sessions:       NewSessionRegistry(0),
		resumes:        database,
		database:       database,
		allowedOrigins: cfg.AllowedOrigins,
	}
	s.sessions.SetHistoryLimit(cfg.HistoryLimit)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	if cfg.RedisURL != "" {
		shareStore, err := share.NewStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.shareStore = shareStore
		s.shares = shareStore
	}

	if cfg.APIKey != "" {
		client, err := ai.NewGeminiClient(ctx, ai.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		s.aiClient = client
		s.suggester = ai.NewSuggester(client)
	}

	exporter := export.NewPDFExporter()
	exporter.ChromePath = cfg.ChromePath
	s.exporter = exporter

	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /shared/{slug}", s.handleSharedPage)
	mux.HandleFunc("GET /templates", s.handleListTemplates)

	// Everything below requires a valid token
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protect := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protect("GET /auth/me", s.handleMe)
	protect("POST /auth/password", s.handleUpdatePassword)

	// Resume CRUD
	protect("GET /resumes", s.handleListResumes)
	protect("POST /resumes", s.handleCreateResume)
	protect("POST /resumes/import", s.handleImportResume)
	protect("GET /resumes/{id}", s.handleGetResume)
	protect("PUT /resumes/{id}", s.handleUpdateResume)
	protect("DELETE /resumes/{id}", s.handleDeleteResume)

	// Sharing and export
	protect("POST /resumes/{id}/share", s.handleCreateShare)
	protect("DELETE /share/{slug}", s.handleRevokeShare)
	protect("GET /export/{id}", s.handleExportPDF)

	// Editing sessions
	protect("POST /resumes/{id}/sessions", s.handleOpenSession)
	protect("GET /sessions/{id}", s.handleGetSession)
	protect("DELETE /sessions/{id}", s.handleCloseSession)
	protect("PATCH /sessions/{id}/document", s.handleUpdateDocumentMeta)
	protect("POST /sessions/{id}/sections", s.handleAddSection)
	protect("PATCH /sessions/{id}/sections/{section_id}", s.handleUpdateSectionMeta)
	protect("DELETE /sessions/{id}/sections/{section_id}", s.handleRemoveSection)
	protect("PUT /sessions/{id}/sections/{section_id}/content", s.handleUpdateSectionContent)
	protect("GET /sessions/{id}/sections/{section_id}/content", s.handleNormalizedContent)
	protect("POST /sessions/{id}/sections/{section_id}/move", s.handleMoveSection)
	protect("POST /sessions/{id}/undo", s.handleUndo)
	protect("POST /sessions/{id}/redo", s.handleRedo)
	protect("GET /sessions/{id}/preview", s.handlePreview)
	protect("POST /sessions/{id}/save", s.handleSaveSession)

	// AI suggestions
	protect("POST /sessions/{id}/suggest/summary", s.handleSuggestSummary)
	protect("POST /sessions/{id}/suggest/bullets", s.handleSuggestBullets)
	protect("POST /sessions/{id}/suggest/skills", s.handleSuggestSkills)
	protect("POST /sessions/{id}/suggest/rewrite", s.handleRewrite)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	s.sessions.StartSweeper(5 * time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.sessions.StopSweeper()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.shareStore != nil {
		_ = s.shareStore.Close()
	}
	if s.aiClient != nil {
		_ = s.aiClient.Close()
	}
	if s.database != nil {
		s.database.Close()
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the configured origins.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the authenticated user's profile.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	s.authHandler.MeWithUserID(w, r, userID)
}

// handleUpdatePassword handles password update requests for the authenticated user.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requestUser(w, r)
	if !ok {
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is ignored
// because it is attacker controlled without a trusted proxy in front.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
