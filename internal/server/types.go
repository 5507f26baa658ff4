package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/resumatehq/resumate/internal/document"
)

// User is the API projection of an account, without credential fields.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CreateResumeRequest creates a new stored resume.
type CreateResumeRequest struct {
	Title      string `json:"title" validate:"required,min=1"`
	TemplateID string `json:"template_id,omitempty"`
}

// UpdateResumeRequest replaces the stored title and document of a resume.
type UpdateResumeRequest struct {
	Title    string          `json:"title" validate:"required,min=1"`
	Document json.RawMessage `json:"document" validate:"required"`
}

// ResumeResponse is the API projection of a stored resume. Document is
// passed through as raw JSON rather than re-decoded.
type ResumeResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SessionResponse describes an editing session and its current document state.
type SessionResponse struct {
	SessionID uuid.UUID                `json:"session_id"`
	ResumeID  uuid.UUID                `json:"resume_id"`
	Document  *document.ResumeDocument `json:"document"`
	CanUndo   bool                     `json:"can_undo"`
	CanRedo   bool                     `json:"can_redo"`
}

// DocumentMetaRequest patches document-level display metadata. Nil fields
// are left untouched.
type DocumentMetaRequest struct {
	Title      *string `json:"title,omitempty"`
	TemplateID *string `json:"template_id,omitempty"`
	Language   *string `json:"language,omitempty"`
}

// AddSectionRequest appends a section of the given type.
type AddSectionRequest struct {
	Type string `json:"type" validate:"required"`
}

// SectionMetaRequest patches section title or visibility. Nil fields are
// left untouched.
type SectionMetaRequest struct {
	Title   *string `json:"title,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// ContentRequest replaces a section's content records.
type ContentRequest struct {
	Content []document.Record `json:"content"`
}

// MoveSectionRequest moves a section to a new position.
type MoveSectionRequest struct {
	Order int `json:"order"`
}

// SuggestSummaryRequest asks for professional summary suggestions.
type SuggestSummaryRequest struct {
	JobTitle string   `json:"job_title" validate:"required"`
	Existing string   `json:"existing,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// SuggestBulletsRequest asks for bullet point suggestions for one experience entry.
type SuggestBulletsRequest struct {
	Company  string   `json:"company" validate:"required"`
	Position string   `json:"position" validate:"required"`
	Existing []string `json:"existing,omitempty"`
}

// SuggestSkillsRequest asks for skill suggestions for a target role.
type SuggestSkillsRequest struct {
	JobTitle string   `json:"job_title" validate:"required"`
	Existing []string `json:"existing,omitempty"`
}

// RewriteRequest asks for a rewrite of free-form section text.
type RewriteRequest struct {
	Section string `json:"section" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// SuggestionsResponse carries generated suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ShareRequest creates a share link. A zero TTL means the link never expires.
type ShareRequest struct {
	TTLHours int `json:"ttl_hours,omitempty" validate:"gte=0"`
}

// ShareResponse returns the slug of a created share link.
type ShareResponse struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}
