// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrResumeNotFound indicates the resume does not exist or is not owned
// by the requesting user
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrSessionNotFound indicates the editing session does not exist or has expired
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("editing session not found: %s", e.SessionID)
}

// ErrSectionNotFound indicates the section ID does not exist in the document
type ErrSectionNotFound struct {
	SectionID string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found: %s", e.SectionID)
}

// ErrShareNotFound indicates the share link does not exist or has expired
type ErrShareNotFound struct {
	Slug string
}

func (e *ErrShareNotFound) Error() string {
	return fmt.Sprintf("share link not found: %s", e.Slug)
}

// ErrForbidden indicates the authenticated user does not own the resource
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "forbidden"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrUserNotFound, *ErrResumeNotFound, *ErrSessionNotFound,
		*ErrSectionNotFound, *ErrShareNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
