package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"resume not found", &ErrResumeNotFound{ResumeID: uuid.New()}, http.StatusNotFound},
		{"session not found", &ErrSessionNotFound{SessionID: uuid.New()}, http.StatusNotFound},
		{"section not found", &ErrSectionNotFound{SectionID: "sec_x"}, http.StatusNotFound},
		{"share not found", &ErrShareNotFound{Slug: "abc"}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "Email", Message: "required"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessagesNameTheResource(t *testing.T) {
	id := uuid.New()
	assert.Contains(t, (&ErrResumeNotFound{ResumeID: id}).Error(), id.String())
	assert.Contains(t, (&ErrSectionNotFound{SectionID: "sec_7"}).Error(), "sec_7")
	assert.Contains(t, (&ErrShareNotFound{Slug: "s1ug"}).Error(), "s1ug")
}
