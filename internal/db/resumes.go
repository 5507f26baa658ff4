package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume stores a new resume document for a user and returns its ID
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title string, document []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, document)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, title, document,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume owned by the given user. Returns nil if the
// resume does not exist or belongs to someone else.
func (db *DB) GetResume(ctx context.Context, userID, resumeID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, document, created_at, updated_at
		 FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.Document, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumes returns summaries of a user's resumes, newest first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	summaries := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resume rows: %w", err)
	}
	return summaries, nil
}

// UpdateResume replaces a resume's title and document body
func (db *DB) UpdateResume(ctx context.Context, userID, resumeID uuid.UUID, title string, document []byte) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET title = $1, document = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4`,
		title, document, resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %s not found", resumeID)
	}
	return nil
}

// DeleteResume removes a resume owned by the given user
func (db *DB) DeleteResume(ctx context.Context, userID, resumeID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		resumeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %s not found", resumeID)
	}
	return nil
}

// GetPublicResume retrieves a resume by ID alone, for share-link rendering
func (db *DB) GetPublicResume(ctx context.Context, resumeID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, document, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		resumeID,
	).Scan(&r.ID, &r.UserID, &r.Title, &r.Document, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}
