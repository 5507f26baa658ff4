// Package share manages public share links for resumes, backed by Redis.
// Each link maps an opaque slug to a resume ID with an optional expiry,
// and a per-link view counter tracks how often the shared page was opened.
package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Link is the data stored for each share slug
type Link struct {
	ResumeID  uuid.UUID `json:"resume_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store implements share link storage using Redis
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore creates a new Redis-backed share store
func NewStore(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client, prefix: "share:"}, nil
}

// NewStoreWithClient creates a store from an existing Redis client
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: "share:"}
}

func (s *Store) linkKey(slug string) string {
	return s.prefix + "link:" + slug
}

func (s *Store) viewsKey(slug string) string {
	return s.prefix + "views:" + slug
}

// NewSlug returns a random URL-safe share slug
func NewSlug() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate slug: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Create stores a new share link and returns its slug. A zero ttl means
// the link never expires.
func (s *Store) Create(ctx context.Context, resumeID uuid.UUID, ttl time.Duration) (string, error) {
	slug, err := NewSlug()
	if err != nil {
		return "", err
	}

	data := Link{ResumeID: resumeID, CreatedAt: time.Now()}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal share link: %w", err)
	}

	if err := s.client.Set(ctx, s.linkKey(slug), jsonData, ttl).Err(); err != nil {
		return "", fmt.Errorf("save share link: %w", err)
	}
	return slug, nil
}

// Resolve looks up the resume a slug points to
func (s *Store) Resolve(ctx context.Context, slug string) (Link, error) {
	jsonData, err := s.client.Get(ctx, s.linkKey(slug)).Result()
	if err == redis.Nil {
		return Link{}, fmt.Errorf("share link not found or expired")
	}
	if err != nil {
		return Link{}, fmt.Errorf("lookup share link: %w", err)
	}

	var data Link
	if err := json.Unmarshal([]byte(jsonData), &data); err != nil {
		return Link{}, fmt.Errorf("unmarshal share link: %w", err)
	}
	return data, nil
}

// Revoke deletes a share link and its view counter
func (s *Store) Revoke(ctx context.Context, slug string) error {
	if err := s.client.Del(ctx, s.linkKey(slug), s.viewsKey(slug)).Err(); err != nil {
		return fmt.Errorf("revoke share link: %w", err)
	}
	return nil
}

// RecordView increments the view counter and returns the new total
func (s *Store) RecordView(ctx context.Context, slug string) (int64, error) {
	views, err := s.client.Incr(ctx, s.viewsKey(slug)).Result()
	if err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	return views, nil
}

// Views returns the current view count for a slug
func (s *Store) Views(ctx context.Context, slug string) (int64, error) {
	views, err := s.client.Get(ctx, s.viewsKey(slug)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get view count: %w", err)
	}
	return views, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
