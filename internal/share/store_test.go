package share

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewStore("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, s
}

func TestCreateAndResolve(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	resumeID := uuid.New()
	slug, err := store.Create(ctx, resumeID, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, slug)

	link, err := store.Resolve(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, resumeID, link.ResumeID)
	assert.False(t, link.CreatedAt.IsZero())
}

func TestResolveUnknownSlug(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Resolve(context.Background(), "no-such-slug")
	assert.Error(t, err)
}

func TestLinkExpiry(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	slug, err := store.Create(ctx, uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = store.Resolve(ctx, slug)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, slug)
	assert.Error(t, err)
}

func TestRevoke(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	slug, err := store.Create(ctx, uuid.New(), 0)
	require.NoError(t, err)

	_, err = store.RecordView(ctx, slug)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, slug))

	_, err = store.Resolve(ctx, slug)
	assert.Error(t, err)

	views, err := store.Views(ctx, slug)
	require.NoError(t, err)
	assert.Zero(t, views)
}

func TestViewCounter(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	slug, err := store.Create(ctx, uuid.New(), 0)
	require.NoError(t, err)

	views, err := store.Views(ctx, slug)
	require.NoError(t, err)
	assert.Zero(t, views)

	for i := int64(1); i <= 3; i++ {
		n, err := store.RecordView(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	views, err = store.Views(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, int64(3), views)
}

func TestSlugUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		slug, err := NewSlug()
		require.NoError(t, err)
		assert.Len(t, slug, 16)
		assert.False(t, seen[slug])
		seen[slug] = true
	}
}
