package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Novip1906/join/internal/firebase"
)

type note struct {
	Text  string            `json:"text"`
	Tags  map[string]string `json:"tags,omitempty"`
	Count int               `json:"count"`
}

func TestMemoryStoragePostGet(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	k1, err := s.Post(ctx, "notes", note{Text: "first"})
	require.NoError(t, err)
	k2, err := s.Post(ctx, "notes", note{Text: "second"})
	require.NoError(t, err)
	assert.Less(t, k1, k2)

	all := map[string]note{}
	require.NoError(t, s.Get(ctx, "notes", &all))
	assert.Equal(t, "first", all[k1].Text)
	assert.Equal(t, "second", all[k2].Text)
}

func TestMemoryStorageMissingPath(t *testing.T) {
	s := NewMemoryStorage()

	var n note
	err := s.Get(context.Background(), "notes/nope", &n)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, firebase.ErrNotFound)
}

func TestMemoryStoragePatchAndNestedPut(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "notes/a", note{Text: "a", Count: 1}))
	require.NoError(t, s.Put(ctx, "notes/a/tags/x", "y"))
	require.NoError(t, s.Patch(ctx, "notes/a", map[string]any{"count": 2}))

	var n note
	require.NoError(t, s.Get(ctx, "notes/a", &n))
	assert.Equal(t, note{Text: "a", Count: 2, Tags: map[string]string{"x": "y"}}, n)

	require.NoError(t, s.Patch(ctx, "notes/a", map[string]any{"tags": nil}))
	n = note{}
	require.NoError(t, s.Get(ctx, "notes/a", &n))
	assert.Nil(t, n.Tags)
}

func TestMemoryStorageRejectsRootWritesAndScalarPatch(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	assert.ErrorIs(t, s.Put(ctx, "/", note{}), ErrRootWrite)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrRootWrite)
	assert.ErrorIs(t, s.Patch(ctx, "notes/a", "scalar"), ErrNotAnObject)
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "notes/a", note{Text: "a"}))
	require.NoError(t, s.Delete(ctx, "notes/a"))

	all := map[string]note{}
	assert.ErrorIs(t, s.Get(ctx, "notes", &all), ErrNotFound)
}

func TestMemoryRevocationsExpire(t *testing.T) {
	r := NewMemoryRevocations()
	now := time.Unix(1_700_000_000, 0)
	r.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, r.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.RevokeToken(ctx, "jti-2", 0))
	revoked, _ = r.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)
}
