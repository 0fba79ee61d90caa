package feed

import (
	"testing"
	"time"

	"digitalpen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Replace(samplePosts())

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	assert.Equal(t, "Go Concurrency Patterns", s.Snapshot()[0].Title)
}

func TestStoreMutationIntents(t *testing.T) {
	s := NewStore()
	s.Replace(samplePosts())

	s.ApplyCreate(models.Post{ID: 5, Title: "New Post"})
	assert.Len(t, s.Snapshot(), 5)

	s.ApplyUpdate(models.Post{ID: 5, Title: "Renamed"})
	snap := s.Snapshot()
	assert.Equal(t, "Renamed", snap[4].Title)

	s.ApplyLike(5, 7)
	assert.Equal(t, 7, s.Snapshot()[4].Likes)

	s.ApplyDelete(5)
	assert.Len(t, s.Snapshot(), 4)

	// Intents on unknown ids are no-ops.
	s.ApplyUpdate(models.Post{ID: 99, Title: "ghost"})
	s.ApplyLike(99, 1)
	s.ApplyDelete(99)
	assert.Len(t, s.Snapshot(), 4)
}

func TestStoreEditFlow(t *testing.T) {
	s := NewStore()
	s.Replace(samplePosts())

	_, editing := s.Editing()
	assert.False(t, editing)

	post, err := s.BeginEdit(2)
	require.NoError(t, err)
	assert.Equal(t, "Baking Sourdough", post.Title)

	id, editing := s.Editing()
	assert.True(t, editing)
	assert.Equal(t, uint(2), id)

	// Only one post may be in editing at a time.
	_, err = s.BeginEdit(3)
	assert.ErrorIs(t, err, ErrAlreadyEditing)

	s.EndEdit()
	_, editing = s.Editing()
	assert.False(t, editing)

	// Back to idle, a new edit may begin.
	_, err = s.BeginEdit(3)
	assert.NoError(t, err)
	s.EndEdit()

	_, err = s.BeginEdit(42)
	assert.ErrorIs(t, err, ErrUnknownPost)
}

func TestStoreView(t *testing.T) {
	s := NewStore()
	s.Replace(samplePosts())

	// Posts 1 and 4 match the query; they tie on likes, so store order holds.
	view := s.View("go", LikesDesc)
	require.Len(t, view, 2)
	assert.Equal(t, uint(1), view[0].ID)
	assert.Equal(t, uint(4), view[1].ID)
}

func TestStoreViewDefaultOrder(t *testing.T) {
	s := NewStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Replace([]models.Post{
		{ID: 1, Title: "old", CreatedAt: base},
		{ID: 2, Title: "new", CreatedAt: base.Add(time.Hour)},
	})

	view := s.View("", DateDesc)
	assert.Equal(t, uint(2), view[0].ID)
}
