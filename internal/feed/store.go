package feed

import (
	"errors"
	"sync"

	"digitalpen/internal/models"
)

var (
	// ErrAlreadyEditing is returned when a second post is loaded into the
	// edit form before the first is saved or cancelled.
	ErrAlreadyEditing = errors.New("another post is already being edited")
	// ErrUnknownPost is returned when an edit targets an id not in the snapshot.
	ErrUnknownPost = errors.New("post not in snapshot")
)

// Store is the client view-state container. It holds the latest fetched
// snapshot and applies mutation intents as the server confirms them; callers
// read through Snapshot or View, never the internal slice. It also tracks the
// admin edit flow: idle until BeginEdit, back to idle on EndEdit, and only
// one post may be in editing at a time.
type Store struct {
	mu      sync.RWMutex
	posts   []models.Post
	editing *uint
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a freshly fetched post list as the snapshot.
func (s *Store) Replace(posts []models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make([]models.Post, len(posts))
	copy(s.posts, posts)
}

// Snapshot returns a copy of the current post list in store order.
func (s *Store) Snapshot() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// View derives a filtered, sorted view over the latest snapshot.
func (s *Store) View(query string, order SortOrder) []models.Post {
	return Sort(Filter(s.Snapshot(), query), order)
}

// ApplyCreate appends a post the server confirmed as created.
func (s *Store) ApplyCreate(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, p)
}

// ApplyUpdate replaces the matching post with the server's updated record.
func (s *Store) ApplyUpdate(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == p.ID {
			s.posts[i] = p
			return
		}
	}
}

// ApplyDelete removes the post with the given id, if present.
func (s *Store) ApplyDelete(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

// ApplyLike sets the like counter to the server-confirmed value.
func (s *Store) ApplyLike(id uint, likes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Likes = likes
			return
		}
	}
}

// BeginEdit loads a post into the edit form. It fails if another post is
// already being edited or the id is not in the snapshot.
func (s *Store) BeginEdit(id uint) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing != nil {
		return models.Post{}, ErrAlreadyEditing
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.editing = &id
			return s.posts[i], nil
		}
	}
	return models.Post{}, ErrUnknownPost
}

// EndEdit returns the store to idle, whether the edit was saved or cancelled.
func (s *Store) EndEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// Editing reports the id currently loaded into the edit form, if any.
func (s *Store) Editing() (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.editing == nil {
		return 0, false
	}
	return *s.editing, true
}
