// Package inmemory implements the storage repositories in process memory.
// It mirrors the postgres store's constraints: foreign keys, the unique
// (post, user) like and cascading post deletes.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"blogapi/internal/domain"
	"blogapi/internal/storage"
)

// Store implements storage.Store.
type Store struct {
	mu       sync.RWMutex
	users    map[int64]domain.User
	posts    map[int64]domain.Post
	comments map[int64]domain.Comment
	likes    map[int64]domain.Like

	nextUserID    int64
	nextPostID    int64
	nextCommentID int64
	nextLikeID    int64

	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		posts:    make(map[int64]domain.Post),
		comments: make(map[int64]domain.Comment),
		likes:    make(map[int64]domain.Like),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddUser registers a user and returns it with its id and timestamps set.
// Users normally come from the identity service; this is how local runs and
// tests provide them.
func (s *Store) AddUser(name, email string) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	now := s.now()
	u := domain.User{ID: s.nextUserID, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	s.users[u.ID] = u
	return u
}

// === Users ===

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, userID int64, title, content string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	s.nextPostID++
	now := s.now()
	p := domain.Post{
		ID:        s.nextPostID,
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts[p.ID] = p
	return &p, nil
}

func (s *Store) GetPost(ctx context.Context, id int64) (*domain.PostView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	view := s.viewLocked(p)
	return &view, nil
}

func (s *Store) ListPosts(ctx context.Context, filter storage.PostFilter, page storage.PageArgs) ([]domain.PostView, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if filter.AuthorID != nil && p.UserID != *filter.AuthorID {
			continue
		}
		if filter.LikedBy != nil && !s.likedLocked(p.ID, *filter.LikedBy) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if page.Paginated() {
		start := page.Offset()
		if start < 0 || start >= len(matched) {
			return []domain.PostView{}, total, nil
		}
		end := start + page.PerPage
		if end < start || end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	views := make([]domain.PostView, 0, len(matched))
	for _, p := range matched {
		views = append(views, s.viewLocked(p))
	}
	return views, total, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, title, content string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = s.now()
	s.posts[id] = p
	return &p, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	delete(s.posts, id)

	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	for lid, l := range s.likes {
		if l.PostID == id {
			delete(s.likes, lid)
		}
	}
	return &p, nil
}

// viewLocked builds the read model; the caller holds at least a read lock.
func (s *Store) viewLocked(p domain.Post) domain.PostView {
	view := domain.PostView{Post: p}
	if u, ok := s.users[p.UserID]; ok {
		view.User = &u
	}
	for _, l := range s.likes {
		if l.PostID == p.ID {
			view.CountLikes++
		}
	}
	for _, c := range s.comments {
		if c.PostID == p.ID {
			view.CountComments++
		}
	}
	return view
}

func (s *Store) likedLocked(postID, userID int64) bool {
	for _, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			return true
		}
	}
	return false
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, postID, userID int64, content string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}

	s.nextCommentID++
	now := s.now()
	c := domain.Comment{
		ID:        s.nextCommentID,
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[c.ID] = c
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	c.Content = content
	c.UpdatedAt = s.now()
	s.comments[id] = c
	return &c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	delete(s.comments, id)
	return &c, nil
}

// === Likes ===

func (s *Store) CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if s.likedLocked(postID, userID) {
		return nil, domain.ErrAlreadyLiked
	}

	s.nextLikeID++
	now := s.now()
	l := domain.Like{ID: s.nextLikeID, PostID: postID, UserID: userID, CreatedAt: now, UpdatedAt: now}
	s.likes[l.ID] = l
	return &l, nil
}

func (s *Store) DeleteLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		found domain.Like
		ok    bool
	)
	for _, l := range s.likes {
		if l.PostID != postID || l.UserID != userID {
			continue
		}
		if !ok || l.ID < found.ID {
			found, ok = l, true
		}
	}
	if !ok {
		return nil, domain.ErrLikeNotFound
	}
	delete(s.likes, found.ID)
	return &found, nil
}

func (s *Store) CountLikes(ctx context.Context, postID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, l := range s.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}
