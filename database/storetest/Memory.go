// Package storetest provides in-memory stores with the same behaviour as the
// MongoDB stores, for tests that should not need a running database.
package storetest

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ichramsyah/bebasblog-backend/database"
	"github.com/ichramsyah/bebasblog-backend/models"
)

type memory struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	posts    map[primitive.ObjectID]models.Post
	comments map[primitive.ObjectID]models.Comment
	images   map[primitive.ObjectID]image
	// seq keeps timestamps strictly increasing so ordering is deterministic.
	seq time.Time
}

type image struct {
	contentType string
	data        []byte
}

type Store struct {
	Users    *UserStore
	Posts    *PostStore
	Comments *CommentStore
	Images   *ImageStore
	m        *memory
}

func New() *Store {
	m := &memory{
		users:    map[primitive.ObjectID]models.User{},
		posts:    map[primitive.ObjectID]models.Post{},
		comments: map[primitive.ObjectID]models.Comment{},
		images:   map[primitive.ObjectID]image{},
		seq:      time.Now().UTC(),
	}
	return &Store{
		Users:    &UserStore{m: m},
		Posts:    &PostStore{m: m},
		Comments: &CommentStore{m: m},
		Images:   &ImageStore{m: m},
		m:        m,
	}
}

// DeleteUser removes a user record, for tests of tokens outliving accounts.
func (s *Store) DeleteUser(id primitive.ObjectID) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.users, id)
}

// CommentCount reports how many comments exist for a post.
func (s *Store) CommentCount(postID primitive.ObjectID) int {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n := 0
	for _, c := range s.m.comments {
		if c.Post == postID {
			n++
		}
	}
	return n
}

// RawUser returns the stored user including the password hash.
func (s *Store) RawUser(id primitive.ObjectID) (models.User, bool) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	return u, ok
}

func (m *memory) now() time.Time {
	m.seq = m.seq.Add(time.Millisecond)
	return m.seq
}

func (m *memory) author(id primitive.ObjectID) *models.AuthorSummary {
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	s := u.Summary()
	return &s
}

func clonePost(p models.Post) models.Post {
	p.Images = append([]string{}, p.Images...)
	p.Likes = append([]primitive.ObjectID{}, p.Likes...)
	p.Comments = append([]primitive.ObjectID{}, p.Comments...)
	return p
}

type UserStore struct{ m *memory }

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.users {
		if existing.Email == u.Email {
			return database.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return database.ErrDuplicateUsername
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := s.m.now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.m.users[u.ID] = *u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.ID == id }, false)
}

func (s *UserStore) FindByIDWithPassword(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.ID == id }, true)
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email }, true)
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Username == username }, false)
}

func (s *UserStore) find(match func(models.User) bool, withPassword bool) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if match(u) {
			if !withPassword {
				u.Password = ""
			}
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *UserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, update models.ProfileUpdate) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if update.Username != nil {
		for _, other := range s.m.users {
			if other.ID != id && other.Username == *update.Username {
				return nil, database.ErrDuplicateUsername
			}
		}
		u.Username = *update.Username
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.ProfilePictureURL != nil {
		u.ProfilePictureURL = *update.ProfilePictureURL
	}
	u.UpdatedAt = s.m.now()
	s.m.users[id] = u
	u.Password = ""
	return &u, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Password = hash
	u.UpdatedAt = s.m.now()
	s.m.users[id] = u
	return nil
}

type PostStore struct{ m *memory }

func (s *PostStore) Create(_ context.Context, p *models.Post) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []primitive.ObjectID{}
	}
	now := s.m.now()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := clonePost(*p)
	stored.Author = nil
	s.m.posts[p.ID] = stored
	return nil
}

func (s *PostStore) List(_ context.Context) ([]models.Post, error) {
	return s.list(func(models.Post) bool { return true }), nil
}

func (s *PostStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.list(func(p models.Post) bool { return p.User == userID }), nil
}

func (s *PostStore) list(match func(models.Post) bool) []models.Post {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	posts := []models.Post{}
	for _, p := range s.m.posts {
		if match(p) {
			p = clonePost(p)
			p.Author = s.m.author(p.User)
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func (s *PostStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p = clonePost(p)
	p.Author = s.m.author(p.User)
	return &p, nil
}

func (s *PostStore) UpdateDescription(_ context.Context, id primitive.ObjectID, description string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[id]
	if !ok {
		return database.ErrNotFound
	}
	p.Description = description
	p.UpdatedAt = s.m.now()
	s.m.posts[id] = p
	return nil
}

func (s *PostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.posts[id]; !ok {
		return database.ErrNotFound
	}
	for cid, c := range s.m.comments {
		if c.Post == id {
			delete(s.m.comments, cid)
		}
	}
	delete(s.m.posts, id)
	return nil
}

func (s *PostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, database.ErrNotFound
	}
	if p.LikedBy(userID) {
		return nil, database.ErrAlreadyLiked
	}
	p.Likes = append(p.Likes, userID)
	s.m.posts[postID] = p
	return append([]primitive.ObjectID{}, p.Likes...), nil
}

func (s *PostStore) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[postID]
	if !ok {
		return nil, database.ErrNotFound
	}
	if !p.LikedBy(userID) {
		return nil, database.ErrNotLiked
	}
	likes := []primitive.ObjectID{}
	for _, id := range p.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	p.Likes = likes
	s.m.posts[postID] = p
	return append([]primitive.ObjectID{}, likes...), nil
}

func (s *PostStore) Stats(_ context.Context, userID primitive.ObjectID) (models.PostStats, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var stats models.PostStats
	for _, p := range s.m.posts {
		if p.User == userID {
			stats.PostCount++
			stats.TotalLikes += int64(len(p.Likes))
		}
	}
	return stats, nil
}

// SetLikes overwrites a post's like set directly.
func (s *PostStore) SetLikes(postID primitive.ObjectID, likes []primitive.ObjectID) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p := s.m.posts[postID]
	p.Likes = append([]primitive.ObjectID{}, likes...)
	s.m.posts[postID] = p
}

type CommentStore struct{ m *memory }

func (s *CommentStore) Create(_ context.Context, c *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.posts[c.Post]
	if !ok {
		return database.ErrNotFound
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := s.m.now()
	c.CreatedAt, c.UpdatedAt = now, now
	p.Comments = append(p.Comments, c.ID)
	s.m.posts[c.Post] = p
	stored := *c
	stored.Author = nil
	s.m.comments[c.ID] = stored
	return nil
}

func (s *CommentStore) ListByPost(_ context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	comments := []models.Comment{}
	for _, c := range s.m.comments {
		if c.Post == postID {
			c.Author = s.m.author(c.User)
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].CreatedAt.Before(comments[j].CreatedAt) })
	return comments, nil
}

type ImageStore struct{ m *memory }

func (s *ImageStore) Upload(_ context.Context, _ string, contentType string, src io.Reader) (primitive.ObjectID, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	id := primitive.NewObjectID()
	s.m.images[id] = image{contentType: contentType, data: data}
	return id, nil
}

func (s *ImageStore) Open(_ context.Context, id primitive.ObjectID) (io.ReadCloser, string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	img, ok := s.m.images[id]
	if !ok {
		return nil, "", database.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(img.data)), img.contentType, nil
}
