// Package mock provides in-memory repository implementations for tests that
// exercise service logic without a database file.
package mock

import (
	"context"
	"sync"
	"time"

	"oasis/app/models"
	"oasis/app/repositories"
)

type UserRepository struct {
	users  map[int64]*models.User
	nextID int64
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts  map[int64]*models.Post
	nextID int64
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int64]*models.Comment
	nextID   int64
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*models.User), nextID: 1}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[int64]*models.Post), nextID: 1}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[int64]*models.Comment), nextID: 1}
}

// UserRepository implementation

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return repositories.ErrDuplicateUsername
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

// Delete removes a user, simulating a stale session's deleted account.
func (m *UserRepository) Delete(id int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.users, id)
}

// PostRepository implementation

func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for id := m.nextID - 1; id >= 1; id-- {
		if post, exists := m.posts[id]; exists {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for id := int64(1); id < m.nextID; id++ {
		if comment, exists := m.comments[id]; exists && comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}
