package services

import (
	"context"
	"errors"

	"oasis/app/models"
	"oasis/app/repositories"
)

// ErrInvalidParent is returned when a reply names a parent comment that does
// not exist or belongs to a different post.
var ErrInvalidParent = errors.New("parent comment does not belong to this post")

// CommentService handles business logic for threaded comments.
type CommentService struct {
	comments repositories.CommentStore
	posts    repositories.PostStore
}

func NewCommentService(comments repositories.CommentStore, posts repositories.PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// CreateComment attaches a comment to a post for a resolved owner. The
// target post must exist, and a reply's parent must be a comment on the same
// post.
func (s *CommentService) CreateComment(ctx context.Context, ownerID, postID int64, body string, parentID *int64) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidParent
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrInvalidParent
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   ownerID,
		ParentID: parentID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPostComments returns a post's comments in insertion order.
func (s *CommentService) ListPostComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}
