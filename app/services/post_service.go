package services

import (
	"context"

	"oasis/app/models"
	"oasis/app/repositories"
)

// PostService handles business logic for link submissions.
type PostService struct {
	posts    repositories.PostStore
	comments repositories.CommentStore
}

func NewPostService(posts repositories.PostStore, comments repositories.CommentStore) *PostService {
	return &PostService{posts: posts, comments: comments}
}

// CreatePost records a submission for a resolved owner. The owner must have
// passed the guard before this is called.
func (s *PostService) CreatePost(ctx context.Context, ownerID int64, title, link string) (*models.Post, error) {
	post := &models.Post{
		UserID: ownerID,
		Title:  title,
		Link:   link,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a post together with its ordered comment forest.
func (s *PostService) GetPost(ctx context.Context, id int64) (*models.PostView, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.PostView{
		Post:     post,
		Comments: models.BuildForest(comments),
	}, nil
}

// ListPosts returns every post with its author for the landing page.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}
