package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasis/app/models"
	"oasis/app/repositories"
	"oasis/app/repositories/mock"
)

func newPostService() (*PostService, *mock.PostRepository, *mock.CommentRepository) {
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	return NewPostService(posts, comments), posts, comments
}

func TestCreatePost(t *testing.T) {
	svc, _, _ := newPostService()

	post, err := svc.CreatePost(context.Background(), 1, "Hello", "http://x")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, int64(1), post.UserID)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestCreatePostWithoutLink(t *testing.T) {
	svc, _, _ := newPostService()

	post, err := svc.CreatePost(context.Background(), 1, "Text only", "")
	require.NoError(t, err)
	assert.Empty(t, post.Link)
}

func TestGetPostNotFound(t *testing.T) {
	svc, _, _ := newPostService()

	_, err := svc.GetPost(context.Background(), 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGetPostBuildsForest(t *testing.T) {
	svc, _, comments := newPostService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, "Hello", "http://x")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	a := &models.Comment{PostID: post.ID, UserID: 1, Body: "A", CreatedAt: base}
	require.NoError(t, comments.Create(ctx, a))
	b := &models.Comment{PostID: post.ID, UserID: 2, Body: "B", ParentID: &a.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, comments.Create(ctx, b))
	c := &models.Comment{PostID: post.ID, UserID: 1, Body: "C", CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, comments.Create(ctx, c))

	view, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", view.Post.Title)

	require.Len(t, view.Comments, 2, "top-level order is [A, C]")
	assert.Equal(t, "A", view.Comments[0].Comment.Body)
	assert.Equal(t, "C", view.Comments[1].Comment.Body)
	require.Len(t, view.Comments[0].Replies, 1)
	assert.Equal(t, "B", view.Comments[0].Replies[0].Comment.Body)
}

func TestListPosts(t *testing.T) {
	svc, _, _ := newPostService()
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, 1, "first", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, 2, "second", "")
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
