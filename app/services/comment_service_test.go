package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasis/app/models"
	"oasis/app/repositories"
	"oasis/app/repositories/mock"
)

func newCommentService() (*CommentService, *mock.PostRepository) {
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	return NewCommentService(comments, posts), posts
}

func seedMockPost(t *testing.T, posts *mock.PostRepository, ownerID int64) *models.Post {
	t.Helper()
	post := &models.Post{UserID: ownerID, Title: "Hello"}
	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func TestCreateComment(t *testing.T) {
	svc, posts := newCommentService()
	ctx := context.Background()
	post := seedMockPost(t, posts, 1)

	comment, err := svc.CreateComment(ctx, 2, post.ID, "nice", nil)
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, int64(2), comment.UserID)
	assert.Nil(t, comment.ParentID)
}

func TestCreateCommentPostNotFound(t *testing.T) {
	svc, _ := newCommentService()

	_, err := svc.CreateComment(context.Background(), 1, 999, "nice", nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreateReply(t *testing.T) {
	svc, posts := newCommentService()
	ctx := context.Background()
	post := seedMockPost(t, posts, 1)

	parent, err := svc.CreateComment(ctx, 1, post.ID, "parent", nil)
	require.NoError(t, err)

	reply, err := svc.CreateComment(ctx, 2, post.ID, "reply", &parent.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestCreateReplyParentMissing(t *testing.T) {
	svc, posts := newCommentService()
	ctx := context.Background()
	post := seedMockPost(t, posts, 1)

	missing := int64(999)
	_, err := svc.CreateComment(ctx, 1, post.ID, "reply", &missing)
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestCreateReplyParentOnOtherPost(t *testing.T) {
	svc, posts := newCommentService()
	ctx := context.Background()

	first := seedMockPost(t, posts, 1)
	second := seedMockPost(t, posts, 1)

	parent, err := svc.CreateComment(ctx, 1, first.ID, "on first post", nil)
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, 1, second.ID, "cross-post reply", &parent.ID)
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestListPostComments(t *testing.T) {
	svc, posts := newCommentService()
	ctx := context.Background()
	post := seedMockPost(t, posts, 1)

	_, err := svc.CreateComment(ctx, 1, post.ID, "one", nil)
	require.NoError(t, err)
	_, err = svc.CreateComment(ctx, 2, post.ID, "two", nil)
	require.NoError(t, err)

	comments, err := svc.ListPostComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, err = svc.ListPostComments(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
