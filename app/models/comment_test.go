package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				UserID:    1,
				Body:      "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:        1,
				UserID:    1,
				Body:      "This is a valid comment",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty body",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				UserID:    1,
				Body:      "",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				UserID:    1,
				Body:      "Valid body",
				CreatedAt: time.Time{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentBeforeCreate(t *testing.T) {
	comment := &Comment{PostID: 1, UserID: 1, Body: "Test Comment"}

	assert.True(t, comment.CreatedAt.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentIsReply(t *testing.T) {
	parent := int64(7)
	assert.False(t, (&Comment{}).IsReply())
	assert.True(t, (&Comment{ParentID: &parent}).IsReply())
}

func TestBuildForest(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	idA, idB, idC := int64(1), int64(2), int64(3)

	// A (top-level), B (child of A), C (top-level, created after A).
	comments := []*Comment{
		{ID: idA, PostID: 1, UserID: 1, Body: "A", CreatedAt: base},
		{ID: idB, PostID: 1, UserID: 2, Body: "B", ParentID: &idA, CreatedAt: base.Add(time.Minute)},
		{ID: idC, PostID: 1, UserID: 1, Body: "C", CreatedAt: base.Add(2 * time.Minute)},
	}

	forest := BuildForest(comments)
	require.Len(t, forest, 2)
	assert.Equal(t, "A", forest[0].Comment.Body)
	assert.Equal(t, "C", forest[1].Comment.Body)

	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, "B", forest[0].Replies[0].Comment.Body)
	assert.Empty(t, forest[1].Replies)
}

func TestBuildForestSiblingOrder(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Same timestamp: ids break the tie deterministically.
	comments := []*Comment{
		{ID: 2, PostID: 1, UserID: 1, Body: "second", CreatedAt: base},
		{ID: 1, PostID: 1, UserID: 1, Body: "first", CreatedAt: base},
		{ID: 3, PostID: 1, UserID: 1, Body: "third", CreatedAt: base.Add(-time.Minute)},
	}

	forest := BuildForest(comments)
	require.Len(t, forest, 3)
	assert.Equal(t, "third", forest[0].Comment.Body)
	assert.Equal(t, "first", forest[1].Comment.Body)
	assert.Equal(t, "second", forest[2].Comment.Body)
}

func TestBuildForestDropsOrphans(t *testing.T) {
	missing := int64(99)
	comments := []*Comment{
		{ID: 1, PostID: 1, UserID: 1, Body: "root", CreatedAt: time.Now()},
		{ID: 2, PostID: 1, UserID: 1, Body: "orphan", ParentID: &missing, CreatedAt: time.Now()},
	}

	forest := BuildForest(comments)
	require.Len(t, forest, 1)
	assert.Equal(t, "root", forest[0].Comment.Body)
}
