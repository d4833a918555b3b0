package models

import "time"

// User is a registered account. The password hash is opaque to everything
// except the auth package and never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,min=3,max=30"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post is a link submission. Immutable after creation.
type Post struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id" validate:"required,gt=0"`
	Title     string    `json:"title" validate:"required,max=200"`
	Link      string    `json:"link,omitempty" validate:"omitempty,max=2048"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to exactly one post. ParentID is nil for top-level
// comments; when set it must reference a comment on the same post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id" validate:"required,gt=0"`
	UserID    int64     `json:"user_id" validate:"required,gt=0"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Body      string    `json:"body" validate:"required,min=1,max=2000"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment with its replies, ordered by creation time.
type CommentNode struct {
	Comment *Comment       `json:"comment"`
	Replies []*CommentNode `json:"replies,omitempty"`
}

// PostView is a post together with its comment forest, as consumed by the
// rendering collaborator.
type PostView struct {
	Post     *Post          `json:"post"`
	Comments []*CommentNode `json:"comments"`
}
