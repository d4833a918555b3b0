package repositories

import (
	"context"
	"database/sql"

	"oasis/app/models"
)

// CommentRepository persists threaded comments.
type CommentRepository struct {
	store *Store
}

// Create inserts a new comment and fills in the generated id. Referential
// checks against the post and parent comment belong to the service layer;
// the repository only enforces the row shape.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return err
	}

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx,
		`INSERT INTO comments (post_id, user_id, parent_comment_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		comment.PostID, comment.UserID, comment.ParentID, comment.Body, comment.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError(err)
	}
	comment.ID = id
	return nil
}

// GetByID returns a single comment.
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.parent_comment_id, c.body, c.created_at, u.username
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.id = ?`,
		id,
	)
	return scanComment(row.Scan)
}

// ListByPost returns a post's comments in insertion order, the order the
// forest builder relies on for deterministic sibling ordering.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.user_id, c.parent_comment_id, c.body, c.created_at, u.username
		FROM comments c JOIN users u ON u.id = c.user_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC, c.id ASC`,
		postID,
	)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, mapError(rows.Err())
}

func scanComment(scan func(...any) error) (*models.Comment, error) {
	var (
		c      models.Comment
		parent sql.NullInt64
	)
	if err := scan(&c.ID, &c.PostID, &c.UserID, &parent, &c.Body, &c.CreatedAt, &c.Author); err != nil {
		return nil, mapError(err)
	}
	if parent.Valid {
		c.ParentID = &parent.Int64
	}
	return &c, nil
}
