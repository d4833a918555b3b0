package repositories

import (
	"context"

	"oasis/app/models"
)

// PostRepository persists link submissions.
type PostRepository struct {
	store *Store
}

// Create inserts a new post and fills in the generated id.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return err
	}

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, link, created_at) VALUES (?, ?, ?, ?)`,
		post.UserID, post.Title, post.Link, post.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError(err)
	}
	post.ID = id
	return nil
}

// GetByID returns a single post with its author's username joined in.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, p.title, p.link, p.created_at, u.username
		FROM posts p JOIN users u ON u.id = p.user_id
		WHERE p.id = ?`,
		id,
	)
	var p models.Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Link, &p.CreatedAt, &p.Author); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// List returns every post, newest first, with authors joined in. There is no
// pagination; the landing page loads everything.
func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.title, p.link, p.created_at, u.username
		FROM posts p JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Link, &p.CreatedAt, &p.Author); err != nil {
			return nil, mapError(err)
		}
		posts = append(posts, &p)
	}
	return posts, mapError(rows.Err())
}
