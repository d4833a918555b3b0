package repositories

import (
	"context"
	"database/sql"

	"oasis/app/models"
)

// UserRepository persists user identity records.
type UserRepository struct {
	store *Store
}

// Create inserts a new user and fills in the generated id. A violation of
// the unique username constraint surfaces as ErrDuplicateUsername and leaves
// no partial row behind.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return err
	}

	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError(err)
	}
	user.ID = id
	return nil
}

// FindByUsername performs the single-row lookup used by login.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

// FindByID resolves a session identity back to a full user record.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := r.store.opCtx(ctx)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}
