package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. A duplicate username yields a domain conflict
// even when a concurrent registration slipped past the service's lookup.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO users (username, password, created_at)
VALUES (?, ?, ?)
RETURNING id`),
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.Conflict("User already exists")
		}
		return 0, errors.Wrap(err, "repo: insert user")
	}

	user.ID = id
	return id, nil
}

// GetByUsername returns domain.ErrNotFound when the username is unknown.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.get(ctx, `
SELECT id, username, password, created_at
FROM users
WHERE username = ?`, username)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("User not found")
		}
		return nil, errors.Wrap(err, "repo: get user")
	}
	return &user, nil
}
