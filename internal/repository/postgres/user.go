package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/portfolio/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, is_admin, created_at, updated_at
			  FROM users WHERE lower(email) = lower($1)`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, email, password_hash, is_admin, created_at, updated_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Upsert inserts the user or, when the email is taken, updates its password and admin flag.
func (r *UserRepository) Upsert(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, password_hash, is_admin)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (email) DO UPDATE
			  SET password_hash = EXCLUDED.password_hash, is_admin = EXCLUDED.is_admin, updated_at = NOW()
			  RETURNING id, email, password_hash, is_admin, created_at, updated_at`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	var saved model.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash, user.IsAdmin).Scan(
		&saved.ID, &saved.Email, &saved.PasswordHash, &saved.IsAdmin, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to upsert user: %w", err)
	}

	return saved, nil
}
