package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Exists reports whether a user row exists for the given id.
func (r *UserRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1 LIMIT 1`, userID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "check user exists", err)
	}
	return true, nil
}

// FindByID returns the user row, or NotFound.
func (r *UserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, role, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User not found.")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "fetch user", err)
	}
	return &u, nil
}
