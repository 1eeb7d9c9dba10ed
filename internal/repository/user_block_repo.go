package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

// UserBlockRepo stores the binary user→user block relation. No lifecycle
// state: existence means active, unblock hard-deletes.
type UserBlockRepo struct {
	pool *pgxpool.Pool
}

func NewUserBlockRepo(pool *pgxpool.Pool) *UserBlockRepo {
	return &UserBlockRepo{pool: pool}
}

// Create inserts the (blocker, blocked) pair. Duplicate pairs are a no-op;
// the returned flag reports whether a row was actually inserted.
func (r *UserBlockRepo) Create(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO user_blocks (blocker_id, blocked_id) VALUES ($1, $2)
		 ON CONFLICT (blocker_id, blocked_id) DO NOTHING`,
		blockerID, blockedID)
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "insert user block", err)
	}

	inserted := tag.RowsAffected() > 0
	if inserted {
		r.notifyChange(ctx, blockerID)
	}
	return inserted, nil
}

// Delete removes the pair and reports whether a row existed.
func (r *UserBlockRepo) Delete(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM user_blocks WHERE blocker_id = $1 AND blocked_id = $2`,
		blockerID, blockedID)
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "delete user block", err)
	}

	deleted := tag.RowsAffected() > 0
	if deleted {
		r.notifyChange(ctx, blockerID)
	}
	return deleted, nil
}

// ListByBlocker returns the users a viewer has blocked, newest first.
func (r *UserBlockRepo) ListByBlocker(ctx context.Context, blockerID int64) ([]model.UserBlock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ub.blocker_id, ub.blocked_id, u.username, ub.created_at
		 FROM user_blocks ub
		 JOIN users u ON ub.blocked_id = u.id
		 WHERE ub.blocker_id = $1
		 ORDER BY ub.created_at DESC`,
		blockerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list user blocks", err)
	}
	defer rows.Close()

	var blocks []model.UserBlock
	for rows.Next() {
		var b model.UserBlock
		if err := rows.Scan(&b.BlockerID, &b.BlockedID, &b.Username, &b.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan user block", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *UserBlockRepo) notifyChange(ctx context.Context, viewerID int64) {
	_, _ = r.pool.Exec(ctx,
		`SELECT pg_notify($1, $2)`,
		blockChangesChannel, strconv.FormatInt(viewerID, 10))
}
