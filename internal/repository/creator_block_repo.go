package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

type CreatorBlockRepo struct {
	liftable
}

func NewCreatorBlockRepo(pool *pgxpool.Pool) *CreatorBlockRepo {
	return &CreatorBlockRepo{liftable{
		pool:      pool,
		table:     "creator_blocks",
		targetCol: "creator_id",
	}}
}

// Create inserts an active creator block. At most one active row may exist
// per (creator_id, blocked_by); the partial unique index backs the
// pre-check, and a unique violation from losing that race maps to Conflict.
func (r *CreatorBlockRepo) Create(ctx context.Context, creatorID, blockedBy int64, reason string) (*model.CreatorBlock, error) {
	exists, err := r.activeExists(ctx, "creator_id = $1 AND blocked_by = $2", creatorID, blockedBy)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "Creator is already blocked.")
	}

	block := &model.CreatorBlock{
		CreatorID: creatorID,
		BlockedBy: blockedBy,
		Reason:    reason,
		Active:    true,
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO creator_blocks (creator_id, blocked_by, reason, active)
		 VALUES ($1, $2, $3, true)
		 RETURNING id, created_at`,
		creatorID, blockedBy, reason,
	).Scan(&block.ID, &block.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.Conflict, "Creator is already blocked.")
		}
		return nil, apperr.Wrap(apperr.Internal, "insert creator block", err)
	}

	r.notifyChange(ctx, blockedBy)
	return block, nil
}

// Lift marks the block inactive. Errors: NotFound if the id is unknown,
// Conflict if already lifted.
func (r *CreatorBlockRepo) Lift(ctx context.Context, blockID, liftedBy int64) error {
	_, err := r.lift(ctx, blockID, liftedBy)
	return err
}

// Owner returns the viewer that placed the block and whether it is active.
func (r *CreatorBlockRepo) Owner(ctx context.Context, blockID int64) (blockedBy int64, active bool, err error) {
	s, err := r.state(ctx, blockID)
	if err != nil {
		return 0, false, err
	}
	return s.BlockedBy, s.Active, nil
}

// ListByBlocker returns a viewer's creator blocks with the creator's
// username joined in, newest first. Pagination must already be normalized
// through Pagination.Strict or Pagination.Clamped.
func (r *CreatorBlockRepo) ListByBlocker(ctx context.Context, blockedBy int64, active *bool, p Pagination) ([]model.CreatorBlock, error) {
	query := `SELECT cb.id, cb.creator_id, u.username, cb.blocked_by, cb.reason,
	                 cb.active, cb.lifted_by, cb.lifted_at, cb.created_at
	          FROM creator_blocks cb
	          JOIN users u ON cb.creator_id = u.id
	          WHERE cb.blocked_by = $1`
	args := []any{blockedBy}

	if active != nil {
		query += ` AND cb.active = $2`
		args = append(args, *active)
	}
	query += ` ORDER BY cb.created_at DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list creator blocks", err)
	}
	defer rows.Close()

	var blocks []model.CreatorBlock
	for rows.Next() {
		var b model.CreatorBlock
		err := rows.Scan(&b.ID, &b.CreatorID, &b.Username, &b.BlockedBy, &b.Reason,
			&b.Active, &b.LiftedBy, &b.LiftedAt, &b.CreatedAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan creator block", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// ActiveCreatorIDs returns the creator ids this viewer has actively
// blocked. Used by the fail-safe resolver.
func (r *CreatorBlockRepo) ActiveCreatorIDs(ctx context.Context, blockedBy int64, p Pagination) ([]int64, error) {
	return r.activeTargetIDs(ctx, blockedBy, p)
}
