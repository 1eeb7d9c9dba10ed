package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

// Allowed video block types. "global" hides a video platform-wide and is
// reserved for privileged actors; "manual" is a personal block scoped to
// the blocking viewer.
var ValidBlockTypes = map[string]bool{
	"global":    true,
	"user":      true,
	"geo":       true,
	"copyright": true,
	"age":       true,
	"manual":    true,
}

const BlockTypeGlobal = "global"

type VideoBlockRepo struct {
	liftable
}

func NewVideoBlockRepo(pool *pgxpool.Pool) *VideoBlockRepo {
	return &VideoBlockRepo{liftable{
		pool:      pool,
		table:     "video_blocks",
		targetCol: "video_id",
	}}
}

// Create inserts an active video block. The active-row invariant is scoped
// per video for global blocks and per (video, blocker) for everything else;
// both variants are backed by partial unique indexes, so the losing side of
// a concurrent create surfaces as Conflict rather than a duplicate row.
func (r *VideoBlockRepo) Create(ctx context.Context, b *model.VideoBlock) (*model.VideoBlock, error) {
	var (
		exists bool
		err    error
	)
	if b.BlockType == BlockTypeGlobal {
		exists, err = r.activeExists(ctx, "video_id = $1 AND block_type = 'global'", b.VideoID)
	} else {
		exists, err = r.activeExists(ctx, "video_id = $1 AND blocked_by = $2 AND block_type <> 'global'", b.VideoID, b.BlockedBy)
	}
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.Conflict, "Video is already blocked.")
	}

	created := *b
	created.Active = true
	err = r.pool.QueryRow(ctx,
		`INSERT INTO video_blocks (video_id, blocked_by, block_type, reason, start_at, end_at, active)
		 VALUES ($1, $2, $3, $4, $5, $6, true)
		 RETURNING id, created_at, updated_at`,
		b.VideoID, b.BlockedBy, b.BlockType, b.Reason, b.StartAt, b.EndAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.New(apperr.Conflict, "Video is already blocked.")
		}
		return nil, apperr.Wrap(apperr.Internal, "insert video block", err)
	}

	r.notifyChange(ctx, b.BlockedBy)
	return &created, nil
}

// Lift marks the block inactive. Errors: NotFound if the id is unknown,
// Conflict if already lifted.
func (r *VideoBlockRepo) Lift(ctx context.Context, blockID, liftedBy int64) error {
	_, err := r.lift(ctx, blockID, liftedBy)
	return err
}

// Owner returns the viewer that placed the block and whether it is active.
func (r *VideoBlockRepo) Owner(ctx context.Context, blockID int64) (blockedBy int64, active bool, err error) {
	s, err := r.state(ctx, blockID)
	if err != nil {
		return 0, false, err
	}
	return s.BlockedBy, s.Active, nil
}

// ListByBlocker returns a viewer's video blocks with video title/thumbnail
// joined in, newest first. Pagination must already be normalized.
func (r *VideoBlockRepo) ListByBlocker(ctx context.Context, blockedBy int64, active *bool, blockType string, p Pagination) ([]model.VideoBlock, error) {
	query := `SELECT vb.id, vb.video_id, v.title, v.thumbnail, vb.blocked_by,
	                 vb.block_type, vb.reason, vb.start_at, vb.end_at, vb.active,
	                 vb.lifted_by, vb.lifted_at, vb.created_at, vb.updated_at
	          FROM video_blocks vb
	          JOIN videos v ON vb.video_id = v.id
	          WHERE vb.blocked_by = $1`
	args := []any{blockedBy}

	if active != nil {
		args = append(args, *active)
		query += ` AND vb.active = $` + strconv.Itoa(len(args))
	}
	if blockType != "" {
		args = append(args, blockType)
		query += ` AND vb.block_type = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY vb.created_at DESC`
	query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, p.Limit, p.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list video blocks", err)
	}
	defer rows.Close()

	var blocks []model.VideoBlock
	for rows.Next() {
		var b model.VideoBlock
		err := rows.Scan(&b.ID, &b.VideoID, &b.Title, &b.Thumbnail, &b.BlockedBy,
			&b.BlockType, &b.Reason, &b.StartAt, &b.EndAt, &b.Active,
			&b.LiftedBy, &b.LiftedAt, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan video block", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// ActiveVideoIDs returns the video ids hidden from this viewer: their own
// active blocks plus any active global blocks. Used by the fail-safe
// resolver.
func (r *VideoBlockRepo) ActiveVideoIDs(ctx context.Context, blockedBy int64, p Pagination) ([]int64, error) {
	query := `SELECT video_id FROM video_blocks
	          WHERE (blocked_by = $1 OR block_type = 'global') AND active
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, blockedBy, p.Limit, p.Offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list blocked video ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan blocked video id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
