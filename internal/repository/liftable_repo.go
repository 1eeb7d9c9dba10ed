package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
)

// Postgres error code for unique constraint violations. The partial unique
// indexes on creator_blocks/video_blocks are the authoritative guard against
// duplicate active blocks; the pre-insert existence checks only exist to give
// callers precise 404-vs-409 messages.
const pgUniqueViolation = "23505"

// blockChangesChannel is the NOTIFY channel block mutations are announced
// on. Payload is the affected viewer id (blocked_by / blocker_id) so other
// instances can drop that viewer's cached blocked-id sets.
const blockChangesChannel = "block_changes"

// liftable is the shared store for block relations with an active/lifted
// lifecycle. creator_blocks and video_blocks are structurally the same
// relation over different targets, so both repos are built on it and only
// differ in table/column configuration and their create/list column sets.
type liftable struct {
	pool      *pgxpool.Pool
	table     string // e.g. "creator_blocks"
	targetCol string // e.g. "creator_id"
}

// targetState is the minimal row view needed by lift and authorization.
type targetState struct {
	ID        int64
	TargetID  int64
	BlockedBy int64
	Active    bool
}

// state fetches id/target/blocker/active for one block record.
func (l *liftable) state(ctx context.Context, blockID int64) (*targetState, error) {
	query := fmt.Sprintf(
		`SELECT id, %s, blocked_by, active FROM %s WHERE id = $1 LIMIT 1`,
		l.targetCol, l.table)

	var s targetState
	err := l.pool.QueryRow(ctx, query, blockID).Scan(&s.ID, &s.TargetID, &s.BlockedBy, &s.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Block record not found.")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "fetch block record", err)
	}
	return &s, nil
}

// lift marks an active block inactive, recording who lifted it and when.
// Returns the affected viewer id so callers can invalidate caches.
func (l *liftable) lift(ctx context.Context, blockID, liftedBy int64) (int64, error) {
	s, err := l.state(ctx, blockID)
	if err != nil {
		return 0, err
	}
	if !s.Active {
		return 0, apperr.New(apperr.Conflict, "Block record is already inactive.")
	}

	query := fmt.Sprintf(
		`UPDATE %s SET active = false, lifted_by = $1, lifted_at = now() WHERE id = $2 AND active`,
		l.table)
	tag, err := l.pool.Exec(ctx, query, liftedBy, blockID)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "lift block record", err)
	}
	// The row can disappear or flip between the check and the update; a
	// zero-affected result is reported as not found, never silent success.
	if tag.RowsAffected() == 0 {
		return 0, apperr.New(apperr.NotFound, "Block record not found.")
	}

	l.notifyChange(ctx, s.BlockedBy)
	return s.BlockedBy, nil
}

// activeExists reports whether an active block already exists for the given
// predicate columns.
func (l *liftable) activeExists(ctx context.Context, where string, args ...any) (bool, error) {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s AND active LIMIT 1`, l.table, where)

	var one int
	err := l.pool.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "check active block", err)
	}
	return true, nil
}

// activeTargetIDs returns the target ids of a viewer's active blocks,
// newest first. This is the read the fail-safe resolvers sit on.
func (l *liftable) activeTargetIDs(ctx context.Context, blockedBy int64, p Pagination) ([]int64, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE blocked_by = $1 AND active ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		l.targetCol, l.table)

	rows, err := l.pool.Query(ctx, query, blockedBy, p.Limit, p.Offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list active block targets", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan block target id", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// notifyChange announces a block mutation for the given viewer. Failures
// are swallowed: cross-instance cache invalidation is best effort and must
// never fail the mutation that already committed.
func (l *liftable) notifyChange(ctx context.Context, viewerID int64) {
	_, _ = l.pool.Exec(ctx,
		`SELECT pg_notify($1, $2)`,
		blockChangesChannel, strconv.FormatInt(viewerID, 10))
}

// isUniqueViolation reports whether err is a Postgres unique-index
// violation (the duplicate-active-block race losing side).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
