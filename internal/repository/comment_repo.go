package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/pkg/sqlbuild"
)

const commentColumns = `comments.id, comments.video_id, comments.user_id,
	u.username, u.avatar, u.verified, comments.text, comments.created_at`

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// ListByVideo returns a video's comments, newest first. Filter clauses are
// author-scoped fragments from the visibility filter; an anonymous viewer
// passes empty slices.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID int64, page, limit int, filterClauses []string, filterArgs []any) (*model.CommentListResponse, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	clauses := append([]string{"comments.video_id = ?"}, filterClauses...)
	args := append([]any{videoID}, filterArgs...)
	whereSQL := sqlbuild.WhereSQL(clauses)

	joinSQL := ` FROM comments JOIN users u ON u.id = comments.user_id `

	countQuery := sqlbuild.Rebind(`SELECT COUNT(*)` + joinSQL + whereSQL)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "count comments", err)
	}

	query := sqlbuild.Rebind(
		`SELECT ` + commentColumns + joinSQL + whereSQL +
			` ORDER BY comments.created_at DESC LIMIT ? OFFSET ?`)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list comments", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var cm model.Comment
		err := rows.Scan(
			&cm.ID, &cm.VideoID, &cm.UserID,
			&cm.Username, &cm.Avatar, &cm.Verified, &cm.Text, &cm.CreatedAt,
		)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan comment", err)
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list comments", err)
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return &model.CommentListResponse{
		Data: comments,
		Pagination: model.PageInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
