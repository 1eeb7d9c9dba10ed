package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/pkg/sqlbuild"
)

// Listing page bounds (distinct from block-listing bounds).
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

const videoColumns = `videos.id, videos.video_id, videos.short_id, videos.user_id,
	videos.title, videos.description, videos.thumbnail, videos.duration,
	videos.views, videos.rating, videos.approved, videos.featured,
	videos.privacy, videos.is_short, videos.publication_date, videos.created_at`

// ListOptions are the query-specific knobs for a listing call. Filter
// clauses from the visibility filter are passed separately and spliced in.
type ListOptions struct {
	Page       int
	Limit      int
	Approved   *bool
	Featured   *bool
	Privacy    *int
	IsShort    *bool
	ShortsOnly bool
	Search     string
	Sort       string // latest | oldest | most_viewed | popular | top_rated
}

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// Exists reports whether a video row exists for the given id.
func (r *VideoRepo) Exists(ctx context.Context, videoID int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM videos WHERE id = $1 LIMIT 1`, videoID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "check video exists", err)
	}
	return true, nil
}

// buildWhere assembles the query-specific clauses for opts and appends the
// visibility-filter clauses behind them. All fragments use `?` placeholders;
// clause order and argument order stay aligned throughout.
func buildWhere(opts ListOptions, filterClauses []string, filterArgs []any) ([]string, []any) {
	var clauses []string
	var args []any

	if opts.Approved != nil {
		clauses = append(clauses, "videos.approved = ?")
		args = append(args, *opts.Approved)
	}
	if opts.Featured != nil {
		clauses = append(clauses, "videos.featured = ?")
		args = append(args, *opts.Featured)
	}
	if opts.Privacy != nil {
		clauses = append(clauses, "videos.privacy = ?")
		args = append(args, *opts.Privacy)
	}
	if opts.ShortsOnly {
		clauses = append(clauses, "videos.is_short = true")
	} else if opts.IsShort != nil {
		clauses = append(clauses, "videos.is_short = ?")
		args = append(args, *opts.IsShort)
	}
	if opts.Search != "" {
		clauses = append(clauses, "videos.title ILIKE ?")
		args = append(args, "%"+opts.Search+"%")
	}

	clauses = append(clauses, filterClauses...)
	args = append(args, filterArgs...)
	return clauses, args
}

// sortSQL maps a sort option to a safe ORDER BY clause. Unknown values fall
// back to latest; nothing from the request ever reaches the clause text.
func sortSQL(sort string) string {
	switch sort {
	case "oldest":
		return "ORDER BY videos.publication_date ASC, videos.created_at ASC"
	case "most_viewed", "most-viewed", "views":
		return "ORDER BY videos.views DESC, videos.publication_date DESC"
	case "popular":
		return "ORDER BY videos.featured DESC, videos.views DESC, videos.publication_date DESC"
	case "top_rated", "top-rated", "rating":
		return "ORDER BY videos.rating DESC, videos.views DESC, videos.publication_date DESC"
	default:
		return "ORDER BY videos.publication_date DESC, videos.created_at DESC"
	}
}

// List serves the paginated browse, filtered browse and search paths. The
// caller passes visibility-filter fragments built for the requesting viewer;
// an anonymous viewer passes empty slices.
func (r *VideoRepo) List(ctx context.Context, opts ListOptions, filterClauses []string, filterArgs []any) (*model.VideoListResponse, error) {
	limit := opts.Limit
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}

	clauses, args := buildWhere(opts, filterClauses, filterArgs)
	whereSQL := sqlbuild.WhereSQL(clauses)

	countQuery := sqlbuild.Rebind(`SELECT COUNT(*) FROM videos ` + whereSQL)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "count videos", err)
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := (page - 1) * limit

	query := sqlbuild.Rebind(
		`SELECT ` + videoColumns + ` FROM videos ` + whereSQL + ` ` +
			sortSQL(opts.Sort) + ` LIMIT ? OFFSET ?`)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list videos", err)
	}
	defer rows.Close()

	videos, err := scanVideos(rows)
	if err != nil {
		return nil, err
	}

	return &model.VideoListResponse{
		Data: videos,
		Pagination: model.PageInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Random returns a random sample of visible videos.
func (r *VideoRepo) Random(ctx context.Context, limit int, filterClauses []string, filterArgs []any) ([]model.Video, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}

	approved := true
	clauses, args := buildWhere(ListOptions{Approved: &approved}, filterClauses, filterArgs)

	query := sqlbuild.Rebind(
		`SELECT ` + videoColumns + ` FROM videos ` + sqlbuild.WhereSQL(clauses) +
			` ORDER BY random() LIMIT ?`)
	rows, err := r.pool.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "random videos", err)
	}
	defer rows.Close()

	return scanVideos(rows)
}

// ListSaved returns a viewer's saved videos, newest saved first, with the
// visibility filter applied like every other listing path.
func (r *VideoRepo) ListSaved(ctx context.Context, userID int64, page, limit int, filterClauses []string, filterArgs []any) (*model.VideoListResponse, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	clauses := append([]string{"sv.user_id = ?"}, filterClauses...)
	args := append([]any{userID}, filterArgs...)
	whereSQL := sqlbuild.WhereSQL(clauses)

	joinSQL := ` FROM videos JOIN saved_videos sv ON sv.video_id = videos.id `

	countQuery := sqlbuild.Rebind(`SELECT COUNT(*)` + joinSQL + whereSQL)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "count saved videos", err)
	}

	query := sqlbuild.Rebind(
		`SELECT ` + videoColumns + joinSQL + whereSQL +
			` ORDER BY sv.created_at DESC LIMIT ? OFFSET ?`)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list saved videos", err)
	}
	defer rows.Close()

	videos, err := scanVideos(rows)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return &model.VideoListResponse{
		Data: videos,
		Pagination: model.PageInfo{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func scanVideos(rows pgx.Rows) ([]model.Video, error) {
	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(
			&v.ID, &v.VideoID, &v.ShortID, &v.UserID,
			&v.Title, &v.Description, &v.Thumbnail, &v.Duration,
			&v.Views, &v.Rating, &v.Approved, &v.Featured,
			&v.Privacy, &v.IsShort, &v.PublicationDate, &v.CreatedAt,
		)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "scan video", err)
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
