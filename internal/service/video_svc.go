package service

import (
	"context"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
)

// VideoLister is the listing surface of the videos store. Every method
// takes the visibility-filter fragments as built by FilterService.
type VideoLister interface {
	List(ctx context.Context, opts repository.ListOptions, filterClauses []string, filterArgs []any) (*model.VideoListResponse, error)
	Random(ctx context.Context, limit int, filterClauses []string, filterArgs []any) ([]model.Video, error)
	ListSaved(ctx context.Context, userID int64, page, limit int, filterClauses []string, filterArgs []any) (*model.VideoListResponse, error)
}

// VideoService runs every video-reading path through the one visibility
// filter so no listing can forget an exclusion.
type VideoService struct {
	repo   VideoLister
	filter *FilterService
}

func NewVideoService(repo VideoLister, filter *FilterService) *VideoService {
	return &VideoService{repo: repo, filter: filter}
}

// Browse serves the paginated and filtered/sorted browse paths. viewerID
// may be zero for anonymous requests.
func (s *VideoService) Browse(ctx context.Context, viewerID int64, opts repository.ListOptions) (*model.VideoListResponse, error) {
	clauses, args := s.filter.BuildVideoFilter(ctx, viewerID)
	return s.repo.List(ctx, opts, clauses, args)
}

// Search serves title search with the same filter applied.
func (s *VideoService) Search(ctx context.Context, viewerID int64, query string, page, limit int) (*model.VideoListResponse, error) {
	if query == "" {
		return nil, apperr.New(apperr.InvalidArgument, "'q' is required.")
	}
	clauses, args := s.filter.BuildVideoFilter(ctx, viewerID)
	approved := true
	opts := repository.ListOptions{
		Page:     page,
		Limit:    limit,
		Approved: &approved,
		Search:   query,
	}
	return s.repo.List(ctx, opts, clauses, args)
}

// Random returns a random sample of videos visible to the viewer.
func (s *VideoService) Random(ctx context.Context, viewerID int64, limit int) ([]model.Video, error) {
	clauses, args := s.filter.BuildVideoFilter(ctx, viewerID)
	return s.repo.Random(ctx, limit, clauses, args)
}

// Saved lists the viewer's saved videos; an identity is required here.
func (s *VideoService) Saved(ctx context.Context, viewerID int64, page, limit int) (*model.VideoListResponse, error) {
	if viewerID <= 0 {
		return nil, apperr.New(apperr.Unauthenticated, "Authentication required.")
	}
	clauses, args := s.filter.BuildVideoFilter(ctx, viewerID)
	return s.repo.ListSaved(ctx, viewerID, page, limit, clauses, args)
}
