package service

import (
	"context"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

// CommentLister is the listing surface of the comments store.
type CommentLister interface {
	ListByVideo(ctx context.Context, videoID int64, page, limit int, filterClauses []string, filterArgs []any) (*model.CommentListResponse, error)
}

// CommentService serves a video's comment listing with the viewer's
// visibility filter applied, so blocked authors never surface.
type CommentService struct {
	repo   CommentLister
	videos VideoStore
	filter *FilterService
}

func NewCommentService(repo CommentLister, videos VideoStore, filter *FilterService) *CommentService {
	return &CommentService{repo: repo, videos: videos, filter: filter}
}

// ListForVideo returns the comments on a video the viewer is allowed to
// see. viewerID may be zero for anonymous requests.
func (s *CommentService) ListForVideo(ctx context.Context, viewerID, videoID int64, page, limit int) (*model.CommentListResponse, error) {
	if videoID <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'videoId' must be a positive integer.")
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Video not found.")
	}

	clauses, args := s.filter.BuildCommentFilter(ctx, viewerID)
	return s.repo.ListByVideo(ctx, videoID, page, limit, clauses, args)
}
