package service

import (
	"context"
	"log"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
)

// VideoStore provides the video existence check for write-time referential
// validation.
type VideoStore interface {
	Exists(ctx context.Context, videoID int64) (bool, error)
}

// VideoBlockAdminStore is the write-side persistence surface for video
// blocks.
type VideoBlockAdminStore interface {
	Create(ctx context.Context, b *model.VideoBlock) (*model.VideoBlock, error)
	Lift(ctx context.Context, blockID, liftedBy int64) error
	Owner(ctx context.Context, blockID int64) (blockedBy int64, active bool, err error)
}

type VideoBlockService struct {
	repo   VideoBlockAdminStore
	videos VideoStore
	cache  *CacheService
}

func NewVideoBlockService(repo VideoBlockAdminStore, videos VideoStore, cache *CacheService) *VideoBlockService {
	return &VideoBlockService{repo: repo, videos: videos, cache: cache}
}

// Block creates an active video block. Global blocks are reserved for
// privileged actors; the optional [startAt, endAt) window must be well
// formed, with endAt == 0 meaning unbounded.
func (s *VideoBlockService) Block(ctx context.Context, b *model.VideoBlock, actorRole string) (*model.VideoBlock, error) {
	if b.VideoID <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'videoId' must be a positive integer.")
	}
	if b.BlockedBy <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'blockedBy' must be a positive integer.")
	}
	if !repository.ValidBlockTypes[b.BlockType] {
		return nil, apperr.Newf(apperr.InvalidArgument, "Invalid block type %q.", b.BlockType)
	}
	if b.BlockType == repository.BlockTypeGlobal && !model.IsPrivileged(actorRole) {
		return nil, apperr.New(apperr.Unauthenticated, "Global blocks require a moderator or admin role.")
	}
	if b.StartAt < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'startAt' must be a non-negative integer.")
	}
	if b.EndAt < 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'endAt' must be a non-negative integer.")
	}
	if b.EndAt != 0 && b.EndAt <= b.StartAt {
		return nil, apperr.New(apperr.InvalidArgument, "'endAt' must be greater than 'startAt'.")
	}

	exists, err := s.videos.Exists(ctx, b.VideoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Video not found.")
	}

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.BlockedBy)
	return created, nil
}

// Unblock lifts a video block. Only the placing viewer or a privileged
// actor may lift; anyone else sees not-found.
func (s *VideoBlockService) Unblock(ctx context.Context, blockID, actorID int64, actorRole string) error {
	if blockID <= 0 {
		return apperr.New(apperr.InvalidArgument, "'blockId' must be a positive integer.")
	}
	if actorID <= 0 {
		return apperr.New(apperr.InvalidArgument, "'liftedBy' must be a positive integer.")
	}

	owner, _, err := s.repo.Owner(ctx, blockID)
	if err != nil {
		return err
	}
	if owner != actorID && !model.IsPrivileged(actorRole) {
		return apperr.New(apperr.NotFound, "Block record not found.")
	}

	if err := s.repo.Lift(ctx, blockID, actorID); err != nil {
		return err
	}

	s.invalidate(ctx, owner)
	return nil
}

func (s *VideoBlockService) invalidate(ctx context.Context, viewerID int64) {
	if err := s.cache.InvalidateViewer(ctx, viewerID); err != nil {
		log.Printf("video-block: cache invalidate error for viewer %d: %v", viewerID, err)
	}
}
