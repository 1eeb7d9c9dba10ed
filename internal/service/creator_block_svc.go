package service

import (
	"context"
	"log"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

// UserStore provides the referential existence check the block admin
// operations perform at write time (the schema carries no FK for it).
type UserStore interface {
	Exists(ctx context.Context, userID int64) (bool, error)
}

// CreatorBlockAdminStore is the write-side persistence surface for creator
// blocks.
type CreatorBlockAdminStore interface {
	Create(ctx context.Context, creatorID, blockedBy int64, reason string) (*model.CreatorBlock, error)
	Lift(ctx context.Context, blockID, liftedBy int64) error
	Owner(ctx context.Context, blockID int64) (blockedBy int64, active bool, err error)
}

// CreatorBlockService enforces the business rules in front of the creator
// block store.
type CreatorBlockService struct {
	repo  CreatorBlockAdminStore
	users UserStore
	cache *CacheService
}

func NewCreatorBlockService(repo CreatorBlockAdminStore, users UserStore, cache *CacheService) *CreatorBlockService {
	return &CreatorBlockService{repo: repo, users: users, cache: cache}
}

// Block creates an active creator block for the viewer. The reason is
// assumed already sanitized (trimmed, capped, HTML-escaped) by the handler.
func (s *CreatorBlockService) Block(ctx context.Context, creatorID, blockedBy int64, reason string) (*model.CreatorBlock, error) {
	if creatorID <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'creatorId' must be a positive integer.")
	}
	if blockedBy <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'blockedBy' must be a positive integer.")
	}
	if creatorID == blockedBy {
		return nil, apperr.New(apperr.Conflict, "You cannot block yourself.")
	}

	exists, err := s.users.Exists(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFound, "Creator not found.")
	}

	block, err := s.repo.Create(ctx, creatorID, blockedBy, reason)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, blockedBy)
	return block, nil
}

// Unblock lifts a creator block. Only the viewer that placed the block (or
// a privileged actor) may lift it; anyone else sees not-found.
func (s *CreatorBlockService) Unblock(ctx context.Context, blockID, actorID int64, actorRole string) error {
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

func (s *CreatorBlockService) invalidate(ctx context.Context, viewerID int64) {
	if err := s.cache.InvalidateViewer(ctx, viewerID); err != nil {
		log.Printf("creator-block: cache invalidate error for viewer %d: %v", viewerID, err)
	}
}
