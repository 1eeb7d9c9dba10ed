package service

import (
	"context"
	"log"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
)

// CreatorBlockStore is the persistence surface the resolvers need for
// creator blocks.
type CreatorBlockStore interface {
	ActiveCreatorIDs(ctx context.Context, blockedBy int64, p repository.Pagination) ([]int64, error)
	ListByBlocker(ctx context.Context, blockedBy int64, active *bool, p repository.Pagination) ([]model.CreatorBlock, error)
}

// VideoBlockStore is the persistence surface the resolvers need for video
// blocks.
type VideoBlockStore interface {
	ActiveVideoIDs(ctx context.Context, blockedBy int64, p repository.Pagination) ([]int64, error)
	ListByBlocker(ctx context.Context, blockedBy int64, active *bool, blockType string, p repository.Pagination) ([]model.VideoBlock, error)
}

// ResolverService translates a viewer id into blocked-id sets. It exposes
// two distinct operation families rather than a mode flag: Resolve* is
// fail-safe (empty set on any error, for the filter/browse path), List* is
// strict (full records, errors surfaced, for the admin-facing endpoints).
type ResolverService struct {
	creators CreatorBlockStore
	videos   VideoBlockStore
	cache    *CacheService
}

func NewResolverService(creators CreatorBlockStore, videos VideoBlockStore, cache *CacheService) *ResolverService {
	return &ResolverService{creators: creators, videos: videos, cache: cache}
}

// resolverPage bounds the id reads; a viewer with more than 500 active
// blocks of one kind gets the newest 500 applied.
var resolverPage = repository.Pagination{Limit: repository.MaxBlockListLimit, Offset: 0}.Clamped()

// BlockedVideoIDs returns the normalized set of video ids hidden from the
// viewer. Invalid viewer ids short-circuit to an empty set without touching
// storage. Storage errors propagate; use ResolveBlockedVideoIDs for the
// fail-safe variant.
func (s *ResolverService) BlockedVideoIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	if ids, ok := s.cache.GetBlockedIDs(ctx, CacheKindVideos, viewerID); ok {
		return ids, nil
	}

	raw, err := s.videos.ActiveVideoIDs(ctx, viewerID, resolverPage)
	if err != nil {
		return nil, err
	}
	ids := normalizeIDs(raw)

	if err := s.cache.SetBlockedIDs(ctx, CacheKindVideos, viewerID, ids); err != nil {
		log.Printf("resolver: cache set (videos) error: %v", err)
	}
	return ids, nil
}

// BlockedCreatorIDs returns the normalized set of creator ids the viewer
// has blocked. Same contract as BlockedVideoIDs.
func (s *ResolverService) BlockedCreatorIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	if ids, ok := s.cache.GetBlockedIDs(ctx, CacheKindCreators, viewerID); ok {
		return ids, nil
	}

	raw, err := s.creators.ActiveCreatorIDs(ctx, viewerID, resolverPage)
	if err != nil {
		return nil, err
	}
	ids := normalizeIDs(raw)

	if err := s.cache.SetBlockedIDs(ctx, CacheKindCreators, viewerID, ids); err != nil {
		log.Printf("resolver: cache set (creators) error: %v", err)
	}
	return ids, nil
}

// ResolveBlockedVideoIDs is the fail-safe form of BlockedVideoIDs: a video
// listing must never break because a block lookup hiccuped, so errors are
// logged and collapse to an empty set.
func (s *ResolverService) ResolveBlockedVideoIDs(ctx context.Context, viewerID int64) []int64 {
	ids, err := s.BlockedVideoIDs(ctx, viewerID)
	if err != nil {
		log.Printf("resolver: blocked video ids error for viewer %d: %v", viewerID, err)
		return nil
	}
	return ids
}

// ResolveBlockedCreatorIDs is the fail-safe form of BlockedCreatorIDs.
func (s *ResolverService) ResolveBlockedCreatorIDs(ctx context.Context, viewerID int64) []int64 {
	ids, err := s.BlockedCreatorIDs(ctx, viewerID)
	if err != nil {
		log.Printf("resolver: blocked creator ids error for viewer %d: %v", viewerID, err)
		return nil
	}
	return ids
}

// ListBlockedCreators is the strict, admin-facing listing: full records,
// pagination validated, errors surfaced.
func (s *ResolverService) ListBlockedCreators(ctx context.Context, viewerID int64, active *bool, p repository.Pagination) ([]model.CreatorBlock, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	p, err := p.Strict()
	if err != nil {
		return nil, err
	}
	return s.creators.ListByBlocker(ctx, viewerID, active, p)
}

// ListBlockedVideos is the strict, admin-facing video-block listing.
func (s *ResolverService) ListBlockedVideos(ctx context.Context, viewerID int64, active *bool, blockType string, p repository.Pagination) ([]model.VideoBlock, error) {
	if viewerID <= 0 {
		return nil, nil
	}
	p, err := p.Strict()
	if err != nil {
		return nil, err
	}
	return s.videos.ListByBlocker(ctx, viewerID, active, blockType, p)
}

// normalizeIDs dedupes and keeps only positive ids, preserving order.
// Corrupt values from storage are dropped silently.
func normalizeIDs(raw []int64) []int64 {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(raw))
	ids := make([]int64, 0, len(raw))
	for _, id := range raw {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
