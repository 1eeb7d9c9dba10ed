package service

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/elise-tremblay/ClipNest/clipnest-go/pkg/sqlbuild"
)

var (
	filterBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clipnest_filter_build_duration_seconds",
		Help:    "Time spent building visibility filters",
		Buckets: prometheus.DefBuckets,
	})
	filterDegradations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipnest_filter_degradations_total",
		Help: "Filter builds that fell back to the user-block predicate after a resolver error",
	})
)

// BlockedIDResolver is what the filter builder needs from the resolvers.
// Implementations are expected to be fail-safe; the builder still guards
// against a returned error and degrades rather than failing the caller.
type BlockedIDResolver interface {
	BlockedVideoIDs(ctx context.Context, viewerID int64) ([]int64, error)
	BlockedCreatorIDs(ctx context.Context, viewerID int64) ([]int64, error)
}

// FilterService is the single source of truth for which videos are hidden
// from a viewer. Every video-reading path (browse, filtered browse, search,
// random, saved) splices its output into its own query.
type FilterService struct {
	resolver BlockedIDResolver

	// includeUserBlocks controls the unconditional user-block predicate.
	// On by default; only tests turn it off.
	includeUserBlocks bool
}

func NewFilterService(resolver BlockedIDResolver) *FilterService {
	return &FilterService{resolver: resolver, includeUserBlocks: true}
}

// userBlockClause is a correlated subquery rather than `user_id NOT IN
// (SELECT ...)`: a NOT IN whose subquery yields any NULL matches zero rows,
// silently hiding the entire catalog. NOT EXISTS has no such failure mode
// and scales independent of how many users are blocked.
const userBlockClause = "NOT EXISTS (SELECT 1 FROM user_blocks ub WHERE ub.blocker_id = ? AND ub.blocked_id = videos.user_id)"

// BuildVideoFilter returns WHERE fragments and their bound parameters that
// exclude blocked videos, blocked creators' videos and blocked users'
// videos for the given viewer. Fragments use `?` placeholders exclusively;
// no value or identifier is ever concatenated into the clause text. Callers
// append the fragments to their own clauses, keep the argument order
// aligned, and rebind once at assembly.
//
// Anonymous or invalid viewers get an empty filter: no exclusions are
// applied without an identity. A resolver failure degrades the filter to
// the user-block predicate alone instead of failing the listing.
func (s *FilterService) BuildVideoFilter(ctx context.Context, viewerID int64) ([]string, []any) {
	var clauses []string
	var args []any

	if viewerID <= 0 {
		return clauses, args
	}

	start := time.Now()
	defer func() { filterBuildDuration.Observe(time.Since(start).Seconds()) }()

	blockedVideos, err := s.resolver.BlockedVideoIDs(ctx, viewerID)
	if err == nil {
		var blockedCreators []int64
		blockedCreators, err = s.resolver.BlockedCreatorIDs(ctx, viewerID)
		if err == nil {
			if len(blockedVideos) > 0 {
				clauses = append(clauses, "videos.id NOT IN ("+sqlbuild.Placeholders(len(blockedVideos))+")")
				for _, id := range blockedVideos {
					args = append(args, id)
				}
			}
			if len(blockedCreators) > 0 {
				clauses = append(clauses, "videos.user_id NOT IN ("+sqlbuild.Placeholders(len(blockedCreators))+")")
				for _, id := range blockedCreators {
					args = append(args, id)
				}
			}
		}
	}
	if err != nil {
		// Fail open: drop the id exclusions, keep the user-block predicate.
		filterDegradations.Inc()
		log.Printf("filter: resolver error for viewer %d, degrading to user-block filter only: %v", viewerID, err)
		clauses = clauses[:0]
		args = args[:0]
	}

	if s.includeUserBlocks {
		clauses = append(clauses, userBlockClause)
		args = append(args, viewerID)
	}

	return clauses, args
}

// commentUserBlockClause mirrors userBlockClause for comment authors; see
// the NOT EXISTS rationale above.
const commentUserBlockClause = "NOT EXISTS (SELECT 1 FROM user_blocks ub WHERE ub.blocker_id = ? AND ub.blocked_id = comments.user_id)"

// BuildCommentFilter returns WHERE fragments that hide comments authored by
// users the viewer has blocked or creators the viewer has a block against.
// Same contract as BuildVideoFilter: `?` placeholders only, empty filter for
// anonymous viewers, fail-open degradation on resolver errors.
func (s *FilterService) BuildCommentFilter(ctx context.Context, viewerID int64) ([]string, []any) {
	var clauses []string
	var args []any

	if viewerID <= 0 {
		return clauses, args
	}

	start := time.Now()
	defer func() { filterBuildDuration.Observe(time.Since(start).Seconds()) }()

	blockedCreators, err := s.resolver.BlockedCreatorIDs(ctx, viewerID)
	if err != nil {
		filterDegradations.Inc()
		log.Printf("filter: resolver error for viewer %d, degrading comment filter to user-block only: %v", viewerID, err)
	} else if len(blockedCreators) > 0 {
		clauses = append(clauses, "comments.user_id NOT IN ("+sqlbuild.Placeholders(len(blockedCreators))+")")
		for _, id := range blockedCreators {
			args = append(args, id)
		}
	}

	if s.includeUserBlocks {
		clauses = append(clauses, commentUserBlockClause)
		args = append(args, viewerID)
	}

	return clauses, args
}
