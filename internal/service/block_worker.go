package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlockCacheWorker listens for PostgreSQL NOTIFY on the 'block_changes'
// channel and drops the cached blocked-id sets of affected viewers, so
// every instance sees a block mutation within one batch window rather than
// waiting out the cache TTL.
type BlockCacheWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[int64]struct{} // viewer IDs waiting for invalidation
}

// NewBlockCacheWorker creates a cache invalidation worker.
func NewBlockCacheWorker(pool *pgxpool.Pool, cache *CacheService) *BlockCacheWorker {
	return &BlockCacheWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 2 * time.Second,
		pending: make(map[int64]struct{}),
	}
}

// Start begins listening for block_changes notifications and processing
// batches. Blocks until ctx is cancelled.
func (w *BlockCacheWorker) Start(ctx context.Context) {
	log.Printf("block-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("block-worker: stopping (context cancelled)")
				return
			}
			log.Printf("block-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("block-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on block_changes,
// and collects notifications into batched windows.
func (w *BlockCacheWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN block_changes")
	if err != nil {
		return err
	}
	log.Println("block-worker: listening on block_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		viewerID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil || viewerID <= 0 {
			continue
		}

		w.mu.Lock()
		w.pending[viewerID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and invalidates caches.
func (w *BlockCacheWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and drops each viewer's cached sets.
func (w *BlockCacheWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	invalidated := 0
	for viewerID := range batch {
		if err := w.cache.InvalidateViewer(ctx, viewerID); err != nil {
			log.Printf("block-worker: cache invalidate error for viewer %d: %v", viewerID, err)
			continue
		}
		invalidated++
	}

	if invalidated > 0 {
		log.Printf("block-worker: batch complete — %d viewers invalidated (from %d notifications)",
			invalidated, len(batch))
	}
}
