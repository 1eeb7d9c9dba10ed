package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
)

type fakeCreatorStore struct {
	ids     []int64
	blocks  []model.CreatorBlock
	err     error
	idCalls int
	gotPage repository.Pagination
}

func (f *fakeCreatorStore) ActiveCreatorIDs(ctx context.Context, blockedBy int64, p repository.Pagination) ([]int64, error) {
	f.idCalls++
	f.gotPage = p
	return f.ids, f.err
}

func (f *fakeCreatorStore) ListByBlocker(ctx context.Context, blockedBy int64, active *bool, p repository.Pagination) ([]model.CreatorBlock, error) {
	f.gotPage = p
	return f.blocks, f.err
}

type fakeVideoBlockStore struct {
	ids     []int64
	blocks  []model.VideoBlock
	err     error
	idCalls int
}

func (f *fakeVideoBlockStore) ActiveVideoIDs(ctx context.Context, blockedBy int64, p repository.Pagination) ([]int64, error) {
	f.idCalls++
	return f.ids, f.err
}

func (f *fakeVideoBlockStore) ListByBlocker(ctx context.Context, blockedBy int64, active *bool, blockType string, p repository.Pagination) ([]model.VideoBlock, error) {
	return f.blocks, f.err
}

func newTestResolver(creators *fakeCreatorStore, videos *fakeVideoBlockStore) *ResolverService {
	// nil cache: every lookup goes to the store
	return NewResolverService(creators, videos, nil)
}

func TestBlockedIDs_InvalidViewerSkipsStorage(t *testing.T) {
	creators := &fakeCreatorStore{ids: []int64{1}}
	videos := &fakeVideoBlockStore{ids: []int64{2}}
	svc := newTestResolver(creators, videos)

	for _, viewerID := range []int64{0, -5} {
		ids, err := svc.BlockedVideoIDs(context.Background(), viewerID)
		if err != nil || len(ids) != 0 {
			t.Errorf("BlockedVideoIDs(%d) = %v, %v, want empty, nil", viewerID, ids, err)
		}
		ids, err = svc.BlockedCreatorIDs(context.Background(), viewerID)
		if err != nil || len(ids) != 0 {
			t.Errorf("BlockedCreatorIDs(%d) = %v, %v, want empty, nil", viewerID, ids, err)
		}
	}

	if creators.idCalls != 0 || videos.idCalls != 0 {
		t.Errorf("storage hit for invalid viewers: creators=%d videos=%d calls", creators.idCalls, videos.idCalls)
	}
}

func TestBlockedIDs_NormalizesStorageRows(t *testing.T) {
	videos := &fakeVideoBlockStore{ids: []int64{5, 5, 0, -3, 8, 5}}
	svc := newTestResolver(&fakeCreatorStore{}, videos)

	ids, err := svc.BlockedVideoIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{5, 8}) {
		t.Errorf("ids = %v, want [5 8] (deduped, non-positive dropped, order kept)", ids)
	}
}

func TestBlockedIDs_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("pool exhausted")
	svc := newTestResolver(&fakeCreatorStore{err: boom}, &fakeVideoBlockStore{err: boom})

	if _, err := svc.BlockedVideoIDs(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("BlockedVideoIDs error = %v, want %v", err, boom)
	}
	if _, err := svc.BlockedCreatorIDs(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("BlockedCreatorIDs error = %v, want %v", err, boom)
	}
}

func TestResolveBlockedIDs_FailSafe(t *testing.T) {
	boom := errors.New("pool exhausted")
	svc := newTestResolver(&fakeCreatorStore{err: boom}, &fakeVideoBlockStore{err: boom})

	if ids := svc.ResolveBlockedVideoIDs(context.Background(), 1); len(ids) != 0 {
		t.Errorf("ResolveBlockedVideoIDs = %v, want empty on storage error", ids)
	}
	if ids := svc.ResolveBlockedCreatorIDs(context.Background(), 1); len(ids) != 0 {
		t.Errorf("ResolveBlockedCreatorIDs = %v, want empty on storage error", ids)
	}
}

func TestBlockedIDs_UsesBoundedPage(t *testing.T) {
	creators := &fakeCreatorStore{}
	svc := newTestResolver(creators, &fakeVideoBlockStore{})

	if _, err := svc.BlockedCreatorIDs(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creators.gotPage.Limit != repository.MaxBlockListLimit {
		t.Errorf("id read limit = %d, want %d", creators.gotPage.Limit, repository.MaxBlockListLimit)
	}
}

func TestListBlockedCreators_StrictPagination(t *testing.T) {
	tests := []struct {
		name    string
		page    repository.Pagination
		wantErr bool
	}{
		{"valid", repository.Pagination{Limit: 100, Offset: 0}, false},
		{"limit too small", repository.Pagination{Limit: 0, Offset: 0}, true},
		{"limit too large", repository.Pagination{Limit: 501, Offset: 0}, true},
		{"negative offset", repository.Pagination{Limit: 10, Offset: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestResolver(&fakeCreatorStore{}, &fakeVideoBlockStore{})
			_, err := svc.ListBlockedCreators(context.Background(), 1, nil, tt.page)

			if tt.wantErr {
				if !apperr.IsKind(err, apperr.InvalidArgument) {
					t.Errorf("err = %v, want InvalidArgument", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestListBlockedVideos_InvalidViewerEmpty(t *testing.T) {
	videos := &fakeVideoBlockStore{blocks: []model.VideoBlock{{ID: 1}}}
	svc := newTestResolver(&fakeCreatorStore{}, videos)

	blocks, err := svc.ListBlockedVideos(context.Background(), 0, nil, "", repository.Pagination{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks for anonymous viewer, want 0", len(blocks))
	}
}
