package service

import (
	"context"
	"errors"
	"testing"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

type fakeUserStore struct {
	exists bool
	err    error
}

func (f *fakeUserStore) Exists(ctx context.Context, userID int64) (bool, error) {
	return f.exists, f.err
}

type fakeUserBlockStore struct {
	inserted bool
	deleted  bool
	blocks   []model.UserBlock
	err      error

	createCalls int
	deleteCalls int
}

func (f *fakeUserBlockStore) Create(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	f.createCalls++
	return f.inserted, f.err
}

func (f *fakeUserBlockStore) Delete(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	f.deleteCalls++
	return f.deleted, f.err
}

func (f *fakeUserBlockStore) ListByBlocker(ctx context.Context, blockerID int64) ([]model.UserBlock, error) {
	return f.blocks, f.err
}

func TestUserBlock_Block(t *testing.T) {
	tests := []struct {
		name       string
		blockerID  int64
		blockedID  int64
		userExists bool
		inserted   bool
		wantErr    bool
		wantKind   apperr.Kind
	}{
		{"happy path", 1, 2, true, true, false, 0},
		{"self block", 3, 3, true, true, true, apperr.Conflict},
		{"zero blocker", 0, 2, true, true, true, apperr.InvalidArgument},
		{"negative target", 1, -4, true, true, true, apperr.InvalidArgument},
		{"target does not exist", 1, 2, false, true, true, apperr.NotFound},
		{"already blocked", 1, 2, true, false, true, apperr.Conflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserBlockStore{inserted: tt.inserted}
			svc := NewUserBlockService(repo, &fakeUserStore{exists: tt.userExists})

			err := svc.Block(context.Background(), tt.blockerID, tt.blockedID)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperr.IsKind(err, tt.wantKind) {
				t.Errorf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestUserBlock_Block_StorageError(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewUserBlockService(&fakeUserBlockStore{err: boom}, &fakeUserStore{exists: true})

	if err := svc.Block(context.Background(), 1, 2); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestUserBlock_Unblock(t *testing.T) {
	t.Run("removes existing block", func(t *testing.T) {
		repo := &fakeUserBlockStore{deleted: true}
		svc := NewUserBlockService(repo, &fakeUserStore{exists: true})

		if err := svc.Unblock(context.Background(), 1, 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.deleteCalls != 1 {
			t.Errorf("delete called %d times, want 1", repo.deleteCalls)
		}
	})

	t.Run("never blocked is not found", func(t *testing.T) {
		svc := NewUserBlockService(&fakeUserBlockStore{deleted: false}, &fakeUserStore{exists: true})

		err := svc.Unblock(context.Background(), 1, 2)
		if !apperr.IsKind(err, apperr.NotFound) {
			t.Errorf("err = %v, want NotFound", err)
		}
	})

	t.Run("self unblock rejected before storage", func(t *testing.T) {
		repo := &fakeUserBlockStore{deleted: true}
		svc := NewUserBlockService(repo, &fakeUserStore{exists: true})

		err := svc.Unblock(context.Background(), 5, 5)
		if !apperr.IsKind(err, apperr.Conflict) {
			t.Errorf("err = %v, want Conflict", err)
		}
		if repo.deleteCalls != 0 {
			t.Errorf("delete called %d times, want 0", repo.deleteCalls)
		}
	})
}

func TestUserBlock_ListBlocked(t *testing.T) {
	blocks := []model.UserBlock{{BlockerID: 1, BlockedID: 2, Username: "spammer"}}
	svc := NewUserBlockService(&fakeUserBlockStore{blocks: blocks}, &fakeUserStore{exists: true})

	got, err := svc.ListBlocked(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Username != "spammer" {
		t.Errorf("blocks = %+v", got)
	}

	if _, err := svc.ListBlocked(context.Background(), 0); !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("err = %v, want InvalidArgument for invalid viewer", err)
	}
}
