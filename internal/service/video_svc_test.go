package service

import (
	"context"
	"testing"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/repository"
)

type fakeVideoLister struct {
	gotOpts    repository.ListOptions
	gotClauses []string
	gotArgs    []any
	gotSavedID int64

	listCalls   int
	randomCalls int
	savedCalls  int
}

func (f *fakeVideoLister) List(ctx context.Context, opts repository.ListOptions, clauses []string, args []any) (*model.VideoListResponse, error) {
	f.listCalls++
	f.gotOpts = opts
	f.gotClauses = clauses
	f.gotArgs = args
	return &model.VideoListResponse{}, nil
}

func (f *fakeVideoLister) Random(ctx context.Context, limit int, clauses []string, args []any) ([]model.Video, error) {
	f.randomCalls++
	f.gotClauses = clauses
	f.gotArgs = args
	return nil, nil
}

func (f *fakeVideoLister) ListSaved(ctx context.Context, userID int64, page, limit int, clauses []string, args []any) (*model.VideoListResponse, error) {
	f.savedCalls++
	f.gotSavedID = userID
	f.gotClauses = clauses
	f.gotArgs = args
	return &model.VideoListResponse{}, nil
}

func newVideoServiceForTest(resolver *fakeResolver) (*VideoService, *fakeVideoLister) {
	repo := &fakeVideoLister{}
	return NewVideoService(repo, NewFilterService(resolver)), repo
}

func TestVideoService_BrowseAppliesFilter(t *testing.T) {
	svc, repo := newVideoServiceForTest(&fakeResolver{videoIDs: []int64{9}})

	_, err := svc.Browse(context.Background(), 4, repository.ListOptions{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("list called %d times, want 1", repo.listCalls)
	}
	// blocked-video exclusion plus the user-block predicate
	if len(repo.gotClauses) != 2 {
		t.Errorf("got %d filter clauses, want 2: %v", len(repo.gotClauses), repo.gotClauses)
	}
}

func TestVideoService_SearchRequiresQuery(t *testing.T) {
	svc, repo := newVideoServiceForTest(&fakeResolver{})

	_, err := svc.Search(context.Background(), 1, "", 1, 20)
	if !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("err = %v, want InvalidArgument", err)
	}
	if repo.listCalls != 0 {
		t.Errorf("list called %d times for empty query, want 0", repo.listCalls)
	}
}

func TestVideoService_SearchForcesApproved(t *testing.T) {
	svc, repo := newVideoServiceForTest(&fakeResolver{})

	_, err := svc.Search(context.Background(), 1, "cats", 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotOpts.Approved == nil || !*repo.gotOpts.Approved {
		t.Errorf("opts.Approved = %v, want true", repo.gotOpts.Approved)
	}
	if repo.gotOpts.Search != "cats" || repo.gotOpts.Page != 2 || repo.gotOpts.Limit != 10 {
		t.Errorf("opts = %+v", repo.gotOpts)
	}
}

func TestVideoService_RandomFilteredForViewer(t *testing.T) {
	svc, repo := newVideoServiceForTest(&fakeResolver{creatorIDs: []int64{7}})

	if _, err := svc.Random(context.Background(), 3, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.randomCalls != 1 {
		t.Fatalf("random called %d times, want 1", repo.randomCalls)
	}
	if len(repo.gotClauses) != 2 {
		t.Errorf("got %d filter clauses, want 2: %v", len(repo.gotClauses), repo.gotClauses)
	}
}

func TestVideoService_SavedRequiresIdentity(t *testing.T) {
	svc, repo := newVideoServiceForTest(&fakeResolver{})

	_, err := svc.Saved(context.Background(), 0, 1, 20)
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Errorf("err = %v, want Unauthenticated", err)
	}
	if repo.savedCalls != 0 {
		t.Errorf("saved called %d times for anonymous viewer, want 0", repo.savedCalls)
	}

	if _, err := svc.Saved(context.Background(), 6, 1, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotSavedID != 6 {
		t.Errorf("saved user id = %d, want 6", repo.gotSavedID)
	}
}
