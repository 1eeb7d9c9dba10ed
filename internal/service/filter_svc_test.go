package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeResolver struct {
	videoIDs   []int64
	creatorIDs []int64
	videoErr   error
	creatorErr error
	calls      int
}

func (f *fakeResolver) BlockedVideoIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	f.calls++
	return f.videoIDs, f.videoErr
}

func (f *fakeResolver) BlockedCreatorIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	f.calls++
	return f.creatorIDs, f.creatorErr
}

func TestBuildVideoFilter_AnonymousViewer(t *testing.T) {
	resolver := &fakeResolver{videoIDs: []int64{1, 2}, creatorIDs: []int64{3}}
	svc := NewFilterService(resolver)

	for _, viewerID := range []int64{0, -1, -42} {
		clauses, args := svc.BuildVideoFilter(context.Background(), viewerID)
		if len(clauses) != 0 || len(args) != 0 {
			t.Errorf("viewer %d: got %d clauses, %d args, want none", viewerID, len(clauses), len(args))
		}
	}
	if resolver.calls != 0 {
		t.Errorf("resolver called %d times for anonymous viewers, want 0", resolver.calls)
	}
}

func TestBuildVideoFilter_NoBlocks(t *testing.T) {
	svc := NewFilterService(&fakeResolver{})

	clauses, args := svc.BuildVideoFilter(context.Background(), 7)

	if len(clauses) != 1 {
		t.Fatalf("got %d clauses, want 1 (user-block predicate only)", len(clauses))
	}
	if !strings.Contains(clauses[0], "NOT EXISTS") || !strings.Contains(clauses[0], "user_blocks") {
		t.Errorf("clause = %q, want the user_blocks NOT EXISTS predicate", clauses[0])
	}
	if !reflect.DeepEqual(args, []any{int64(7)}) {
		t.Errorf("args = %v, want [7]", args)
	}
}

func TestBuildVideoFilter_BlockedVideosAndCreators(t *testing.T) {
	resolver := &fakeResolver{
		videoIDs:   []int64{10, 11, 12},
		creatorIDs: []int64{20, 21},
	}
	svc := NewFilterService(resolver)

	clauses, args := svc.BuildVideoFilter(context.Background(), 5)

	if len(clauses) != 3 {
		t.Fatalf("got %d clauses, want 3", len(clauses))
	}
	if clauses[0] != "videos.id NOT IN (?, ?, ?)" {
		t.Errorf("video clause = %q", clauses[0])
	}
	if clauses[1] != "videos.user_id NOT IN (?, ?)" {
		t.Errorf("creator clause = %q", clauses[1])
	}

	want := []any{int64(10), int64(11), int64(12), int64(20), int64(21), int64(5)}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildVideoFilter_PlaceholderCountMatchesArgs(t *testing.T) {
	resolver := &fakeResolver{
		videoIDs:   []int64{1, 2, 3, 4},
		creatorIDs: []int64{9},
	}
	svc := NewFilterService(resolver)

	clauses, args := svc.BuildVideoFilter(context.Background(), 3)

	placeholders := 0
	for _, clause := range clauses {
		placeholders += strings.Count(clause, "?")
	}
	if placeholders != len(args) {
		t.Errorf("%d placeholders but %d args", placeholders, len(args))
	}
}

func TestBuildVideoFilter_ResolverErrorDegrades(t *testing.T) {
	tests := []struct {
		name     string
		resolver *fakeResolver
	}{
		{"video lookup fails", &fakeResolver{videoErr: errors.New("connection refused")}},
		{"creator lookup fails", &fakeResolver{videoIDs: []int64{4}, creatorErr: errors.New("timeout")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFilterService(tt.resolver)
			before := testutil.ToFloat64(filterDegradations)
			clauses, args := svc.BuildVideoFilter(context.Background(), 9)

			// Fail open: the listing still works, with only the
			// user-block predicate applied.
			if len(clauses) != 1 {
				t.Fatalf("got %d clauses, want 1", len(clauses))
			}
			if !strings.Contains(clauses[0], "NOT EXISTS") {
				t.Errorf("clause = %q, want the user-block predicate", clauses[0])
			}
			if !reflect.DeepEqual(args, []any{int64(9)}) {
				t.Errorf("args = %v, want [9]", args)
			}
			if got := testutil.ToFloat64(filterDegradations) - before; got != 1 {
				t.Errorf("degradation counter moved by %v, want 1", got)
			}
		})
	}
}

func TestBuildVideoFilter_UserBlockPredicateDisabled(t *testing.T) {
	resolver := &fakeResolver{videoIDs: []int64{10}}
	svc := NewFilterService(resolver)
	svc.includeUserBlocks = false

	clauses, args := svc.BuildVideoFilter(context.Background(), 5)

	if len(clauses) != 1 || clauses[0] != "videos.id NOT IN (?)" {
		t.Fatalf("clauses = %v, want only the video exclusion", clauses)
	}
	if !reflect.DeepEqual(args, []any{int64(10)}) {
		t.Errorf("args = %v, want [10]", args)
	}
	for _, clause := range clauses {
		if strings.Contains(clause, "user_blocks") {
			t.Errorf("clause %q includes the user-block predicate while disabled", clause)
		}
	}
}

func TestBuildCommentFilter_AnonymousViewer(t *testing.T) {
	resolver := &fakeResolver{creatorIDs: []int64{3}}
	svc := NewFilterService(resolver)

	clauses, args := svc.BuildCommentFilter(context.Background(), 0)
	if len(clauses) != 0 || len(args) != 0 {
		t.Errorf("got %d clauses, %d args, want none", len(clauses), len(args))
	}
	if resolver.calls != 0 {
		t.Errorf("resolver called %d times for anonymous viewer, want 0", resolver.calls)
	}
}

func TestBuildCommentFilter_BlockedCreators(t *testing.T) {
	resolver := &fakeResolver{creatorIDs: []int64{20, 21}}
	svc := NewFilterService(resolver)

	clauses, args := svc.BuildCommentFilter(context.Background(), 5)

	if len(clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(clauses))
	}
	if clauses[0] != "comments.user_id NOT IN (?, ?)" {
		t.Errorf("creator clause = %q", clauses[0])
	}
	if !strings.Contains(clauses[1], "ub.blocked_id = comments.user_id") {
		t.Errorf("clause = %q, want the comment-author user-block predicate", clauses[1])
	}
	want := []any{int64(20), int64(21), int64(5)}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildCommentFilter_ResolverErrorDegrades(t *testing.T) {
	resolver := &fakeResolver{creatorErr: errors.New("timeout")}
	svc := NewFilterService(resolver)
	before := testutil.ToFloat64(filterDegradations)

	clauses, args := svc.BuildCommentFilter(context.Background(), 9)

	if len(clauses) != 1 || !strings.Contains(clauses[0], "NOT EXISTS") {
		t.Fatalf("clauses = %v, want only the user-block predicate", clauses)
	}
	if !reflect.DeepEqual(args, []any{int64(9)}) {
		t.Errorf("args = %v, want [9]", args)
	}
	if got := testutil.ToFloat64(filterDegradations) - before; got != 1 {
		t.Errorf("degradation counter moved by %v, want 1", got)
	}
}

func TestBuildVideoFilter_NoValueInterpolation(t *testing.T) {
	resolver := &fakeResolver{videoIDs: []int64{123456}, creatorIDs: []int64{789}}
	svc := NewFilterService(resolver)

	clauses, _ := svc.BuildVideoFilter(context.Background(), 42)

	for _, clause := range clauses {
		for _, digit := range []string{"123456", "789", "42"} {
			if strings.Contains(clause, digit) {
				t.Errorf("clause %q contains raw value %s; values must only appear as bound args", clause, digit)
			}
		}
	}
}
