package service

import (
	"context"

	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/model"
)

// UserBlockAdminStore is the persistence surface for the binary user→user
// block relation.
type UserBlockAdminStore interface {
	Create(ctx context.Context, blockerID, blockedID int64) (bool, error)
	Delete(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListByBlocker(ctx context.Context, blockerID int64) ([]model.UserBlock, error)
}

// UserBlockService wraps the simplest of the three relations: idempotent
// insert, hard delete, no lifecycle state.
type UserBlockService struct {
	repo  UserBlockAdminStore
	users UserStore
}

func NewUserBlockService(repo UserBlockAdminStore, users UserStore) *UserBlockService {
	return &UserBlockService{repo: repo, users: users}
}

// Block records that blockerID no longer wants to see blockedID. Blocking
// an already-blocked user reports Conflict so the client can tell.
func (s *UserBlockService) Block(ctx context.Context, blockerID, blockedID int64) error {
	if err := validatePair(blockerID, blockedID); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, blockedID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "User not found.")
	}

	inserted, err := s.repo.Create(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if !inserted {
		return apperr.New(apperr.Conflict, "Already blocked.")
	}
	return nil
}

// Unblock removes the relation; unblocking a user that was never blocked is
// not-found, never a silent success.
func (s *UserBlockService) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	if err := validatePair(blockerID, blockedID); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.New(apperr.NotFound, "Not blocked.")
	}
	return nil
}

// ListBlocked returns the viewer's blocked users, newest first.
func (s *UserBlockService) ListBlocked(ctx context.Context, blockerID int64) ([]model.UserBlock, error) {
	if blockerID <= 0 {
		return nil, apperr.New(apperr.InvalidArgument, "'userId' must be a positive integer.")
	}
	return s.repo.ListByBlocker(ctx, blockerID)
}

func validatePair(blockerID, blockedID int64) error {
	if blockerID <= 0 || blockedID <= 0 {
		return apperr.New(apperr.InvalidArgument, "'userId' must be a positive integer.")
	}
	if blockerID == blockedID {
		return apperr.New(apperr.Conflict, "You cannot block yourself.")
	}
	return nil
}
