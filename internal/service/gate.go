package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/seatserve/canteen-api/internal/domain"
)

type ManagerAssignmentRepository interface {
	FindManagedCanteenIDs(ctx context.Context, userID uint) ([]uint, error)
}

// ManagerGate decides which canteens an authenticated actor may act on. The
// actor is always passed in explicitly.
type ManagerGate struct {
	repo ManagerAssignmentRepository
}

func NewManagerGate(repo ManagerAssignmentRepository) *ManagerGate {
	return &ManagerGate{
		repo: repo,
	}
}

// ManagedCanteenIDs returns the canteens the actor is the active manager of.
// An actor managing nothing is forbidden.
func (g *ManagerGate) ManagedCanteenIDs(ctx context.Context, actor domain.User) ([]uint, error) {
	if actor.ID == 0 {
		return nil, ErrForbidden
	}

	ids, err := g.repo.FindManagedCanteenIDs(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("g.repo.FindManagedCanteenIDs -> %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrForbidden
	}

	return ids, nil
}

// Authorize succeeds iff the actor is the canteen's active manager.
func (g *ManagerGate) Authorize(ctx context.Context, actor domain.User, canteenID uint) error {
	ids, err := g.ManagedCanteenIDs(ctx, actor)
	if err != nil {
		return err
	}
	if !slices.Contains(ids, canteenID) {
		return ErrForbidden
	}

	return nil
}
