package service

import (
	"context"
	"fmt"

	"github.com/seatserve/canteen-api/internal/domain"
)

const (
	DefaultOrderListLimit = 50
	MaxOrderListLimit     = 200
)

type DashboardRepository interface {
	CountByStatus(ctx context.Context, canteenIDs []uint) (domain.OrderCounts, error)
	FindByStatus(ctx context.Context, canteenIDs []uint, status domain.OrderStatus, limit int) ([]domain.Order, error)
}

type ManagedCanteenRepository interface {
	FindManagedCanteens(ctx context.Context, userID uint) ([]domain.Canteen, error)
}

type CanteenScoper interface {
	ManagedCanteenIDs(ctx context.Context, actor domain.User) ([]uint, error)
}

// DashboardService serves the manager's polled views. Every query is limited
// to the canteens the actor currently manages.
type DashboardService struct {
	orders   DashboardRepository
	canteens ManagedCanteenRepository
	gate     CanteenScoper
}

func NewDashboardService(orders DashboardRepository, canteens ManagedCanteenRepository, gate CanteenScoper) *DashboardService {
	return &DashboardService{
		orders:   orders,
		canteens: canteens,
		gate:     gate,
	}
}

func (s *DashboardService) OrderCounts(ctx context.Context, actor domain.User) (domain.OrderCounts, error) {
	ids, err := s.gate.ManagedCanteenIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	counts, err := s.orders.CountByStatus(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.orders.CountByStatus -> %w", err)
	}

	return counts, nil
}

func (s *DashboardService) ListOrders(ctx context.Context, actor domain.User, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	ids, err := s.gate.ManagedCanteenIDs(ctx, actor)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultOrderListLimit
	}
	if limit > MaxOrderListLimit {
		limit = MaxOrderListLimit
	}

	orders, err := s.orders.FindByStatus(ctx, ids, status, limit)
	if err != nil {
		return nil, fmt.Errorf("s.orders.FindByStatus -> %w", err)
	}

	return orders, nil
}

func (s *DashboardService) ManagedCanteens(ctx context.Context, actor domain.User) ([]domain.Canteen, error) {
	canteens, err := s.canteens.FindManagedCanteens(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("s.canteens.FindManagedCanteens -> %w", err)
	}

	return canteens, nil
}
