package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository/dao"
)

var (
	ErrOrderNotFound           = dao.ErrOrderNotFound
	ErrDuplicateIdempotencyKey = dao.ErrDuplicateIdempotencyKey
)

type OrderDAO interface {
	InsertOrder(ctx context.Context, order dao.Order) (dao.Order, bool, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (dao.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (dao.Order, error)
	MarkDelivered(ctx context.Context, uid uuid.UUID, at time.Time) (bool, error)
	CountByStatus(ctx context.Context, canteenIDs []uint) ([]dao.StatusCount, error)
	FindByStatus(ctx context.Context, canteenIDs []uint, status string, limit int) ([]dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

// Create appends the order, or returns the order already stored under the same
// idempotency key. The boolean reports an idempotent replay.
func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, bool, error) {
	if order.UID == uuid.Nil {
		order.UID = uuid.New()
	}

	created, replayed, err := r.dao.InsertOrder(ctx, dao.Order{
		OrderUID:       order.UID,
		SeatID:         order.SeatID,
		MenuItemID:     order.MenuItemID,
		OptionID:       order.OptionID,
		Status:         string(domain.OrderStatusNew),
		IdempotencyKey: order.IdempotencyKey,
		CreatedAt:      order.CreatedAt,
	})
	if errors.Is(err, dao.ErrDuplicateIdempotencyKey) {
		// Lost the race against a concurrent retry; the winner's row is the result.
		existing, findErr := r.dao.FindByIdempotencyKey(ctx, *order.IdempotencyKey)
		if findErr != nil {
			return domain.Order{}, false, fmt.Errorf("r.dao.FindByIdempotencyKey -> %w", findErr)
		}

		return orderDaoToDomain(existing), true, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("r.dao.InsertOrder -> %w", err)
	}

	return orderDaoToDomain(created), replayed, nil
}

func (r *OrderRepository) FindByUID(ctx context.Context, uid uuid.UUID) (domain.Order, error) {
	found, err := r.dao.FindByUID(ctx, uid)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByUID -> %w", err)
	}

	return orderDaoToDomain(found), nil
}

func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (domain.Order, error) {
	found, err := r.dao.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByIdempotencyKey -> %w", err)
	}

	return orderDaoToDomain(found), nil
}

func (r *OrderRepository) MarkDelivered(ctx context.Context, uid uuid.UUID, at time.Time) (bool, error) {
	changed, err := r.dao.MarkDelivered(ctx, uid, at)
	if err != nil {
		return false, fmt.Errorf("r.dao.MarkDelivered -> %w", err)
	}

	return changed, nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, canteenIDs []uint) (domain.OrderCounts, error) {
	counts := domain.NewOrderCounts()
	if len(canteenIDs) == 0 {
		return counts, nil
	}

	rows, err := r.dao.CountByStatus(ctx, canteenIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	for _, row := range rows {
		counts[domain.OrderStatus(row.Status)] = row.Count
	}

	return counts, nil
}

func (r *OrderRepository) FindByStatus(ctx context.Context, canteenIDs []uint, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	if len(canteenIDs) == 0 {
		return []domain.Order{}, nil
	}

	found, err := r.dao.FindByStatus(ctx, canteenIDs, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	orders := make([]domain.Order, len(found))
	for i, o := range found {
		orders[i] = orderDaoToDomain(o)
	}

	return orders, nil
}

func orderDaoToDomain(o dao.Order) domain.Order {
	order := domain.Order{
		ID:             o.ID,
		UID:            o.OrderUID,
		SeatID:         o.SeatID,
		MenuItemID:     o.MenuItemID,
		OptionID:       o.OptionID,
		Status:         domain.OrderStatus(o.Status),
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
		DeliveredAt:    o.DeliveredAt,
	}

	if o.Seat.ID != 0 {
		order.SeatNumber = o.Seat.SeatNumber
		if o.Seat.Lab.ID != 0 {
			order.LabName = o.Seat.Lab.Name
			order.CanteenID = o.Seat.Lab.CanteenID
		}
	}
	if o.MenuItem.ID != 0 {
		order.ItemName = o.MenuItem.Name
	}
	if o.Option != nil {
		order.OptionName = o.Option.Name
	}

	return order
}
