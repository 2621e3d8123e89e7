package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, bool, error)
	FindByIdempotencyKey(ctx context.Context, key string) (domain.Order, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (domain.Order, error)
	MarkDelivered(ctx context.Context, uid uuid.UUID, at time.Time) (bool, error)
}

type OrderCatalogRepository interface {
	FindMenuItemByID(ctx context.Context, id uint) (domain.MenuItem, error)
	FindItemOptionByID(ctx context.Context, id uint) (domain.ItemOption, error)
}

type SeatResolver interface {
	CurrentSeat(ctx context.Context, sessionID string) (domain.SeatContext, domain.SeatLocation, error)
}

type CanteenAuthorizer interface {
	Authorize(ctx context.Context, actor domain.User, canteenID uint) error
}

// CreateOrderRequest is what a diner submits. The seat never comes from the
// request; it is read from the session.
type CreateOrderRequest struct {
	MenuItemID     uint
	OptionID       *uint
	IdempotencyKey string
}

type OrderService struct {
	orders  OrderRepository
	catalog OrderCatalogRepository
	seats   SeatResolver
	gate    CanteenAuthorizer
	now     func() time.Time
}

func NewOrderService(orders OrderRepository, catalog OrderCatalogRepository, seats SeatResolver, gate CanteenAuthorizer) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		seats:   seats,
		gate:    gate,
		now:     time.Now,
	}
}

// CreateOrder validates the request against the session seat and the catalog
// and appends a NEW order. Replaying an idempotency key returns the order first
// created with it; the boolean result is true in that case. The replay is
// looked up before the catalog checks, so a retry still gets its order after
// the item became unavailable.
func (s *OrderService) CreateOrder(ctx context.Context, sessionID string, req CreateOrderRequest) (domain.Order, bool, error) {
	key := strings.TrimSpace(req.IdempotencyKey)
	if req.IdempotencyKey != "" && key == "" {
		return domain.Order{}, false, ErrInvalidIdempotencyKey
	}

	seatCtx, location, err := s.seats.CurrentSeat(ctx, sessionID)
	if err != nil {
		return domain.Order{}, false, err
	}

	order := domain.Order{
		UID:        uuid.New(),
		SeatID:     seatCtx.SeatID,
		MenuItemID: req.MenuItemID,
		OptionID:   req.OptionID,
		Status:     domain.OrderStatusNew,
		CreatedAt:  s.now().UTC(),
	}

	if key != "" {
		order.IdempotencyKey = &key

		existing, err := s.orders.FindByIdempotencyKey(ctx, key)
		if err == nil {
			return s.replay(existing, order)
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, false, fmt.Errorf("s.orders.FindByIdempotencyKey -> %w", err)
		}
	}

	if err = s.validate(ctx, location.Canteen.ID, req); err != nil {
		return domain.Order{}, false, err
	}

	created, replayed, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("s.orders.Create -> %w", err)
	}

	if replayed {
		return s.replay(created, order)
	}

	zap.L().Info("order created",
		zap.String("order_id", created.UID.String()),
		zap.Uint("seat_id", created.SeatID),
		zap.Uint("item_id", created.MenuItemID),
	)

	return created, false, nil
}

// replay returns the stored order for a resubmission, which must describe the
// same seat, item and option.
func (s *OrderService) replay(stored, submitted domain.Order) (domain.Order, bool, error) {
	if !stored.SameRequest(submitted) {
		return domain.Order{}, false, fmt.Errorf("idempotency key reused for a different order: %w", ErrConflict)
	}

	zap.L().Info("order replayed",
		zap.String("order_id", stored.UID.String()),
		zap.String("idempotency_key", *submitted.IdempotencyKey),
	)

	return stored, true, nil
}

// validate checks the item and option before anything is persisted.
func (s *OrderService) validate(ctx context.Context, canteenID uint, req CreateOrderRequest) error {
	item, err := s.catalog.FindMenuItemByID(ctx, req.MenuItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("s.catalog.FindMenuItemByID -> %w", err)
	}

	if !item.IsAvailable || item.CanteenID != canteenID {
		return ErrNotFound
	}

	if req.OptionID == nil {
		return nil
	}

	option, err := s.catalog.FindItemOptionByID(ctx, *req.OptionID)
	if err != nil {
		if errors.Is(err, repository.ErrItemOptionNotFound) {
			return ErrNotFound
		}

		return fmt.Errorf("s.catalog.FindItemOptionByID -> %w", err)
	}

	if !option.BelongsTo(item) {
		return ErrInvalidOption
	}

	return nil
}

// GetSeatOrder returns an order placed from the session's seat.
func (s *OrderService) GetSeatOrder(ctx context.Context, sessionID string, uid uuid.UUID) (domain.Order, error) {
	seatCtx, _, err := s.seats.CurrentSeat(ctx, sessionID)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.findOrder(ctx, uid)
	if err != nil {
		return domain.Order{}, err
	}
	if order.SeatID != seatCtx.SeatID {
		return domain.Order{}, ErrNotFound
	}

	return order, nil
}

// MarkDelivered moves an order of one of the actor's canteens to DELIVERED.
// Calling it on an already delivered order succeeds without changing it.
func (s *OrderService) MarkDelivered(ctx context.Context, actor domain.User, uid uuid.UUID) (domain.Order, error) {
	order, err := s.findOrder(ctx, uid)
	if err != nil {
		return domain.Order{}, err
	}

	if err = s.gate.Authorize(ctx, actor, order.CanteenID); err != nil {
		return domain.Order{}, err
	}

	if order.IsDelivered() {
		return order, nil
	}

	changed, err := s.orders.MarkDelivered(ctx, uid, s.now().UTC())
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orders.MarkDelivered -> %w", err)
	}

	if changed {
		zap.L().Info("order delivered",
			zap.String("order_id", uid.String()),
			zap.Uint("canteen_id", order.CanteenID),
			zap.Uint("manager_id", actor.ID),
		)
	}

	return s.findOrder(ctx, uid)
}

func (s *OrderService) findOrder(ctx context.Context, uid uuid.UUID) (domain.Order, error) {
	order, err := s.orders.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Order{}, ErrNotFound
		}

		return domain.Order{}, fmt.Errorf("s.orders.FindByUID -> %w", err)
	}

	return order, nil
}
