package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrDuplicateIdempotencyKey = errors.New("order with this idempotency key already exists")
	errEmptyIdempotencyKey     = errors.New("idempotency key is required")
)

const (
	OrderStatusNew       = "NEW"
	OrderStatusDelivered = "DELIVERED"

	orderIdempotencyConstraint = "idx_orders_idempotency_key"
)

type Order struct {
	ID             uint        `gorm:"primaryKey"`
	OrderUID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex"`
	SeatID         uint        `gorm:"not null;index"`
	Seat           Seat        `gorm:"foreignKey:SeatID;constraint:OnDelete:CASCADE"`
	MenuItemID     uint        `gorm:"not null;index"`
	MenuItem       MenuItem    `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	OptionID       *uint       `gorm:"index"`
	Option         *ItemOption `gorm:"foreignKey:OptionID;constraint:OnDelete:SET NULL"`
	Status         string      `gorm:"size:10;not null;index;default:NEW"`
	IdempotencyKey *string     `gorm:"size:128;uniqueIndex:idx_orders_idempotency_key"`
	CreatedAt      time.Time   `gorm:"not null;index"`
	DeliveredAt    *time.Time
	UpdatedAt      time.Time
}

// StatusCount is one row of a per-status aggregation.
type StatusCount struct {
	Status string
	Count  int64
}

type OrderDAO struct {
	db *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{
		db: db,
	}
}

// InsertOrder appends an order. When the order carries an idempotency key that
// is already stored, the stored order is returned and replayed is true. A
// concurrent insert of the same key surfaces as ErrDuplicateIdempotencyKey.
func (d *OrderDAO) InsertOrder(ctx context.Context, order Order) (created Order, replayed bool, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.IdempotencyKey != nil {
			var existing Order
			result := tx.Where("idempotency_key = ?", *order.IdempotencyKey).Limit(1).Find(&existing)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				created, replayed = existing, true
				return nil
			}
		}

		if err := tx.Omit("Seat", "MenuItem", "Option").Create(&order).Error; err != nil {
			if isUniqueViolation(err, orderIdempotencyConstraint) {
				return ErrDuplicateIdempotencyKey
			}

			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return Order{}, false, err
	}

	return created, replayed, nil
}

func (d *OrderDAO) FindByUID(ctx context.Context, uid uuid.UUID) (Order, error) {
	var order Order

	result := d.withRelations(d.db.WithContext(ctx)).First(&order, "order_uid = ?", uid)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *OrderDAO) FindByIdempotencyKey(ctx context.Context, key string) (Order, error) {
	if key == "" {
		return Order{}, errEmptyIdempotencyKey
	}

	var order Order

	result := d.db.WithContext(ctx).First(&order, "idempotency_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

// MarkDelivered moves a NEW order to DELIVERED. The conditional update makes
// concurrent calls race-free: only one of them changes the row, the others
// affect nothing and report false.
func (d *OrderDAO) MarkDelivered(ctx context.Context, uid uuid.UUID, at time.Time) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("order_uid = ? AND status = ?", uid, OrderStatusNew).
		Updates(map[string]any{
			"status":       OrderStatusDelivered,
			"delivered_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (d *OrderDAO) CountByStatus(ctx context.Context, canteenIDs []uint) ([]StatusCount, error) {
	var rows []StatusCount

	result := d.scopeToCanteens(d.db.WithContext(ctx).Model(&Order{}), canteenIDs).
		Select("orders.status AS status, COUNT(*) AS count").
		Group("orders.status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// FindByStatus lists orders of the given canteens newest first.
func (d *OrderDAO) FindByStatus(ctx context.Context, canteenIDs []uint, status string, limit int) ([]Order, error) {
	var orders []Order

	query := d.scopeToCanteens(d.withRelations(d.db.WithContext(ctx)), canteenIDs).
		Where("orders.status = ?", status).
		Order("orders.created_at DESC").
		Order("orders.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

func (d *OrderDAO) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Seat.Lab").Preload("MenuItem").Preload("Option")
}

func (d *OrderDAO) scopeToCanteens(db *gorm.DB, canteenIDs []uint) *gorm.DB {
	return db.
		Joins("JOIN seats ON seats.id = orders.seat_id").
		Joins("JOIN labs ON labs.id = seats.lab_id").
		Where("labs.canteen_id IN ?", canteenIDs)
}
