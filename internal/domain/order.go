package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

var OrderStatuses = []OrderStatus{OrderStatusNew, OrderStatusDelivered}

func (s OrderStatus) IsValid() bool {
	return s == OrderStatusNew || s == OrderStatusDelivered
}

type Order struct {
	ID             uint        `json:"-"`
	UID            uuid.UUID   `json:"order_id"`
	SeatID         uint        `json:"seat_id"`
	MenuItemID     uint        `json:"item_id"`
	OptionID       *uint       `json:"option_id,omitempty"`
	Status         OrderStatus `json:"status"`
	IdempotencyKey *string     `json:"-"`
	CreatedAt      time.Time   `json:"created_at"`
	DeliveredAt    *time.Time  `json:"delivered_at,omitempty"`

	// Denormalized for listings, filled when the relations are loaded.
	SeatNumber string `json:"seat_number,omitempty"`
	LabName    string `json:"lab_name,omitempty"`
	CanteenID  uint   `json:"canteen_id,omitempty"`
	ItemName   string `json:"item_name,omitempty"`
	OptionName string `json:"option_name,omitempty"`
}

func (o Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// SameRequest reports whether two orders were placed for the same seat, item and option.
func (o Order) SameRequest(other Order) bool {
	if o.SeatID != other.SeatID || o.MenuItemID != other.MenuItemID {
		return false
	}
	if o.OptionID == nil || other.OptionID == nil {
		return o.OptionID == nil && other.OptionID == nil
	}

	return *o.OptionID == *other.OptionID
}

// OrderCounts holds the number of orders per status. Every known status is present.
type OrderCounts map[OrderStatus]int64

func NewOrderCounts() OrderCounts {
	counts := make(OrderCounts, len(OrderStatuses))
	for _, s := range OrderStatuses {
		counts[s] = 0
	}

	return counts
}
