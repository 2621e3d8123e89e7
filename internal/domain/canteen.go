package domain

import (
	"time"

	"github.com/google/uuid"
)

type Canteen struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	ManagerID *uint     `json:"manager_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Lab struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CanteenID uint   `json:"canteen_id"`
}

type Seat struct {
	ID         uint   `json:"id"`
	SeatNumber string `json:"seat_number"`
	LabID      uint   `json:"lab_id"`
}

// QRCode binds an unguessable scan token to exactly one seat.
type QRCode struct {
	ID       uint      `json:"id"`
	Token    uuid.UUID `json:"token"`
	SeatID   uint      `json:"seat_id"`
	IsActive bool      `json:"is_active"`
}

// SeatLocation is a seat resolved together with its lab and canteen.
type SeatLocation struct {
	QRCode  QRCode  `json:"-"`
	Seat    Seat    `json:"seat"`
	Lab     Lab     `json:"lab"`
	Canteen Canteen `json:"canteen"`
}

// ManagerAssignment makes a user the sole active manager of a canteen.
// Assigning another user to the same canteen replaces the previous row.
type ManagerAssignment struct {
	CanteenID  uint      `json:"canteen_id"`
	UserID     uint      `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
