package domain

import (
	"time"

	"github.com/google/uuid"
)

// SeatContext is the seat identity a diner's browsing session holds after a
// successful scan. Orders are always placed for this seat, never for a seat
// named by the client.
type SeatContext struct {
	SessionID     string    `json:"session_id"`
	SeatID        uint      `json:"seat_id"`
	QRToken       uuid.UUID `json:"qr_token"`
	EstablishedAt time.Time `json:"established_at"`
}

func (c SeatContext) ExpiresAt(ttl time.Duration) time.Time {
	return c.EstablishedAt.Add(ttl)
}

func (c SeatContext) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(c.ExpiresAt(ttl))
}
