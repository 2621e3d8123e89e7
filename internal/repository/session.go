package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seatserve/canteen-api/internal/domain"
)

const seatSessionKeyPrefix = "seat_session:"

var ErrSeatSessionNotFound = errors.New("seat session not found")

type seatSessionEntry struct {
	SeatID        uint      `json:"seat_id"`
	QRToken       string    `json:"qr_token"`
	EstablishedAt time.Time `json:"established_at"`
}

// SeatSessionStore keeps the "current seat" slot of diner sessions in redis.
// Entries expire with the session lifetime.
type SeatSessionStore struct {
	client *redis.Client
}

func NewSeatSessionStore(client *redis.Client) *SeatSessionStore {
	return &SeatSessionStore{client: client}
}

func (s *SeatSessionStore) Save(ctx context.Context, seatCtx domain.SeatContext, ttl time.Duration) error {
	payload, err := json.Marshal(seatSessionEntry{
		SeatID:        seatCtx.SeatID,
		QRToken:       seatCtx.QRToken.String(),
		EstablishedAt: seatCtx.EstablishedAt,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = s.client.Set(ctx, seatSessionKeyPrefix+seatCtx.SessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("s.client.Set -> %w", err)
	}

	return nil
}

func (s *SeatSessionStore) Load(ctx context.Context, sessionID string) (domain.SeatContext, error) {
	payload, err := s.client.Get(ctx, seatSessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SeatContext{}, ErrSeatSessionNotFound
		}

		return domain.SeatContext{}, fmt.Errorf("s.client.Get -> %w", err)
	}

	var entry seatSessionEntry
	if err = json.Unmarshal(payload, &entry); err != nil {
		return domain.SeatContext{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	seatCtx := domain.SeatContext{
		SessionID:     sessionID,
		SeatID:        entry.SeatID,
		EstablishedAt: entry.EstablishedAt,
	}
	if err = seatCtx.QRToken.UnmarshalText([]byte(entry.QRToken)); err != nil {
		return domain.SeatContext{}, fmt.Errorf("seatCtx.QRToken.UnmarshalText -> %w", err)
	}

	return seatCtx, nil
}

func (s *SeatSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, seatSessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("s.client.Del -> %w", err)
	}

	return nil
}
