package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository"
)

type SeatRepository interface {
	FindSeatLocationByToken(ctx context.Context, token uuid.UUID) (domain.SeatLocation, error)
}

type SeatSessionStore interface {
	Save(ctx context.Context, seatCtx domain.SeatContext, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (domain.SeatContext, error)
	Delete(ctx context.Context, sessionID string) error
}

// SeatService resolves scanned QR tokens into seats and keeps the resolved
// seat in the diner's session.
type SeatService struct {
	repo     SeatRepository
	sessions SeatSessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewSeatService(repo SeatRepository, sessions SeatSessionStore, ttl time.Duration) *SeatService {
	return &SeatService{
		repo:     repo,
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SeatService) SessionTTL() time.Duration {
	return s.ttl
}

// ResolveScan maps a scan token to its seat. On success the session identified
// by sessionID now points at that seat. A new session id is minted when
// sessionID is empty or not a UUID.
func (s *SeatService) ResolveScan(ctx context.Context, sessionID string, token uuid.UUID) (domain.SeatLocation, domain.SeatContext, error) {
	location, err := s.activeLocation(ctx, token)
	if err != nil {
		return domain.SeatLocation{}, domain.SeatContext{}, err
	}

	if parsed, err := uuid.Parse(sessionID); err == nil {
		sessionID = parsed.String()
	} else {
		sessionID = uuid.NewString()
	}

	seatCtx := domain.SeatContext{
		SessionID:     sessionID,
		SeatID:        location.Seat.ID,
		QRToken:       token,
		EstablishedAt: s.now().UTC(),
	}
	if err = s.sessions.Save(ctx, seatCtx, s.ttl); err != nil {
		return domain.SeatLocation{}, domain.SeatContext{}, fmt.Errorf("s.sessions.Save -> %w", err)
	}

	zap.L().Debug("seat session established",
		zap.String("session_id", sessionID),
		zap.Uint("seat_id", location.Seat.ID),
		zap.Uint("canteen_id", location.Canteen.ID),
	)

	return location, seatCtx, nil
}

// CurrentSeat returns the seat bound to the session. The QR code the session was
// established with must still be active and bound to the same seat.
func (s *SeatService) CurrentSeat(ctx context.Context, sessionID string) (domain.SeatContext, domain.SeatLocation, error) {
	if sessionID == "" {
		return domain.SeatContext{}, domain.SeatLocation{}, ErrSessionExpired
	}

	seatCtx, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatSessionNotFound) {
			return domain.SeatContext{}, domain.SeatLocation{}, ErrSessionExpired
		}

		return domain.SeatContext{}, domain.SeatLocation{}, fmt.Errorf("s.sessions.Load -> %w", err)
	}

	if seatCtx.Expired(s.now(), s.ttl) {
		s.clearSession(ctx, sessionID)
		return domain.SeatContext{}, domain.SeatLocation{}, ErrSessionExpired
	}

	location, err := s.activeLocation(ctx, seatCtx.QRToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.clearSession(ctx, sessionID)
			return domain.SeatContext{}, domain.SeatLocation{}, ErrSessionExpired
		}

		return domain.SeatContext{}, domain.SeatLocation{}, err
	}
	if location.Seat.ID != seatCtx.SeatID {
		s.clearSession(ctx, sessionID)
		return domain.SeatContext{}, domain.SeatLocation{}, ErrSessionExpired
	}

	return seatCtx, location, nil
}

// clearSession drops a seat slot that can no longer be used for ordering.
// Failing to delete it is not fatal: the slot expires with its TTL.
func (s *SeatService) clearSession(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		zap.L().Warn("failed to clear seat session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func (s *SeatService) activeLocation(ctx context.Context, token uuid.UUID) (domain.SeatLocation, error) {
	location, err := s.repo.FindSeatLocationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrQRCodeNotFound) {
			return domain.SeatLocation{}, ErrNotFound
		}

		return domain.SeatLocation{}, fmt.Errorf("s.repo.FindSeatLocationByToken -> %w", err)
	}

	if !location.QRCode.IsActive || !location.Canteen.IsActive {
		return domain.SeatLocation{}, ErrNotFound
	}

	return location, nil
}
