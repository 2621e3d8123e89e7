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

type AdminCatalogRepository interface {
	FindCanteenByID(ctx context.Context, id uint) (domain.Canteen, error)
	AssignManager(ctx context.Context, assignment domain.ManagerAssignment) (domain.ManagerAssignment, error)
	SetQRCodeActive(ctx context.Context, token uuid.UUID, active bool) (domain.QRCode, error)
}

type Signupper interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
}

// AdminService holds the administrative operations the ordering flow depends
// on: manager accounts, manager assignment and QR activation.
type AdminService struct {
	catalog AdminCatalogRepository
	users   UserRepository
	auth    Signupper
	now     func() time.Time
}

func NewAdminService(catalog AdminCatalogRepository, users UserRepository, auth Signupper) *AdminService {
	return &AdminService{
		catalog: catalog,
		users:   users,
		auth:    auth,
		now:     time.Now,
	}
}

func (s *AdminService) CreateManager(ctx context.Context, actor domain.User, manager domain.User) (domain.User, error) {
	if !actor.IsAdmin() {
		return domain.User{}, ErrForbidden
	}

	manager.Role = domain.RoleManager
	created, err := s.auth.Signup(ctx, manager)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.auth.Signup -> %w", err)
	}

	return created, nil
}

// AssignManager makes userID the sole active manager of the canteen. A previous
// manager loses access immediately.
func (s *AdminService) AssignManager(ctx context.Context, actor domain.User, canteenID, userID uint) (domain.ManagerAssignment, error) {
	if !actor.IsAdmin() {
		return domain.ManagerAssignment{}, ErrForbidden
	}

	if _, err := s.catalog.FindCanteenByID(ctx, canteenID); err != nil {
		if errors.Is(err, repository.ErrCanteenNotFound) {
			return domain.ManagerAssignment{}, ErrNotFound
		}

		return domain.ManagerAssignment{}, fmt.Errorf("s.catalog.FindCanteenByID -> %w", err)
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.ManagerAssignment{}, ErrNotFound
		}

		return domain.ManagerAssignment{}, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	assignment, err := s.catalog.AssignManager(ctx, domain.ManagerAssignment{
		CanteenID:  canteenID,
		UserID:     userID,
		AssignedAt: s.now().UTC(),
	})
	if err != nil {
		return domain.ManagerAssignment{}, fmt.Errorf("s.catalog.AssignManager -> %w", err)
	}

	zap.L().Info("manager assigned", zap.Uint("canteen_id", canteenID), zap.Uint("user_id", userID))

	return assignment, nil
}

// SetQRCodeActive toggles a QR code. Deactivation blocks new scans and
// invalidates sessions established with the code.
func (s *AdminService) SetQRCodeActive(ctx context.Context, actor domain.User, token uuid.UUID, active bool) (domain.QRCode, error) {
	if !actor.IsAdmin() {
		return domain.QRCode{}, ErrForbidden
	}

	qr, err := s.catalog.SetQRCodeActive(ctx, token, active)
	if err != nil {
		if errors.Is(err, repository.ErrQRCodeNotFound) {
			return domain.QRCode{}, ErrNotFound
		}

		return domain.QRCode{}, fmt.Errorf("s.catalog.SetQRCodeActive -> %w", err)
	}

	zap.L().Info("qr code toggled", zap.Uint("seat_id", qr.SeatID), zap.Bool("active", active))

	return qr, nil
}
