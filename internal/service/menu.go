package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository"
)

type MenuRepository interface {
	FindCanteenByID(ctx context.Context, id uint) (domain.Canteen, error)
	FindAvailableMenuItems(ctx context.Context, canteenID uint) ([]domain.MenuItem, error)
}

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetMenu returns the available items of an active canteen, each with its options.
func (s *MenuService) GetMenu(ctx context.Context, canteenID uint) ([]domain.MenuItem, error) {
	canteen, err := s.repo.FindCanteenByID(ctx, canteenID)
	if err != nil {
		if errors.Is(err, repository.ErrCanteenNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("s.repo.FindCanteenByID -> %w", err)
	}
	if !canteen.IsActive {
		return nil, ErrNotFound
	}

	items, err := s.repo.FindAvailableMenuItems(ctx, canteen.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAvailableMenuItems -> %w", err)
	}

	menu := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if item.CanteenID != canteen.ID || !item.IsAvailable {
			continue
		}
		if item.Options == nil {
			item.Options = []domain.ItemOption{}
		}
		menu = append(menu, item)
	}

	return menu, nil
}
