package response

import (
	"net/url"
	"time"

	"github.com/seatserve/canteen-api/internal/domain"
)

const placeholderImageURL = "https://placehold.co/400x300?text="

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MenuItem struct {
	ID             uint                   `json:"id"`
	Name           string                 `json:"name"`
	Image          string                 `json:"image"`
	Customizations []domain.Customization `json:"customizations"`
}

func NewMenu(items []domain.MenuItem) []MenuItem {
	menu := make([]MenuItem, len(items))
	for i, item := range items {
		menu[i] = MenuItem{
			ID:             item.ID,
			Name:           item.Name,
			Image:          placeholderImageURL + url.QueryEscape(item.Name),
			Customizations: item.Customizations(),
		}
	}

	return menu
}

type Scan struct {
	SessionID string         `json:"session_id"`
	ExpiresAt time.Time      `json:"expires_at"`
	Seat      domain.Seat    `json:"seat"`
	Lab       domain.Lab     `json:"lab"`
	Canteen   domain.Canteen `json:"canteen"`
	Menu      []MenuItem     `json:"menu"`
}

type OrderStats struct {
	Counts         domain.OrderCounts `json:"counts"`
	NewCount       int64              `json:"new_count"`
	DeliveredCount int64              `json:"delivered_count"`
}

func NewOrderStats(counts domain.OrderCounts) OrderStats {
	return OrderStats{
		Counts:         counts,
		NewCount:       counts[domain.OrderStatusNew],
		DeliveredCount: counts[domain.OrderStatusDelivered],
	}
}

type Orders struct {
	Status domain.OrderStatus `json:"status"`
	Orders []domain.Order     `json:"orders"`
}

type Message struct {
	Message string `json:"message"`
}
