package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/api/middleware"
	"github.com/seatserve/canteen-api/internal/config"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/service"
)

type mockSeatService struct {
	resolveFn func(ctx context.Context, sessionID string, token uuid.UUID) (domain.SeatLocation, domain.SeatContext, error)
	currentFn func(ctx context.Context, sessionID string) (domain.SeatContext, domain.SeatLocation, error)
}

func (m *mockSeatService) ResolveScan(ctx context.Context, sessionID string, token uuid.UUID) (domain.SeatLocation, domain.SeatContext, error) {
	return m.resolveFn(ctx, sessionID, token)
}

func (m *mockSeatService) CurrentSeat(ctx context.Context, sessionID string) (domain.SeatContext, domain.SeatLocation, error) {
	if m.currentFn != nil {
		return m.currentFn(ctx, sessionID)
	}
	return domain.SeatContext{}, domain.SeatLocation{}, service.ErrSessionExpired
}

type mockMenuService struct {
	getMenuFn func(ctx context.Context, canteenID uint) ([]domain.MenuItem, error)
}

func (m *mockMenuService) GetMenu(ctx context.Context, canteenID uint) ([]domain.MenuItem, error) {
	return m.getMenuFn(ctx, canteenID)
}

type mockOrderService struct {
	createFn  func(ctx context.Context, sessionID string, req service.CreateOrderRequest) (domain.Order, bool, error)
	getFn     func(ctx context.Context, sessionID string, uid uuid.UUID) (domain.Order, error)
	deliverFn func(ctx context.Context, actor domain.User, uid uuid.UUID) (domain.Order, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, sessionID string, req service.CreateOrderRequest) (domain.Order, bool, error) {
	return m.createFn(ctx, sessionID, req)
}

func (m *mockOrderService) GetSeatOrder(ctx context.Context, sessionID string, uid uuid.UUID) (domain.Order, error) {
	return m.getFn(ctx, sessionID, uid)
}

func (m *mockOrderService) MarkDelivered(ctx context.Context, actor domain.User, uid uuid.UUID) (domain.Order, error) {
	return m.deliverFn(ctx, actor, uid)
}

type mockDashboardService struct {
	countsFn   func(ctx context.Context, actor domain.User) (domain.OrderCounts, error)
	listFn     func(ctx context.Context, actor domain.User, status domain.OrderStatus, limit int) ([]domain.Order, error)
	canteensFn func(ctx context.Context, actor domain.User) ([]domain.Canteen, error)
}

func (m *mockDashboardService) OrderCounts(ctx context.Context, actor domain.User) (domain.OrderCounts, error) {
	return m.countsFn(ctx, actor)
}

func (m *mockDashboardService) ListOrders(ctx context.Context, actor domain.User, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	return m.listFn(ctx, actor, status, limit)
}

func (m *mockDashboardService) ManagedCanteens(ctx context.Context, actor domain.User) ([]domain.Canteen, error) {
	return m.canteensFn(ctx, actor)
}

type mockUserService struct {
	users map[uint]domain.User
}

func (m *mockUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}
	return u, nil
}

var testSessionConfig = &config.SessionConfig{
	TTL:        2 * time.Hour,
	CookieName: "seat_session",
}

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for middleware.VerifyJWT.
func asUser(id uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, id)
		ctx.Next()
	}
}
