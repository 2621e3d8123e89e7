package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository"
)

// memStore is an in-memory stand-in for every repository the services use.
type memStore struct {
	mu sync.Mutex

	canteens  map[uint]domain.Canteen
	locations map[uuid.UUID]domain.SeatLocation
	items     map[uint]domain.MenuItem
	options   map[uint]domain.ItemOption
	managers  map[uint]uint
	users     map[uint]domain.User
	nextID    uint
}

const (
	canteenMain  uint = 1
	canteenOther uint = 2

	seatC1 uint = 1
	seatC2 uint = 2
	seatX1 uint = 3

	itemTea     uint = 10
	itemCoffee  uint = 11
	itemBiscuit uint = 12
	itemJuice   uint = 20

	optionNoSugar   uint = 100
	optionLessSugar uint = 101
	optionBlack     uint = 110

	userAdmin        uint = 1
	userManager      uint = 7
	userOtherManager uint = 8
	userUnassigned   uint = 9
)

var (
	tokenC1 = uuid.MustParse("6f1c1c8e-6d1a-4c55-9f0b-1a2b3c4d5e01")
	tokenC2 = uuid.MustParse("6f1c1c8e-6d1a-4c55-9f0b-1a2b3c4d5e02")
	tokenX1 = uuid.MustParse("6f1c1c8e-6d1a-4c55-9f0b-1a2b3c4d5e03")
)

func newMemStore() *memStore {
	mainCanteen := domain.Canteen{ID: canteenMain, Name: "Main Canteen", IsActive: true}
	otherCanteen := domain.Canteen{ID: canteenOther, Name: "North Canteen", IsActive: true}
	lab1 := domain.Lab{ID: 1, Name: "Lab 1", CanteenID: canteenMain}
	lab9 := domain.Lab{ID: 9, Name: "Lab 9", CanteenID: canteenOther}

	s := &memStore{
		canteens: map[uint]domain.Canteen{canteenMain: mainCanteen, canteenOther: otherCanteen},
		locations: map[uuid.UUID]domain.SeatLocation{
			tokenC1: {
				QRCode:  domain.QRCode{ID: 1, Token: tokenC1, SeatID: seatC1, IsActive: true},
				Seat:    domain.Seat{ID: seatC1, SeatNumber: "C1", LabID: lab1.ID},
				Lab:     lab1,
				Canteen: mainCanteen,
			},
			tokenC2: {
				QRCode:  domain.QRCode{ID: 2, Token: tokenC2, SeatID: seatC2, IsActive: true},
				Seat:    domain.Seat{ID: seatC2, SeatNumber: "C2", LabID: lab1.ID},
				Lab:     lab1,
				Canteen: mainCanteen,
			},
			tokenX1: {
				QRCode:  domain.QRCode{ID: 3, Token: tokenX1, SeatID: seatX1, IsActive: true},
				Seat:    domain.Seat{ID: seatX1, SeatNumber: "X1", LabID: lab9.ID},
				Lab:     lab9,
				Canteen: otherCanteen,
			},
		},
		options: map[uint]domain.ItemOption{
			optionNoSugar:   {ID: optionNoSugar, Name: "No Sugar", MenuItemID: itemTea},
			optionLessSugar: {ID: optionLessSugar, Name: "Less Sugar", MenuItemID: itemTea},
			optionBlack:     {ID: optionBlack, Name: "Black", MenuItemID: itemCoffee},
		},
		managers: map[uint]uint{canteenMain: userManager, canteenOther: userOtherManager},
		users: map[uint]domain.User{
			userAdmin:        {ID: userAdmin, Email: "admin@example.com", Role: domain.RoleAdmin},
			userManager:      {ID: userManager, Email: "manager@example.com", Role: domain.RoleManager},
			userOtherManager: {ID: userOtherManager, Email: "north@example.com", Role: domain.RoleManager},
			userUnassigned:   {ID: userUnassigned, Email: "idle@example.com", Role: domain.RoleManager},
		},
		nextID: 1000,
	}

	s.items = map[uint]domain.MenuItem{
		itemTea: {
			ID: itemTea, Name: "Tea", CanteenID: canteenMain, IsAvailable: true,
			Options: []domain.ItemOption{s.options[optionNoSugar], s.options[optionLessSugar]},
		},
		itemCoffee: {
			ID: itemCoffee, Name: "Coffee", CanteenID: canteenMain, IsAvailable: true,
			Options: []domain.ItemOption{s.options[optionBlack]},
		},
		itemBiscuit: {ID: itemBiscuit, Name: "Biscuit", CanteenID: canteenMain, IsAvailable: false},
		itemJuice:   {ID: itemJuice, Name: "Juice", CanteenID: canteenOther, IsAvailable: true},
	}

	return s
}

func (s *memStore) setQRActive(token uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc := s.locations[token]
	loc.QRCode.IsActive = active
	s.locations[token] = loc
}

func (s *memStore) canteenOfSeat(seatID uint) uint {
	for _, loc := range s.locations {
		if loc.Seat.ID == seatID {
			return loc.Canteen.ID
		}
	}

	return 0
}

// SeatRepository, MenuRepository, OrderCatalogRepository and AdminCatalogRepository.

func (s *memStore) FindSeatLocationByToken(_ context.Context, token uuid.UUID) (domain.SeatLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.locations[token]
	if !ok {
		return domain.SeatLocation{}, repository.ErrQRCodeNotFound
	}
	loc.Canteen = s.canteens[loc.Canteen.ID]

	return loc, nil
}

func (s *memStore) FindCanteenByID(_ context.Context, id uint) (domain.Canteen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.canteens[id]
	if !ok {
		return domain.Canteen{}, repository.ErrCanteenNotFound
	}

	return c, nil
}

func (s *memStore) FindAvailableMenuItems(_ context.Context, canteenID uint) ([]domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []domain.MenuItem
	for _, item := range s.items {
		if item.CanteenID == canteenID && item.IsAvailable {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b domain.MenuItem) int { return int(a.ID) - int(b.ID) })

	return items, nil
}

func (s *memStore) FindMenuItemByID(_ context.Context, id uint) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.MenuItem{}, repository.ErrMenuItemNotFound
	}

	return item, nil
}

func (s *memStore) FindItemOptionByID(_ context.Context, id uint) (domain.ItemOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	option, ok := s.options[id]
	if !ok {
		return domain.ItemOption{}, repository.ErrItemOptionNotFound
	}

	return option, nil
}

func (s *memStore) AssignManager(_ context.Context, assignment domain.ManagerAssignment) (domain.ManagerAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.managers[assignment.CanteenID] = assignment.UserID

	return assignment, nil
}

func (s *memStore) SetQRCodeActive(_ context.Context, token uuid.UUID, active bool) (domain.QRCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.locations[token]
	if !ok {
		return domain.QRCode{}, repository.ErrQRCodeNotFound
	}
	loc.QRCode.IsActive = active
	s.locations[token] = loc

	return loc.QRCode, nil
}

// ManagerAssignmentRepository and ManagedCanteenRepository.

func (s *memStore) FindManagedCanteenIDs(_ context.Context, userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []uint
	for canteenID, managerID := range s.managers {
		if managerID == userID {
			ids = append(ids, canteenID)
		}
	}
	slices.Sort(ids)

	return ids, nil
}

func (s *memStore) FindManagedCanteens(ctx context.Context, userID uint) ([]domain.Canteen, error) {
	ids, _ := s.FindManagedCanteenIDs(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	canteens := make([]domain.Canteen, 0, len(ids))
	for _, id := range ids {
		canteens = append(canteens, s.canteens[id])
	}

	return canteens, nil
}

// UserRepository and AuthUserRepository.

func (s *memStore) FindByID(_ context.Context, id uint) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return u, nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (s *memStore) Create(_ context.Context, user domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user

	return user, nil
}

// memSessions is the SeatSessionStore.
type memSessions struct {
	mu      sync.Mutex
	entries map[string]domain.SeatContext
}

func newMemSessions() *memSessions {
	return &memSessions{entries: map[string]domain.SeatContext{}}
}

func (m *memSessions) Save(_ context.Context, seatCtx domain.SeatContext, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[seatCtx.SessionID] = seatCtx

	return nil
}

func (m *memSessions) Load(_ context.Context, sessionID string) (domain.SeatContext, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seatCtx, ok := m.entries[sessionID]
	if !ok {
		return domain.SeatContext{}, repository.ErrSeatSessionNotFound
	}

	return seatCtx, nil
}

func (m *memSessions) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, sessionID)

	return nil
}

func (m *memSessions) has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[sessionID]
	return ok
}

// memOrders is the OrderRepository and DashboardRepository. It enforces the
// idempotency key uniqueness the database index provides.
type memOrders struct {
	mu     sync.Mutex
	store  *memStore
	orders []domain.Order
	nextID uint
}

func newMemOrders(store *memStore) *memOrders {
	return &memOrders{store: store}
}

func (m *memOrders) Create(_ context.Context, order domain.Order) (domain.Order, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if order.IdempotencyKey != nil {
		for _, o := range m.orders {
			if o.IdempotencyKey != nil && *o.IdempotencyKey == *order.IdempotencyKey {
				return o, true, nil
			}
		}
	}

	m.nextID++
	order.ID = m.nextID
	order.CanteenID = m.store.canteenOfSeat(order.SeatID)
	m.orders = append(m.orders, order)

	return order, false, nil
}

func (m *memOrders) FindByIdempotencyKey(_ context.Context, key string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			return o, nil
		}
	}

	return domain.Order{}, repository.ErrOrderNotFound
}

func (m *memOrders) FindByUID(_ context.Context, uid uuid.UUID) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.UID == uid {
			return o, nil
		}
	}

	return domain.Order{}, repository.ErrOrderNotFound
}

func (m *memOrders) MarkDelivered(_ context.Context, uid uuid.UUID, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.UID == uid && o.Status == domain.OrderStatusNew {
			m.orders[i].Status = domain.OrderStatusDelivered
			m.orders[i].DeliveredAt = &at
			return true, nil
		}
	}

	return false, nil
}

func (m *memOrders) CountByStatus(_ context.Context, canteenIDs []uint) (domain.OrderCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := domain.NewOrderCounts()
	for _, o := range m.orders {
		if slices.Contains(canteenIDs, o.CanteenID) {
			counts[o.Status]++
		}
	}

	return counts, nil
}

func (m *memOrders) FindByStatus(_ context.Context, canteenIDs []uint, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var orders []domain.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		o := m.orders[i]
		if o.Status == status && slices.Contains(canteenIDs, o.CanteenID) {
			orders = append(orders, o)
		}
		if limit > 0 && len(orders) == limit {
			break
		}
	}

	return orders, nil
}

func (m *memOrders) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.orders)
}

// fixture wires the services over the in-memory repositories.
type fixture struct {
	store     *memStore
	sessions  *memSessions
	orders    *memOrders
	seats     *SeatService
	menu      *MenuService
	gate      *ManagerGate
	orderSvc  *OrderService
	dashboard *DashboardService
	admin     *AdminService
	auth      *AuthService
}

func newFixture() *fixture {
	store := newMemStore()
	sessions := newMemSessions()
	orders := newMemOrders(store)

	seats := NewSeatService(store, sessions, time.Hour)
	gate := NewManagerGate(store)
	auth := NewAuthService(store)

	return &fixture{
		store:     store,
		sessions:  sessions,
		orders:    orders,
		seats:     seats,
		menu:      NewMenuService(store),
		gate:      gate,
		orderSvc:  NewOrderService(orders, store, seats, gate),
		dashboard: NewDashboardService(orders, store, gate),
		admin:     NewAdminService(store, store, auth),
		auth:      auth,
	}
}

func (f *fixture) user(id uint) domain.User {
	return f.store.users[id]
}
