package dao

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB is nil when no postgres container could be started.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil || pool.Client.Ping() != nil {
		log.Printf("docker not available, postgres tests will be skipped")
		os.Exit(m.Run())
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=canteen_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("host=localhost port=%s user=postgres password=postgres dbname=canteen_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db
		return nil
	})
	if err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("could not migrate: %v", err)
	}

	code := m.Run()

	_ = pool.Purge(resource)
	os.Exit(code)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testDB == nil {
		t.Skip("postgres not available")
	}

	require.NoError(t, testDB.Exec(
		"TRUNCATE orders, manager_assignments, item_options, menu_items, qr_codes, seats, labs, canteens, users RESTART IDENTITY CASCADE",
	).Error)

	return testDB
}

type catalogFixture struct {
	canteen Canteen
	seat    Seat
	qr      QRCode
	tea     MenuItem
}

func seedCatalog(t *testing.T, db *gorm.DB, canteenName string) catalogFixture {
	t.Helper()

	ctx := context.Background()
	catalog := NewCatalogDAO(db)

	canteen, err := catalog.InsertCanteen(ctx, Canteen{Name: canteenName, IsActive: true})
	require.NoError(t, err)
	lab, err := catalog.InsertLab(ctx, Lab{Name: canteenName + " Lab", CanteenID: canteen.ID})
	require.NoError(t, err)
	seat, qr, err := catalog.InsertSeatWithQRCode(ctx, Seat{LabID: lab.ID, SeatNumber: "C1"}, QRCode{Token: uuid.New(), IsActive: true})
	require.NoError(t, err)
	tea, err := catalog.InsertMenuItem(ctx, MenuItem{
		CanteenID:   canteen.ID,
		Name:        "Tea",
		IsAvailable: true,
		Options:     []ItemOption{{Name: "No Sugar"}, {Name: "Less Sugar"}},
	})
	require.NoError(t, err)

	return catalogFixture{canteen: canteen, seat: seat, qr: qr, tea: tea}
}

func newOrder(seatID, itemID uint, key string) Order {
	order := Order{
		OrderUID:   uuid.New(),
		SeatID:     seatID,
		MenuItemID: itemID,
		Status:     OrderStatusNew,
		CreatedAt:  time.Now().UTC(),
	}
	if key != "" {
		order.IdempotencyKey = &key
	}

	return order
}

func TestCatalogDAO_FindQRCodeByToken(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Main")
	catalog := NewCatalogDAO(db)

	qr, err := catalog.FindQRCodeByToken(ctx, fx.qr.Token)
	require.NoError(t, err)
	assert.Equal(t, "C1", qr.Seat.SeatNumber)
	assert.Equal(t, "Main Lab", qr.Seat.Lab.Name)
	assert.Equal(t, fx.canteen.ID, qr.Seat.Lab.Canteen.ID)

	_, err = catalog.FindQRCodeByToken(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrQRCodeNotFound)

	_, _, err = catalog.InsertSeatWithQRCode(ctx, Seat{LabID: fx.seat.LabID, SeatNumber: "C1"}, QRCode{Token: uuid.New(), IsActive: true})
	assert.ErrorIs(t, err, ErrSeatExists)

	updated, err := catalog.UpdateQRCodeActive(ctx, fx.qr.Token, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := catalog.FindActiveQRCodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCatalogDAO_FindAvailableMenuItems(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Main")
	other := seedCatalog(t, db, "North")
	catalog := NewCatalogDAO(db)

	_, err := catalog.InsertMenuItem(ctx, MenuItem{CanteenID: fx.canteen.ID, Name: "Biscuit", IsAvailable: false})
	require.NoError(t, err)

	items, err := catalog.FindAvailableMenuItems(ctx, fx.canteen.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, fx.tea.ID, items[0].ID)
	require.Len(t, items[0].Options, 2)
	assert.Equal(t, "No Sugar", items[0].Options[0].Name)
	assert.NotEqual(t, other.tea.ID, items[0].ID)
}

func TestOrderDAO_InsertOrder_Idempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Main")
	orders := NewOrderDAO(db)

	first, replayed, err := orders.InsertOrder(ctx, newOrder(fx.seat.ID, fx.tea.ID, "tap-1"))
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := orders.InsertOrder(ctx, newOrder(fx.seat.ID, fx.tea.ID, "tap-1"))
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.OrderUID, second.OrderUID)

	_, replayed, err = orders.InsertOrder(ctx, newOrder(fx.seat.ID, fx.tea.ID, ""))
	require.NoError(t, err)
	assert.False(t, replayed)

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestOrderDAO_InsertOrder_ConcurrentKey(t *testing.T) {
	db := setupDB(t)
	fx := seedCatalog(t, db, "Main")
	orders := NewOrderDAO(db)

	const attempts = 10
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := orders.InsertOrder(context.Background(), newOrder(fx.seat.ID, fx.tea.ID, "race"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.True(t, errors.Is(err, ErrDuplicateIdempotencyKey), err)
		}
	}

	var count int64
	require.NoError(t, db.Model(&Order{}).Where("idempotency_key = ?", "race").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOrderDAO_MarkDelivered(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Main")
	orders := NewOrderDAO(db)

	created, _, err := orders.InsertOrder(ctx, newOrder(fx.seat.ID, fx.tea.ID, ""))
	require.NoError(t, err)

	changed, err := orders.MarkDelivered(ctx, created.OrderUID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = orders.MarkDelivered(ctx, created.OrderUID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := orders.FindByUID(ctx, created.OrderUID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusDelivered, found.Status)
	assert.NotNil(t, found.DeliveredAt)
	assert.Equal(t, "C1", found.Seat.SeatNumber)
	assert.Equal(t, "Tea", found.MenuItem.Name)

	_, err = orders.FindByUID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderDAO_ScopedToCanteens(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	mainFx := seedCatalog(t, db, "Main")
	north := seedCatalog(t, db, "North")
	orders := NewOrderDAO(db)

	for i := 0; i < 3; i++ {
		_, _, err := orders.InsertOrder(ctx, newOrder(mainFx.seat.ID, mainFx.tea.ID, ""))
		require.NoError(t, err)
	}
	delivered, _, err := orders.InsertOrder(ctx, newOrder(north.seat.ID, north.tea.ID, ""))
	require.NoError(t, err)
	_, err = orders.MarkDelivered(ctx, delivered.OrderUID, time.Now().UTC())
	require.NoError(t, err)

	counts, err := orders.CountByStatus(ctx, []uint{mainFx.canteen.ID})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, StatusCount{Status: OrderStatusNew, Count: 3}, counts[0])

	listed, err := orders.FindByStatus(ctx, []uint{mainFx.canteen.ID}, OrderStatusNew, 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.False(t, listed[0].CreatedAt.Before(listed[1].CreatedAt))

	listed, err = orders.FindByStatus(ctx, []uint{mainFx.canteen.ID, north.canteen.ID}, OrderStatusDelivered, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, delivered.OrderUID, listed[0].OrderUID)
}

func TestAssignmentDAO_Upsert(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Main")
	users := NewUserDAO(db)
	assignments := NewAssignmentDAO(db)

	first, err := users.Insert(ctx, User{Email: "first@example.com", Password: "x", Name: "First", Role: "manager"})
	require.NoError(t, err)
	second, err := users.Insert(ctx, User{Email: "second@example.com", Password: "x", Name: "Second", Role: "manager"})
	require.NoError(t, err)

	_, err = users.Insert(ctx, User{Email: "first@example.com", Password: "x", Name: "Again", Role: "manager"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	_, err = assignments.Upsert(ctx, ManagerAssignment{CanteenID: fx.canteen.ID, UserID: first.ID, AssignedAt: time.Now().UTC()})
	require.NoError(t, err)
	saved, err := assignments.Upsert(ctx, ManagerAssignment{CanteenID: fx.canteen.ID, UserID: second.ID, AssignedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, second.ID, saved.UserID)

	ids, err := assignments.FindCanteenIDsByUserID(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	canteens, err := assignments.FindCanteensByUserID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, canteens, 1)
	assert.Equal(t, fx.canteen.ID, canteens[0].ID)
}
