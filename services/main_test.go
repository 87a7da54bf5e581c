package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campus-eats/canteen-app/database"
	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/notify"
	"github.com/campus-eats/canteen-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger("error", false)
	utils.InfoLogger.SetOutput(io.Discard)
	utils.ErrorLogger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	hub     *notify.Hub
	orders  *OrderService
	catalog *CatalogService

	north, south models.Canteen
	northAdmin   models.User
	southAdmin   models.User
	superAdmin   models.User
	student      models.User
	otherStudent models.User
	items        map[string]models.MenuItem
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	require.NoError(t, database.Seed(db, "password"))

	hub := notify.NewHub(utils.InfoLogger)
	orders := NewOrderService(db, hub, 30*time.Minute)
	clock := testNow
	orders.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	f := &fixture{
		db:      db,
		hub:     hub,
		orders:  orders,
		catalog: NewCatalogService(db),
		items:   map[string]models.MenuItem{},
	}

	require.NoError(t, db.Where("name = ?", "North Canteen").First(&f.north).Error)
	require.NoError(t, db.Where("name = ?", "South Canteen").First(&f.south).Error)
	require.NoError(t, db.Where("email = ?", "north-admin@admin.com").First(&f.northAdmin).Error)
	require.NoError(t, db.Where("email = ?", "south-admin@admin.com").First(&f.southAdmin).Error)
	require.NoError(t, db.Where("email = ?", "admin@admin.com").First(&f.superAdmin).Error)
	require.NoError(t, db.Where("email = ?", "student@test.com").First(&f.student).Error)

	f.otherStudent = models.User{Email: "other@test.com", Password: "x", FirstName: "Other", Role: models.RoleStudent}
	require.NoError(t, db.Create(&f.otherStudent).Error)

	var items []models.MenuItem
	require.NoError(t, db.Find(&items).Error)
	for _, item := range items {
		f.items[item.Name] = item
	}
	return f
}

func (f *fixture) item(t *testing.T, name string) models.MenuItem {
	t.Helper()
	item, ok := f.items[name]
	require.True(t, ok, "unknown seed item %s", name)
	return item
}

func (f *fixture) placeNorthOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.orders.PlaceOrder(ctxBG, PlaceOrderInput{
		UserID:    f.student.ID,
		CanteenID: f.north.ID,
		Lines: []CartLine{
			{MenuItemID: f.item(t, "Dal Rice").ID, Quantity: 2},
			{MenuItemID: f.item(t, "Chai").ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) countOrders(t *testing.T) (orders, items int64) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&items).Error)
	return orders, items
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(topic, event string, data interface{}) error {
	p.calls++
	return errors.New("socket layer down")
}
