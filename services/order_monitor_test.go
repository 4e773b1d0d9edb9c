package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupMonitorDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Profile{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.DBChange{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestMonitor(t *testing.T, db *gorm.DB) *OrderMonitor {
	return &OrderMonitor{
		DB:         db,
		StopChan:   make(chan struct{}),
		Interval:   10 * time.Millisecond,
		ReceiptDir: t.TempDir(),
		// Zero delays keep the pipeline fast under test.
		DownloadDelay: 0,
		PrintDelay:    0,
	}
}

func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	profile := models.Profile{FullName: "Ravi Kumar", Email: "ravi@example.com", Password: "x"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	order := models.Order{
		PublicID:        "a1b2c3d4-0000-0000-0000-000000000000",
		ProfileID:       profile.ID,
		CustomerName:    "Ravi Kumar",
		CustomerPhone:   "9876543210",
		FlatNo:          "B-204",
		ApartmentStreet: "Green Residency",
		Sector:          "Sector 15",
		Area:            "Gurgaon",
		TotalAmount:     250.50,
		Status:          models.StatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	items := []models.OrderItem{
		{OrderID: order.ID, MenuItemID: 1, ItemName: "Masala Dosa", Price: 80, Quantity: 2},
		{OrderID: order.ID, MenuItemID: 2, ItemName: "Chutney Platter", Price: 90.5, Quantity: 1},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("failed to seed order items: %v", err)
	}
	return order
}

func TestProcessPendingNewOrderPipeline(t *testing.T) {
	db := setupMonitorDB(t)
	monitor := newTestMonitor(t, db)
	order := seedOrder(t, db)

	db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		ActionType: models.ChangeInsert,
		ChangedAt:  time.Now(),
	})

	monitor.ProcessPending()

	// Notification is persisted synchronously.
	var notif models.Notification
	assert.NoError(t, db.First(&notif).Error)
	assert.Equal(t, "New Order Received", notif.Title)
	assert.Contains(t, notif.Message, "A1B2C3D4")
	assert.Contains(t, notif.Message, "Ravi Kumar")

	// The change row is marked processed.
	var change models.DBChange
	assert.NoError(t, db.First(&change).Error)
	assert.True(t, change.Processed)

	// Receipts are written asynchronously; wait for both artifacts.
	assert.Eventually(t, func() bool {
		entries, err := os.ReadDir(monitor.ReceiptDir)
		if err != nil {
			return false
		}
		var haveTxt, havePDF bool
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".txt":
				haveTxt = true
			case ".pdf":
				havePDF = true
			}
		}
		return haveTxt && havePDF
	}, 3*time.Second, 20*time.Millisecond)

	entries, err := os.ReadDir(monitor.ReceiptDir)
	assert.NoError(t, err)
	for _, e := range entries {
		assert.Contains(t, e.Name(), "Order_A1B2C3D4_")
	}
}

func TestProcessPendingIsIdempotent(t *testing.T) {
	db := setupMonitorDB(t)
	monitor := newTestMonitor(t, db)
	order := seedOrder(t, db)

	db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		ActionType: models.ChangeInsert,
		ChangedAt:  time.Now(),
	})

	monitor.ProcessPending()
	monitor.ProcessPending()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProcessPendingIgnoresOtherTables(t *testing.T) {
	db := setupMonitorDB(t)
	monitor := newTestMonitor(t, db)

	db.Create(&models.DBChange{
		TableName:  "menu_items",
		RecordID:   7,
		ActionType: models.ChangeInsert,
		ChangedAt:  time.Now(),
	})

	monitor.ProcessPending()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)

	// Still consumed, so the row is not retried forever.
	var change models.DBChange
	assert.NoError(t, db.First(&change).Error)
	assert.True(t, change.Processed)
}

func TestProcessPendingUpdateDoesNotNotify(t *testing.T) {
	db := setupMonitorDB(t)
	monitor := newTestMonitor(t, db)
	order := seedOrder(t, db)

	db.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		ActionType: models.ChangeUpdate,
		ChangedAt:  time.Now(),
	})

	monitor.ProcessPending()

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}
