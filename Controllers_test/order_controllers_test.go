package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/controllers"
	"github.com/benguluru-bhavan/ordering-app/models"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Profile{}, &models.AdminRole{},
		&models.Category{}, &models.MenuItem{}, &models.Portion{},
		&models.Order{}, &models.OrderItem{}, &models.DBChange{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	profile := models.Profile{Email: "ravi@example.com", Password: "x", FullName: "Ravi Kumar"}
	db.Create(&profile)

	dosa := models.MenuItem{Name: "Dosa", Price: 80, IsAvailable: true}
	db.Create(&dosa)
	chutney := models.MenuItem{Name: "Chutney", Price: 90.5, IsAvailable: true}
	db.Create(&chutney)
	// Thali sells per portion only, so its base price is inert.
	thali := models.MenuItem{Name: "Thali", Price: 120, IsAvailable: true}
	db.Create(&thali)
	db.Create(&models.Portion{MenuItemID: thali.ID, Name: "Half", Price: 50, IsAvailable: true})

	return db
}

// stubAuth stands in for the JWT middleware in controller tests.
func stubAuth(profileID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("profile_id", profileID)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB, profileID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)

	if profileID != 0 {
		router.POST("/orders", stubAuth(profileID), orderCtrl.Checkout)
		router.GET("/orders", stubAuth(profileID), orderCtrl.GetMyOrders)
	} else {
		router.POST("/orders", orderCtrl.Checkout)
	}
	router.PATCH("/admin/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	return router
}

func checkoutPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    "Ravi Kumar",
		"customer_phone":   "9876543210",
		"customer_address": "12 MG Road",
		"flat_no":          "B-14",
		"apartment_street": "Green Park",
		"sector":           "Sector 21",
		"area":             "Gurgaon",
		"latitude":         28.4595,
		"longitude":        77.0266,
		"items": []map[string]interface{}{
			{"menu_item_id": 1, "quantity": 2},
		},
	}
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutRequiresAuth(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 0)

	w := postJSON(t, router, "/orders", checkoutPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p map[string]interface{})
	}{
		{"missing customer name", func(p map[string]interface{}) { p["customer_name"] = "" }},
		{"missing phone", func(p map[string]interface{}) { p["customer_phone"] = "" }},
		{"missing flat no", func(p map[string]interface{}) { p["flat_no"] = "" }},
		{"missing street", func(p map[string]interface{}) { p["apartment_street"] = "" }},
		{"missing sector", func(p map[string]interface{}) { p["sector"] = "  " }},
		{"missing area", func(p map[string]interface{}) { p["area"] = "" }},
		{"missing coordinates", func(p map[string]interface{}) {
			delete(p, "latitude")
			delete(p, "longitude")
		}},
		{"empty cart", func(p map[string]interface{}) { p["items"] = []map[string]interface{}{} }},
		{"zero quantity", func(p map[string]interface{}) {
			p["items"] = []map[string]interface{}{{"menu_item_id": 1, "quantity": 0}}
		}},
		{"unknown menu item", func(p map[string]interface{}) {
			p["items"] = []map[string]interface{}{{"menu_item_id": 999, "quantity": 1}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDBForOrders(t)
			router := setupOrderRouter(db, 1)

			payload := checkoutPayload()
			tc.mutate(payload)

			w := postJSON(t, router, "/orders", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			// A rejected checkout performs no writes at all.
			var orders, items int64
			db.Model(&models.Order{}).Count(&orders)
			db.Model(&models.OrderItem{}).Count(&items)
			assert.Zero(t, orders)
			assert.Zero(t, items)
		})
	}
}

func TestCheckoutCreatesOrderWithSnapshots(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	w := postJSON(t, router, "/orders", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.Preload("OrderItems").First(&order).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 160.00, order.TotalAmount)
	assert.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Dosa", order.OrderItems[0].ItemName)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.Equal(t, 80.0, order.OrderItems[0].Price)
	assert.Nil(t, order.OrderItems[0].PortionName)
	assert.Len(t, order.PublicID, 36)

	// Checkout feeds the change monitor.
	var change models.DBChange
	assert.NoError(t, db.First(&change).Error)
	assert.Equal(t, "orders", change.TableName)
	assert.Equal(t, models.ChangeInsert, change.ActionType)
	assert.Equal(t, order.ID, change.RecordID)
}

func TestCheckoutUsesPortionPrice(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	payload := checkoutPayload()
	payload["items"] = []map[string]interface{}{
		{"menu_item_id": 3, "quantity": 2, "portion_id": 1},
		{"menu_item_id": 2, "quantity": 1},
	}

	w := postJSON(t, router, "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.Preload("OrderItems").First(&order).Error)
	// 2 x 50 (Half Thali) + 1 x 90.5 (Chutney)
	assert.Equal(t, 190.50, order.TotalAmount)
	assert.Len(t, order.OrderItems, 2)
	assert.NotNil(t, order.OrderItems[0].PortionName)
	assert.Equal(t, "Half", *order.OrderItems[0].PortionName)
	assert.Equal(t, 50.0, order.OrderItems[0].Price)
}

func TestCheckoutRequiresPortionWhenItemHasPortions(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	payload := checkoutPayload()
	payload["items"] = []map[string]interface{}{
		{"menu_item_id": 3, "quantity": 1},
	}

	w := postJSON(t, router, "/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutRejectsPortionOfOtherItem(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	payload := checkoutPayload()
	payload["items"] = []map[string]interface{}{
		{"menu_item_id": 2, "quantity": 1, "portion_id": 1},
	}

	w := postJSON(t, router, "/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyOrdersReturnsOwnOrdersOnly(t *testing.T) {
	db := setupTestDBForOrders(t)
	other := models.Profile{Email: "other@example.com", Password: "x"}
	db.Create(&other)

	router := setupOrderRouter(db, 1)
	w := postJSON(t, router, "/orders", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	otherRouter := setupOrderRouter(db, other.ID)
	req, _ := http.NewRequest("GET", "/orders", nil)
	rec := httptest.NewRecorder()
	otherRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestStatusUpdateIsUnconditional(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	w := postJSON(t, router, "/orders", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.First(&order).Error)

	// Walk forward to a terminal state, then straight back to Pending:
	// there is no transition guard.
	for _, status := range []string{models.StatusDelivered, models.StatusPending} {
		body := map[string]string{"status": status}
		url := fmt.Sprintf("/admin/orders/%d/status", order.ID)
		req, _ := json.Marshal(body)
		httpReq, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(req))
		httpReq.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httpReq)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	assert.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db, 1)

	w := postJSON(t, router, "/orders", checkoutPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	assert.NoError(t, db.First(&order).Error)

	body, _ := json.Marshal(map[string]string{"status": "Shipped"})
	url := fmt.Sprintf("/admin/orders/%d/status", order.ID)
	req, _ := http.NewRequest("PATCH", url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NoError(t, db.First(&order, order.ID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
}
