package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/config"
	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// Checkout converts the caller's cart lines into an Order plus its
// OrderItems. Preconditions are checked in a fixed sequence, each with its
// own rejection, before anything is written: delivery details, captured
// coordinates, non-empty cart. Both writes run in one transaction so a
// failure can never leave an order without items.
func (oc *OrderController) Checkout(c *gin.Context) {
	profileID := c.GetUint("profile_id")
	if profileID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("login required to place an order"))
		return
	}

	type lineReq struct {
		MenuItemID uint  `json:"menu_item_id"`
		Quantity   int   `json:"quantity"`
		PortionID  *uint `json:"portion_id,omitempty"`
	}

	var body struct {
		CustomerName    string    `json:"customer_name"`
		CustomerPhone   string    `json:"customer_phone"`
		CustomerAddress string    `json:"customer_address"`
		FlatNo          string    `json:"flat_no"`
		ApartmentStreet string    `json:"apartment_street"`
		Sector          string    `json:"sector"`
		Area            string    `json:"area"`
		Latitude        *float64  `json:"latitude"`
		Longitude       *float64  `json:"longitude"`
		Items           []lineReq `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	required := []struct {
		label string
		value string
	}{
		{"customer name", body.CustomerName},
		{"phone number", body.CustomerPhone},
		{"flat no", body.FlatNo},
		{"apartment/street", body.ApartmentStreet},
		{"sector", body.Sector},
		{"area", body.Area},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("%s is required", f.label))
			return
		}
	}

	if body.Latitude == nil || body.Longitude == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("delivery location has not been captured"))
		return
	}

	if len(body.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	// Resolve every line against the catalog and snapshot name, price and
	// portion name. An item with portions is sold per portion only; its base
	// price applies just to portionless items.
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(body.Items))
	for _, line := range body.Items {
		if line.Quantity < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("line quantity must be at least 1"))
			return
		}

		var menuItem models.MenuItem
		if err := oc.DB.First(&menuItem, line.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("menu item %d not found", line.MenuItemID))
			return
		}

		unitPrice := menuItem.Price
		var portionName *string
		if line.PortionID == nil {
			var portionCount int64
			oc.DB.Model(&models.Portion{}).
				Where("menu_item_id = ?", menuItem.ID).
				Count(&portionCount)
			if portionCount > 0 {
				utils.RespondError(c, http.StatusBadRequest,
					fmt.Errorf("menu item %d is sold per portion, one must be selected", menuItem.ID))
				return
			}
		} else {
			var portion models.Portion
			if err := oc.DB.Where("id = ? AND menu_item_id = ?", *line.PortionID, menuItem.ID).
				First(&portion).Error; err != nil {
				utils.RespondError(c, http.StatusBadRequest,
					fmt.Errorf("portion %d not found for menu item %d", *line.PortionID, menuItem.ID))
				return
			}
			unitPrice = portion.Price
			name := portion.Name
			portionName = &name
		}

		total = total.Add(decimal.NewFromFloat(unitPrice).
			Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, models.OrderItem{
			MenuItemID:  menuItem.ID,
			ItemName:    menuItem.Name,
			PortionName: portionName,
			Quantity:    line.Quantity,
			Price:       unitPrice,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		})
	}

	order := models.Order{
		PublicID:        uuid.NewString(),
		ProfileID:       profileID,
		CustomerName:    body.CustomerName,
		CustomerPhone:   body.CustomerPhone,
		CustomerAddress: body.CustomerAddress,
		FlatNo:          body.FlatNo,
		ApartmentStreet: body.ApartmentStreet,
		Sector:          body.Sector,
		Area:            body.Area,
		Latitude:        body.Latitude,
		Longitude:       body.Longitude,
		TotalAmount:     total.Round(2).InexactFloat64(),
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Feed the change monitor after commit so it never sees a half-written order.
	oc.DB.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		ActionType: models.ChangeInsert,
		ChangedAt:  time.Now(),
	})

	order.OrderItems = items
	utils.InfoLogger.Printf("Order #%s placed by profile %d, total %s",
		order.ShortID(), profileID, utils.FormatAmount(order.TotalAmount))

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders -> the caller's own orders with items, newest first
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	profileID := c.GetUint("profile_id")

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("profile_id = ?", profileID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Your orders", orders)
}

// GetAllOrders -> admin console list with delivery distance when the
// customer shared coordinates
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type orderRow struct {
		models.Order
		DistanceKm *float64 `json:"distance_km,omitempty"`
	}
	rows := make([]orderRow, len(orders))
	for i, order := range orders {
		rows[i].Order = order
		if order.Latitude != nil && order.Longitude != nil {
			d := utils.DistanceKm(config.RestaurantLatitude, config.RestaurantLongitude,
				*order.Latitude, *order.Longitude)
			rows[i].DistanceKm = &d
		}
	}

	utils.RespondJSON(c, http.StatusOK, "All orders", rows)
}

// GetOrderByID -> admin order detail
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus sets a new status unconditionally. Membership in the
// status enumeration is the only validation: any status may follow any
// other, Delivered included. There is deliberately no transition table.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	oc.DB.Create(&models.DBChange{
		TableName:  "orders",
		RecordID:   order.ID,
		ActionType: models.ChangeUpdate,
		ChangedAt:  time.Now(),
	})

	utils.InfoLogger.Printf("Order #%s status -> %s", order.ShortID(), order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
