package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/benguluru-bhavan/ordering-app/config"
	"github.com/benguluru-bhavan/ordering-app/models"
	"github.com/benguluru-bhavan/ordering-app/notifier"
	"github.com/benguluru-bhavan/ordering-app/receipt"
	"github.com/benguluru-bhavan/ordering-app/utils"
)

// OrderMonitor polls the change feed and drives the notification and
// receipt pipeline for every new order: broadcast an alert, then (after a
// short delay) store the plain-text receipt, then (after a longer delay)
// render the print PDF. Each step re-fetches its own copy of the order, so
// the steps are idempotent and order-independent; the delays are sequencing
// heuristics, not guaranteed orderings.
type OrderMonitor struct {
	DB         *gorm.DB
	StopChan   chan struct{}
	Interval   time.Duration
	ReceiptDir string

	// Delay before each artifact is produced.
	DownloadDelay time.Duration
	PrintDelay    time.Duration
}

func NewOrderMonitor(db *gorm.DB) *OrderMonitor {
	return &OrderMonitor{
		DB:            db,
		StopChan:      make(chan struct{}),
		Interval:      1 * time.Second,
		ReceiptDir:    config.ReceiptDir(),
		DownloadDelay: 500 * time.Millisecond,
		PrintDelay:    1500 * time.Millisecond,
	}
}

func (om *OrderMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.ProcessPending()
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OrderMonitor) Stop() {
	close(om.StopChan)
}

// ProcessPending handles all unprocessed change rows once. The Start loop
// calls it every tick; tests call it directly. The batch is claimed inside
// a transaction before any side effects run, so overlapping ticks never
// double-process a row.
func (om *OrderMonitor) ProcessPending() {
	var changes []models.DBChange

	err := om.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("processed = ?", false).
			Order("changed_at ASC").
			Limit(100).
			Find(&changes).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		ids := make([]uint, len(changes))
		for i, change := range changes {
			ids[i] = change.ID
		}
		return tx.Model(&models.DBChange{}).
			Where("id IN ?", ids).
			Update("processed", true).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error claiming change batch: %v", err)
		return
	}

	for _, change := range changes {
		if change.TableName == "orders" {
			om.processOrderChange(change)
		}
	}
}

func (om *OrderMonitor) processOrderChange(change models.DBChange) {
	switch change.ActionType {
	case models.ChangeInsert:
		om.handleNewOrder(change.RecordID)
	case models.ChangeUpdate:
		order, err := om.fetchOrder(change.RecordID)
		if err != nil {
			utils.ErrorLogger.Printf("Error fetching order %d: %v", change.RecordID, err)
			return
		}
		notifier.BroadcastOrderUpdated(*order)
	}
}

// handleNewOrder runs the pipeline for a freshly inserted order. The change
// row carries only the new order id, never its children, so the full order
// is re-fetched first.
func (om *OrderMonitor) handleNewOrder(orderID uint) {
	order, err := om.fetchOrder(orderID)
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching new order %d: %v", orderID, err)
		return
	}

	notifier.BroadcastOrderCreated(*order)
	utils.InfoLogger.Printf("Order #%s announced to %d console(s)",
		order.ShortID(), notifier.ClientCount())

	notif := models.Notification{
		OrderID:   &order.ID,
		Title:     "New Order Received",
		Message:   fmt.Sprintf("Order #%s from %s", order.ShortID(), order.CustomerName),
		CreatedAt: time.Now(),
	}
	if err := om.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Error storing notification for order %d: %v", orderID, err)
	} else {
		notifier.BroadcastNotification(notif)
	}

	go om.storeTextReceipt(orderID)
	go om.storePrintReceipt(orderID)
}

func (om *OrderMonitor) storeTextReceipt(orderID uint) {
	time.Sleep(om.DownloadDelay)

	order, err := om.fetchOrder(orderID)
	if err != nil {
		utils.ErrorLogger.Printf("Receipt text: error fetching order %d: %v", orderID, err)
		return
	}

	if err := os.MkdirAll(om.ReceiptDir, 0o755); err != nil {
		utils.ErrorLogger.Printf("Receipt text: error creating %s: %v", om.ReceiptDir, err)
		return
	}

	name := receipt.FileName(order)
	path := filepath.Join(om.ReceiptDir, name)
	if err := os.WriteFile(path, []byte(receipt.Build(order)), 0o644); err != nil {
		utils.ErrorLogger.Printf("Receipt text: error writing %s: %v", path, err)
		return
	}

	utils.InfoLogger.Printf("Stored receipt %s", path)
	notifier.BroadcastReceiptStored(order.ID, name)
}

func (om *OrderMonitor) storePrintReceipt(orderID uint) {
	time.Sleep(om.PrintDelay)

	order, err := om.fetchOrder(orderID)
	if err != nil {
		utils.ErrorLogger.Printf("Receipt print: error fetching order %d: %v", orderID, err)
		return
	}

	if err := os.MkdirAll(om.ReceiptDir, 0o755); err != nil {
		utils.ErrorLogger.Printf("Receipt print: error creating %s: %v", om.ReceiptDir, err)
		return
	}

	name := strings.TrimSuffix(receipt.FileName(order), ".txt") + ".pdf"
	path := filepath.Join(om.ReceiptDir, name)
	if err := receipt.RenderPDF(order, path); err != nil {
		utils.ErrorLogger.Printf("Receipt print: error rendering %s: %v", path, err)
		return
	}

	utils.InfoLogger.Printf("Stored print receipt %s", path)
	notifier.BroadcastReceiptStored(order.ID, name)
}

func (om *OrderMonitor) fetchOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := om.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
