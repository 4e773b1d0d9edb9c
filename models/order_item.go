package models

import "time"

// OrderItem carries snapshots of name, price and portion name taken at
// checkout time, so later catalog edits never alter historical orders.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Order       Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID  uint      `gorm:"not null" json:"menu_item_id"`
	ItemName    string    `gorm:"type:varchar(255);not null" json:"item_name"`
	PortionName *string   `gorm:"type:varchar(100)" json:"portion_name,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
