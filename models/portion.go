package models

import "time"

// Portion is a sellable size of a menu item ("Half"/"Full") with its own price.
type Portion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MenuItemID   uint      `gorm:"not null;index" json:"menu_item_id"`
	MenuItem     MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
