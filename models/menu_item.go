package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	// Base price; inert once the item has portions (sold per portion only).
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL     string    `gorm:"type:varchar(255)" json:"image_url"`
	IsVegetarian bool      `gorm:"not null;default:true" json:"is_vegetarian"`
	IsAvailable  bool      `gorm:"not null;default:true" json:"is_available"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	Portions     []Portion `gorm:"foreignKey:MenuItemID" json:"portions"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
