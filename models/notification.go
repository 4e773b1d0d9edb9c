package models

import "time"

// Notification is the persisted copy of an admin alert, so the console can
// list alerts that arrived while no websocket client was connected.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
