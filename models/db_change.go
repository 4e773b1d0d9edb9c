package models

import "time"

const (
	ChangeInsert = "INSERT"
	ChangeUpdate = "UPDATE"
)

// DBChange is one row of the change feed consumed by the order monitor.
// Rows are appended by the controllers that write orders, not by database
// triggers, so SQLite test runs exercise the same path as production.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   uint      `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
