package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Vendor identity printed on every receipt.
const (
	VendorName    = "BENGULURU BHAVAN"
	VendorTagline = "South Indian Restaurant"
)

// Restaurant coordinates, used to compute delivery distance for admins.
const (
	RestaurantLatitude  = 28.4595
	RestaurantLongitude = 77.0266
)

// InitDB opens the configured database. MySQL when DB_HOST is set,
// otherwise a local SQLite file so the app runs without external services.
func InitDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "ordering.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		host,
		port,
		os.Getenv("DB_NAME"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// ReceiptDir is the directory receipt artifacts (text + PDF) are written to.
func ReceiptDir() string {
	dir := os.Getenv("RECEIPT_DIR")
	if dir == "" {
		dir = "receipts"
	}
	return dir
}
