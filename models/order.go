package models

import (
	"strings"
	"time"
)

// Order statuses. Transitions are unconstrained: any status may follow any
// other, including Delivered back to Pending. See SetOrderStatus.
const (
	StatusPending        = "Pending"
	StatusConfirmed      = "Confirmed"
	StatusPreparing      = "Preparing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

var OrderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`

	ProfileID uint    `gorm:"not null;index" json:"profile_id"`
	Profile   Profile `gorm:"foreignKey:ProfileID" json:"-"`

	CustomerName    string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`
	FlatNo          string `gorm:"type:varchar(100)" json:"flat_no"`
	ApartmentStreet string `gorm:"type:varchar(255)" json:"apartment_street"`
	Sector          string `gorm:"type:varchar(100)" json:"sector"`
	Area            string `gorm:"type:varchar(100)" json:"area"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status      string  `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
}

// ShortID is the first 8 characters of the public identifier, upper-cased,
// used on receipts and filenames.
func (o *Order) ShortID() string {
	id := o.PublicID
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// FullAddress composes the structured sub-fields. A missing sub-field makes
// the composition unreliable, so the free-text address is used instead.
func (o *Order) FullAddress() string {
	parts := []string{o.FlatNo, o.ApartmentStreet, o.Sector, o.Area}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return o.CustomerAddress
		}
	}
	return strings.Join(parts, ", ")
}
