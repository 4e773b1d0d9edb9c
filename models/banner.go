package models

import "time"

// Banner sections are a fixed enumeration; a banner announces a daily special,
// it is not a sellable item.
const (
	BannerSectionLunch  = "Lunch Menu"
	BannerSectionDinner = "Dinner Menu"
)

func ValidBannerSection(section string) bool {
	return section == BannerSectionLunch || section == BannerSectionDinner
}

type Banner struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Section      string    `gorm:"type:varchar(50);not null" json:"section"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	IsVegetarian bool      `gorm:"not null;default:true" json:"is_vegetarian"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
