package models

import "time"

const RoleAdmin = "admin"

// AdminRole grants a profile access to the admin console and privileged
// endpoints. At most one grant per (profile, role).
type AdminRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_profile_role" json:"profile_id"`
	Profile   Profile   `gorm:"foreignKey:ProfileID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_profile_role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
