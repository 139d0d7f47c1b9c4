package models

import "gorm.io/gorm"

// Roles a caller can hold. Admins are provisioned out of band.
const (
	RoleUser      = "user"
	RoleAuthority = "authority"
	RoleAdmin     = "admin"
)

// User представляє обліковий запис у системі: заявник, відомство або адміністратор.
type User struct {
	gorm.Model

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	// Password is a bcrypt hash, never the raw value.
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`
	// Role is one of RoleUser, RoleAuthority, RoleAdmin.
	Role     string `gorm:"not null;default:user" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// Authority is the department profile bound 1:1 to a user account with
// the authority role. Verification is admin-gated; an unverified
// authority is never routed to.
type Authority struct {
	gorm.Model

	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	BadgeNumber  string `gorm:"uniqueIndex" json:"badge_number"`
	Department   string `gorm:"not null" json:"department"`
	Jurisdiction string `json:"jurisdiction"`
	PhoneNumber  string `json:"phone_number"`
	IsVerified   bool   `gorm:"default:false" json:"is_verified"`
}
