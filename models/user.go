package models

import "time"

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"size:254;index" json:"email"`
	Password    string     `gorm:"size:255" json:"-"` // bcrypt hash
	IsStaff     bool       `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool       `gorm:"default:false" json:"is_superuser"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"date_joined"`
	UpdatedAt   time.Time  `json:"-"`
}

// CanUseAdmin reports whether login should route the user to the admin area.
func (u User) CanUseAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
