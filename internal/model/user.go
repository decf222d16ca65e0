package model

import "time"

// User represents an account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash []byte    `json:"-" gorm:"type:varbinary(64);not null"` // Never expose in JSON
	PasswordSalt []byte    `json:"-" gorm:"type:varbinary(64);not null"`
	DisplayName  string    `json:"display_name,omitempty" gorm:"size:255"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'User'"`
	ImageURL     string    `json:"image_url,omitempty" gorm:"size:512"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
