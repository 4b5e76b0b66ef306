package models

import "time"

// User is a staff, courier, or agent account.
type User struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Username           string     `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Name               string     `json:"name" gorm:"size:255"`
	PasswordHash       string     `json:"-" gorm:"size:255;not null"`
	Role               string     `json:"role" gorm:"size:32;index;not null"`
	OriginBranch       string     `json:"origin_branch" gorm:"size:64;index"`
	Phone              string     `json:"phone" gorm:"size:32"`
	Status             string     `json:"status" gorm:"size:16;default:active"`
	IsSuper            bool       `json:"is_super"`
	TokenVersion       uint64     `json:"-"`
	TokenInvalidBefore *time.Time `json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName keeps the upstream table name.
func (User) TableName() string {
	return "users"
}
