package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Base
	Username     string `gorm:"unique;not null" json:"username" validate:"required,min=3,max=40"`
	Email        string `gorm:"unique;not null" json:"email" validate:"required,email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:user" json:"role" validate:"oneof=user admin"`
}

type LoginHistory struct {
	Base
	UserID    uint      `json:"user_id"`
	LoginTime time.Time `json:"login_time"`
}
