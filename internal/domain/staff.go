package domain

import (
	"time"
)

type Role string

const (
	RoleStylist      Role = "发型师"
	RoleReceptionist Role = "前台"
	RoleManager      Role = "店长"
)

type Staff struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
