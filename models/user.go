package models

import (
	"errors"
	"time"
)

type Role string

const (
	RoleCaisse       Role = "caisse"
	RoleManager      Role = "manager"
	RoleStockManager Role = "stock_manager"
)

// ParseRole validates a role string coming from a request body.
func ParseRole(role string) (Role, error) {
	switch Role(role) {
	case RoleCaisse, RoleManager, RoleStockManager:
		return Role(role), nil
	default:
		return "", errors.New("invalid role")
	}
}

type Utilisateur struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom          string    `gorm:"not null" json:"nom"`
	Email        string    `gorm:"unique;not null" json:"email"`
	MotDePasse   string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Role         Role      `gorm:"type:VARCHAR(20);not null" json:"role"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"date_creation"`
}
