package models

import "time"

type Client struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom          string    `gorm:"not null" json:"nom"`
	Email        string    `json:"email,omitempty"`
	Telephone    string    `json:"telephone,omitempty"`
	Adresse      string    `json:"adresse,omitempty"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"date_creation"`
}
