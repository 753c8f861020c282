package models

import "time"

type Produit struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nom          string    `gorm:"not null" json:"nom"`
	Description  string    `json:"description"`
	Prix         Centimes  `gorm:"not null" json:"prix"` // unit price in centimes
	Categorie    string    `gorm:"not null;index" json:"categorie"`
	Image        string    `json:"image,omitempty"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"date_creation"`
}
