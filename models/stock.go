package models

import "time"

// Stock is the on-hand quantity ledger, one row per product.
// Quantite must never go negative; all mutations happen through
// row-locked transactions in the sale and stock controllers.
type Stock struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProduitID    uint      `gorm:"uniqueIndex;not null" json:"produit_id"`
	Produit      Produit   `gorm:"foreignKey:ProduitID" json:"produit,omitempty"`
	Quantite     int       `gorm:"not null;default:0" json:"quantite"`
	SeuilAlerte  int       `gorm:"not null;default:0" json:"seuil_alerte"`
	DerniereMAJ  time.Time `gorm:"autoUpdateTime" json:"derniere_mise_a_jour"`
}

// EnAlerte reports whether the quantity has reached the alert threshold.
func (s *Stock) EnAlerte() bool {
	return s.Quantite <= s.SeuilAlerte
}
