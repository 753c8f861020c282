package models

import (
	"errors"
	"time"
)

type VenteStatus string

const (
	VenteEnCours   VenteStatus = "en cours"
	VenteFinalisee VenteStatus = "finalisée"
	VenteAnnulee   VenteStatus = "annulée"
)

// ParseVenteStatus maps a request status string to a VenteStatus.
func ParseVenteStatus(statut string) (VenteStatus, error) {
	switch VenteStatus(statut) {
	case VenteEnCours, VenteFinalisee, VenteAnnulee:
		return VenteStatus(statut), nil
	default:
		return "", errors.New("invalid sale status")
	}
}

// LigneVente is one line of a sale. PrixUnitaire is copied from the product
// at sale time so later price changes never alter a recorded sale.
type LigneVente struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	VenteID      uint     `gorm:"index;not null" json:"-"`
	ProduitID    uint     `gorm:"not null" json:"produit_id"`
	Produit      Produit  `gorm:"foreignKey:ProduitID" json:"produit,omitempty"`
	Quantite     int      `gorm:"not null" json:"quantite"`
	PrixUnitaire Centimes `gorm:"not null" json:"prix_unitaire"`
	SousTotal    Centimes `gorm:"not null" json:"sous_total"`
}

type Vente struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref           string       `gorm:"uniqueIndex;not null" json:"ref"`
	ClientID      *uint        `json:"client_id,omitempty"`
	Client        *Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	UtilisateurID uint         `gorm:"not null" json:"utilisateur_id"`
	Utilisateur   Utilisateur  `gorm:"foreignKey:UtilisateurID" json:"utilisateur,omitempty"`
	Date          time.Time    `gorm:"autoCreateTime" json:"date"`
	Lignes        []LigneVente `gorm:"foreignKey:VenteID;constraint:OnDelete:CASCADE" json:"lignesVente"`
	Remise        int          `gorm:"not null;default:0" json:"remise"`
	Total         Centimes     `gorm:"not null" json:"total"`
	Statut        VenteStatus  `gorm:"type:VARCHAR(20);default:'en cours'" json:"statut"`
	Paiement      *Paiement    `gorm:"foreignKey:VenteID" json:"paiement,omitempty"`
}

// ComputeTotal sums the line subtotals and applies the discount.
func ComputeTotal(lignes []LigneVente, remise int) Centimes {
	var sousTotal Centimes
	for _, ligne := range lignes {
		sousTotal += ligne.SousTotal
	}
	return ApplyRemise(sousTotal, remise)
}
