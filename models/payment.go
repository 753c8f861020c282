package models

import (
	"errors"
	"time"
)

type PaiementType string
type PaiementStatus string

const (
	PaiementEspeces  PaiementType = "espèces"
	PaiementCarte    PaiementType = "carte"
	PaiementVirement PaiementType = "virement"
	PaiementCheque   PaiementType = "chèque"

	PaiementEnAttente PaiementStatus = "en attente"
	PaiementComplete  PaiementStatus = "complété"
	PaiementAnnule    PaiementStatus = "annulé"
)

func ParsePaiementType(t string) (PaiementType, error) {
	switch PaiementType(t) {
	case PaiementEspeces, PaiementCarte, PaiementVirement, PaiementCheque:
		return PaiementType(t), nil
	default:
		return "", errors.New("invalid payment type")
	}
}

func ParsePaiementStatus(statut string) (PaiementStatus, error) {
	switch PaiementStatus(statut) {
	case PaiementEnAttente, PaiementComplete, PaiementAnnule:
		return PaiementStatus(statut), nil
	default:
		return "", errors.New("invalid payment status")
	}
}

type Paiement struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	VenteID       uint           `gorm:"uniqueIndex;not null" json:"vente_id"`
	Montant       Centimes       `gorm:"not null" json:"montant"`
	MontantClient Centimes       `gorm:"not null" json:"montant_client"`
	Type          PaiementType   `gorm:"type:VARCHAR(20);not null" json:"type"`
	Date          time.Time      `gorm:"autoCreateTime" json:"date"`
	Statut        PaiementStatus `gorm:"type:VARCHAR(20);default:'en attente'" json:"statut"`
}
