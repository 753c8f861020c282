package models

import "errors"

// Sentinel errors shared by the sale and payment flows so handlers can map
// them to distinct HTTP status codes.
var (
	ErrProduitNotFound   = errors.New("product not found")
	ErrStockNotFound     = errors.New("stock record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrVenteNotFound     = errors.New("sale not found")
	ErrVenteNotEnCours   = errors.New("sale is not in progress")
	ErrPaiementExists    = errors.New("sale already has a payment")
)
