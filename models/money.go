package models

// Centimes is a monetary amount in integer centimes. All prices, subtotals
// and totals are stored and computed in centimes so money math never touches
// floating point.
type Centimes int64

// ApplyRemise applies a percentage discount (0-100) to an amount,
// rounding half-up to the nearest centime.
func ApplyRemise(montant Centimes, remise int) Centimes {
	return Centimes((int64(montant)*int64(100-remise) + 50) / 100)
}
