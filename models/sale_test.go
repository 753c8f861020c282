package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVenteStatus(t *testing.T) {
	for _, valid := range []string{"en cours", "finalisée", "annulée"} {
		statut, err := ParseVenteStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, VenteStatus(valid), statut)
	}

	for _, invalid := range []string{"", "finalized", "EN COURS", "supprimée"} {
		_, err := ParseVenteStatus(invalid)
		assert.Error(t, err, "status %q should be rejected", invalid)
	}
}

func TestComputeTotal(t *testing.T) {
	lignes := []LigneVente{
		{Quantite: 3, PrixUnitaire: 500, SousTotal: 1500},
	}

	// 3 x 5.00 with 10% discount -> 13.50
	assert.Equal(t, Centimes(1350), ComputeTotal(lignes, 10))
	assert.Equal(t, Centimes(1500), ComputeTotal(lignes, 0))

	lignes = append(lignes, LigneVente{Quantite: 2, PrixUnitaire: 250, SousTotal: 500})
	assert.Equal(t, Centimes(2000), ComputeTotal(lignes, 0))
	assert.Equal(t, Centimes(1000), ComputeTotal(lignes, 50))

	assert.Equal(t, Centimes(0), ComputeTotal(nil, 25))
}

func TestStockEnAlerte(t *testing.T) {
	assert.True(t, (&Stock{Quantite: 2, SeuilAlerte: 2}).EnAlerte())
	assert.True(t, (&Stock{Quantite: 0, SeuilAlerte: 2}).EnAlerte())
	assert.False(t, (&Stock{Quantite: 7, SeuilAlerte: 2}).EnAlerte())
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"caisse", "manager", "stock_manager"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("admin")
	assert.Error(t, err)
}
