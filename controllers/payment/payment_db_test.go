package paymentControllers

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/louamlemjid/caisse-api/metrics"
	"github.com/louamlemjid/caisse-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	metrics.Init("paiementtest")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vente{}, &models.LigneVente{}, &models.Paiement{}))
	return db
}

func seedVente(t *testing.T, db *gorm.DB, statut models.VenteStatus) models.Vente {
	t.Helper()
	vente := models.Vente{
		Ref:           fmt.Sprintf("20260831120000-%s-%s", t.Name(), statut),
		UtilisateurID: 1,
		Total:         1000,
		Statut:        statut,
	}
	require.NoError(t, db.Create(&vente).Error)
	return vente
}

func paiementRequest(venteID uint) CreatePaiementRequest {
	montant := models.Centimes(1000)
	montantClient := models.Centimes(1500)
	return CreatePaiementRequest{
		Vente:         venteID,
		Montant:       &montant,
		MontantClient: &montantClient,
	}
}

func TestCreatePaiementCompleteFinalizesVente(t *testing.T) {
	db := newTestDB(t)
	vente := seedVente(t, db, models.VenteEnCours)

	paiement, err := CreatePaiement(db, paiementRequest(vente.ID), models.PaiementCarte, models.PaiementComplete)
	require.NoError(t, err)
	assert.Equal(t, models.PaiementComplete, paiement.Statut)

	var reloaded models.Vente
	require.NoError(t, db.First(&reloaded, vente.ID).Error)
	assert.Equal(t, models.VenteFinalisee, reloaded.Statut)
}

func TestCreatePaiementEnAttenteKeepsVenteEnCours(t *testing.T) {
	db := newTestDB(t)
	vente := seedVente(t, db, models.VenteEnCours)

	_, err := CreatePaiement(db, paiementRequest(vente.ID), models.PaiementEspeces, models.PaiementEnAttente)
	require.NoError(t, err)

	var reloaded models.Vente
	require.NoError(t, db.First(&reloaded, vente.ID).Error)
	assert.Equal(t, models.VenteEnCours, reloaded.Statut)
}

func TestCreatePaiementDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	vente := seedVente(t, db, models.VenteEnCours)

	_, err := CreatePaiement(db, paiementRequest(vente.ID), models.PaiementEspeces, models.PaiementEnAttente)
	require.NoError(t, err)

	_, err = CreatePaiement(db, paiementRequest(vente.ID), models.PaiementCarte, models.PaiementComplete)
	require.ErrorIs(t, err, models.ErrPaiementExists)

	var count int64
	require.NoError(t, db.Model(&models.Paiement{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreatePaiementRequiresEnCours(t *testing.T) {
	db := newTestDB(t)

	for _, statut := range []models.VenteStatus{models.VenteFinalisee, models.VenteAnnulee} {
		vente := seedVente(t, db, statut)
		_, err := CreatePaiement(db, paiementRequest(vente.ID), models.PaiementEspeces, models.PaiementEnAttente)
		assert.ErrorIs(t, err, models.ErrVenteNotEnCours, "statut %s", statut)
	}
}

func TestCreatePaiementUnknownVente(t *testing.T) {
	db := newTestDB(t)

	_, err := CreatePaiement(db, paiementRequest(424242), models.PaiementEspeces, models.PaiementEnAttente)
	require.ErrorIs(t, err, models.ErrVenteNotFound)
}
