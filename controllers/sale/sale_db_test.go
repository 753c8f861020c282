package saleControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/metrics"
	"github.com/louamlemjid/caisse-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	metrics.Init("caissetest")
	os.Exit(m.Run())
}

// newTestDB opens a per-test in-memory database. The sqlite driver drops
// the FOR UPDATE clause, so the transactional flows run unchanged.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Utilisateur{},
		&models.Produit{},
		&models.Stock{},
		&models.Client{},
		&models.Vente{},
		&models.LigneVente{},
		&models.Paiement{},
	))
	return db
}

func seedProduit(t *testing.T, db *gorm.DB, prix models.Centimes, quantite, seuil int) models.Produit {
	t.Helper()
	produit := models.Produit{Nom: "Café moulu", Description: "paquet 250g", Prix: prix, Categorie: "épicerie"}
	require.NoError(t, db.Create(&produit).Error)
	require.NoError(t, db.Create(&models.Stock{
		ProduitID:   produit.ID,
		Quantite:    quantite,
		SeuilAlerte: seuil,
		DerniereMAJ: time.Now(),
	}).Error)
	return produit
}

func stockFor(t *testing.T, db *gorm.DB, produitID uint) models.Stock {
	t.Helper()
	var stock models.Stock
	require.NoError(t, db.Where("produit_id = ?", produitID).First(&stock).Error)
	return stock
}

func dbRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", uint(1)) })
	r.POST("/ventes", CreateVenteHandler(db))
	r.PUT("/ventes/:id", UpdateVenteStatusHandler(db))
	r.DELETE("/ventes/:id", DeleteVenteHandler(db))
	return r
}

func putStatut(r *gin.Engine, venteID uint, statut string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/ventes/%d", venteID),
		strings.NewReader(fmt.Sprintf(`{"statut":%q}`, statut)))
	r.ServeHTTP(w, req)
	return w
}

func TestCreateVenteDecrementsStockAndComputesTotal(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 10, 2)

	vente, alertes, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: produit.ID, Quantite: 3}},
		Remise:      10,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, models.Centimes(1350), vente.Total)
	assert.Equal(t, models.VenteEnCours, vente.Statut)
	require.Len(t, vente.Lignes, 1)
	assert.Equal(t, models.Centimes(500), vente.Lignes[0].PrixUnitaire)
	assert.Equal(t, models.Centimes(1500), vente.Lignes[0].SousTotal)
	assert.Empty(t, alertes)
	assert.Equal(t, 7, stockFor(t, db, produit.ID).Quantite)
}

func TestCreateVenteRollsBackOnInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	first := seedProduit(t, db, 500, 10, 2)
	second := seedProduit(t, db, 300, 1, 0)

	_, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{
			{Produit: first.ID, Quantite: 4},
			{Produit: second.ID, Quantite: 2},
		},
	}, 1)
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	// the first line's decrement must not survive the rollback
	assert.Equal(t, 10, stockFor(t, db, first.ID).Quantite)
	assert.Equal(t, 1, stockFor(t, db, second.ID).Quantite)

	var count int64
	require.NoError(t, db.Model(&models.Vente{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateVenteUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: 999, Quantite: 1}},
	}, 1)
	require.ErrorIs(t, err, models.ErrProduitNotFound)
}

func TestCreateVenteReportsLowStock(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 5, 3)

	var alerted []models.Stock
	orig := notifyStockAlerte
	notifyStockAlerte = func(s models.Stock) { alerted = append(alerted, s) }
	t.Cleanup(func() { notifyStockAlerte = orig })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ventes",
		strings.NewReader(fmt.Sprintf(`{"lignesVente":[{"produit":%d,"quantite":2}]}`, produit.ID)))
	dbRouter(db).ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// 5 - 2 = 3 hits the threshold, so the sale raises an alert
	require.Len(t, alerted, 1)
	assert.Equal(t, produit.ID, alerted[0].ProduitID)
	assert.Equal(t, 3, alerted[0].Quantite)
	assert.Equal(t, produit.Nom, alerted[0].Produit.Nom)
}

func TestCancelRestoresStockAndVoidsPaiement(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 10, 2)

	vente, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: produit.ID, Quantite: 3}},
		Remise:      10,
	}, 1)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Paiement{
		VenteID:       vente.ID,
		Montant:       1350,
		MontantClient: 2000,
		Type:          models.PaiementEspeces,
		Statut:        models.PaiementEnAttente,
	}).Error)

	r := dbRouter(db)
	w := putStatut(r, vente.ID, "annulée")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 10, stockFor(t, db, produit.ID).Quantite)

	var paiement models.Paiement
	require.NoError(t, db.Where("vente_id = ?", vente.ID).First(&paiement).Error)
	assert.Equal(t, models.PaiementAnnule, paiement.Statut)

	// the response reflects the voided payment, not its old status
	var resp struct {
		Data struct {
			Statut   string `json:"statut"`
			Paiement *struct {
				Statut string `json:"statut"`
			} `json:"paiement"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "annulée", resp.Data.Statut)
	require.NotNil(t, resp.Data.Paiement)
	assert.Equal(t, "annulé", resp.Data.Paiement.Statut)

	// cancelling again is a no-op and must not restore stock twice
	w = putStatut(r, vente.ID, "annulée")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, stockFor(t, db, produit.ID).Quantite)
}

func TestStatusTransitionsOnlyOutOfEnCours(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 10, 2)

	vente, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: produit.ID, Quantite: 2}},
	}, 1)
	require.NoError(t, err)

	r := dbRouter(db)
	require.Equal(t, http.StatusOK, putStatut(r, vente.ID, "finalisée").Code)

	// finalized sales cannot be cancelled, and stock stays sold
	w := putStatut(r, vente.ID, "annulée")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 8, stockFor(t, db, produit.ID).Quantite)

	// same-status update stays a no-op
	assert.Equal(t, http.StatusOK, putStatut(r, vente.ID, "finalisée").Code)

	w = putStatut(r, 9999, "annulée")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVenteRestoresStockAndRemovesPaiement(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 10, 2)

	vente, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: produit.ID, Quantite: 4}},
	}, 1)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Paiement{
		VenteID: vente.ID,
		Montant: 2000, MontantClient: 2000,
		Type:   models.PaiementCarte,
		Statut: models.PaiementEnAttente,
	}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/ventes/%d", vente.ID), nil)
	dbRouter(db).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 10, stockFor(t, db, produit.ID).Quantite)

	var ventes, lignes, paiements int64
	require.NoError(t, db.Model(&models.Vente{}).Count(&ventes).Error)
	require.NoError(t, db.Model(&models.LigneVente{}).Count(&lignes).Error)
	require.NoError(t, db.Model(&models.Paiement{}).Count(&paiements).Error)
	assert.Zero(t, ventes)
	assert.Zero(t, lignes)
	assert.Zero(t, paiements)
}

func TestDeleteVenteOnlyWhileEnCours(t *testing.T) {
	db := newTestDB(t)
	produit := seedProduit(t, db, 500, 10, 2)

	vente, _, err := CreateVente(db, CreateVenteRequest{
		LignesVente: []LigneVenteRequest{{Produit: produit.ID, Quantite: 4}},
	}, 1)
	require.NoError(t, err)

	r := dbRouter(db)
	require.Equal(t, http.StatusOK, putStatut(r, vente.ID, "finalisée").Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/ventes/%d", vente.ID), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the sale and its stock movement are untouched
	assert.Equal(t, 6, stockFor(t, db, produit.ID).Quantite)
	var count int64
	require.NoError(t, db.Model(&models.Vente{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
