package statsControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/louamlemjid/caisse-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportVentesToExcel handles GET /rapports/ventes.xlsx: one row per sale
// line with the parent sale's reference, status and totals.
func ExportVentesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ventes []models.Vente
		if err := db.
			Preload("Lignes.Produit").
			Preload("Client").
			Preload("Utilisateur").
			Order("date DESC").
			Find(&ventes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch sales"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Ventes")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"Ref", "Date", "Client", "Utilisateur", "Statut",
			"Produit", "Quantite", "PrixUnitaire", "SousTotal",
			"Remise", "Total",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, v := range ventes {
			clientNom := ""
			if v.Client != nil {
				clientNom = v.Client.Nom
			}
			for _, ligne := range v.Lignes {
				row := sheet.AddRow()
				row.AddCell().SetValue(v.Ref)
				row.AddCell().SetValue(v.Date.Format("2006-01-02 15:04:05"))
				row.AddCell().SetValue(clientNom)
				row.AddCell().SetValue(v.Utilisateur.Nom)
				row.AddCell().SetValue(string(v.Statut))
				row.AddCell().SetValue(ligne.Produit.Nom)
				row.AddCell().SetValue(ligne.Quantite)
				row.AddCell().SetValue(strconv.FormatInt(int64(ligne.PrixUnitaire), 10))
				row.AddCell().SetValue(strconv.FormatInt(int64(ligne.SousTotal), 10))
				row.AddCell().SetValue(v.Remise)
				row.AddCell().SetValue(strconv.FormatInt(int64(v.Total), 10))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=ventes.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to write Excel file"})
			return
		}
	}
}
