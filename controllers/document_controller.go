package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
	"github.com/urbfiscalizacao/denuncias-api/services"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

// DownloadServiceOrder handles GET /api/v1/complaints/:id/document - renders
// the complaint and its recurrences as the service-order PDF. ?edited=true
// marks the download as a post-edit reprint (the _EDITADA filename rule).
func DownloadServiceOrder(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var complaint models.Complaint
	if err := db.First(&complaint, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_NOT_FOUND",
				"message": "Complaint not found",
			},
		})
		return
	}

	var recurrences []models.Recurrence
	if err := db.Where("complaint_id = ?", id).Order("created_at ASC, id ASC").Find(&recurrences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load recurrences",
			},
		})
		return
	}

	pdfBytes, err := services.RenderServiceOrder(complaint, recurrences)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RENDER_ERROR",
				"message": "Failed to render service order document",
			},
		})
		return
	}

	utils.DocumentCount.Inc()

	edited := c.Query("edited") == "true"
	fileName := services.ServiceOrderFileName(complaint.ExternalID, edited)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// ExportComplaintsCSV handles GET /api/v1/complaints/export/csv - exports the
// filtered history table, honouring the same filters as the listing.
func ExportComplaintsCSV(c *gin.Context) {
	complaints, err := filteredComplaints(c, config.GetDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list complaints",
			},
		})
		return
	}

	data, err := services.GenerateComplaintsCSV(complaints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to generate CSV export",
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="denuncias.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportComplaintsXLSX handles GET /api/v1/complaints/export/xlsx - same
// subset as the CSV export, as a spreadsheet.
func ExportComplaintsXLSX(c *gin.Context) {
	complaints, err := filteredComplaints(c, config.GetDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list complaints",
			},
		})
		return
	}

	data, err := services.GenerateComplaintsXLSX(complaints)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to generate spreadsheet export",
			},
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="denuncias.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
