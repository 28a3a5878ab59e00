package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
)

// AppendRecurrenceRequest represents the request body for appending a
// recurrence note
type AppendRecurrenceRequest struct {
	Source      string `json:"source" binding:"required"`
	Description string `json:"description"`
}

// AppendRecurrence handles POST /api/v1/complaints/:id/recurrences - adds a
// follow-up note to an existing complaint. The timestamp is server-assigned
// and notes are never edited or deleted afterwards.
func AppendRecurrence(c *gin.Context) {
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

	var req AppendRecurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	recurrence := models.Recurrence{
		ComplaintID: complaint.ID,
		Source:      req.Source,
		Description: req.Description,
	}

	if err := db.Create(&recurrence).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to append recurrence",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    recurrence,
	})
}

// ListRecurrences handles GET /api/v1/complaints/:id/recurrences - returns
// the complaint's follow-up notes in ascending creation order.
func ListRecurrences(c *gin.Context) {
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
				"message": "Failed to list recurrences",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recurrences,
	})
}
