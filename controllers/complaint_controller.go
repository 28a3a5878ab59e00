package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
)

// ComplaintInput represents the editable fields of a complaint. The same
// body is used for create and full update; on create the status is ignored
// and forced to Pendente.
type ComplaintInput struct {
	Origin       string `json:"origin" binding:"required"`
	Category     string `json:"category" binding:"required"`
	Street       string `json:"street"`
	HouseNumber  string `json:"house_number"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	Zone         string `json:"zone" binding:"required"`
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	Description  string `json:"description"`
	ReceivedBy   string `json:"received_by" binding:"required"`
	Status       string `json:"status"`
	NightAction  bool   `json:"night_action"`
}

// validateComplaintInput checks that every enumerated field carries a value
// from its closed option list. Out-of-set values are rejected at this
// boundary so the stored rows only ever hold known variants.
func validateComplaintInput(in *ComplaintInput, requireStatus bool) (string, bool) {
	switch {
	case !models.ValidOption(models.Origins, in.Origin):
		return "origin", false
	case !models.ValidOption(models.Categories, in.Category):
		return "category", false
	case !models.ValidOption(models.Neighborhoods, in.Neighborhood):
		return "neighborhood", false
	case !models.ValidOption(models.Zones, in.Zone):
		return "zone", false
	case !models.ValidOption(models.Inspectors, in.ReceivedBy):
		return "received_by", false
	case requireStatus && !models.ValidOption(models.Statuses, in.Status):
		return "status", false
	}
	return "", true
}

// parseComplaintID reads the :id parameter and enforces the positive
// integer bound. Returns 0 and writes the error response when invalid.
func parseComplaintID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Complaint id must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// NextExternalID computes the human-facing id the next complaint would
// receive: max(internal id)+1 zero-padded to four digits, plus the year.
// The value is a preview only; nothing is reserved, and a concurrent insert
// winning the race makes the later insert fail on the unique constraint.
func NextExternalID(db *gorm.DB, now time.Time) (string, error) {
	var maxID int64
	err := db.Model(&models.Complaint{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	if err != nil {
		return "", fmt.Errorf("failed to read max complaint id: %w", err)
	}
	return fmt.Sprintf("%04d/%d", maxID+1, now.Year()), nil
}

// PreviewExternalID handles GET /api/v1/complaints/next-id
func PreviewExternalID(c *gin.Context) {
	externalID, err := NextExternalID(config.GetDB(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute next external id",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"external_id": externalID},
	})
}

// CreateComplaint handles POST /api/v1/complaints - records a new complaint.
// Status is always Pendente on creation regardless of caller input.
func CreateComplaint(c *gin.Context) {
	var req ComplaintInput
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

	if field, ok := validateComplaintInput(&req, false); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_OPTION",
				"message": fmt.Sprintf("Value for %q is not one of the allowed options", field),
			},
		})
		return
	}

	db := config.GetDB()
	now := time.Now()
	externalID, err := NextExternalID(db, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute external id",
			},
		})
		return
	}

	complaint := models.Complaint{
		ExternalID:   externalID,
		CreatedAt:    now,
		Origin:       req.Origin,
		Category:     req.Category,
		Street:       req.Street,
		HouseNumber:  req.HouseNumber,
		Neighborhood: req.Neighborhood,
		Zone:         req.Zone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Description:  req.Description,
		ReceivedBy:   req.ReceivedBy,
		Status:       models.StatusPending,
		NightAction:  req.NightAction,
	}

	if err := db.Create(&complaint).Error; err != nil {
		if isUniqueViolation(err) {
			// A concurrent intake won the race for this external id.
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EXTERNAL_ID_TAKEN",
					"message": "The external id was taken by a concurrent submission; retry the save",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create complaint",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// GetComplaint handles GET /api/v1/complaints/:id
func GetComplaint(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// UpdateComplaint handles PUT /api/v1/complaints/:id - full-record update.
// ExternalID and CreatedAt are immutable and never touched here.
func UpdateComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	var req ComplaintInput
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

	if field, ok := validateComplaintInput(&req, true); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_OPTION",
				"message": fmt.Sprintf("Value for %q is not one of the allowed options", field),
			},
		})
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

	// Map update so false/empty values overwrite too.
	updates := map[string]interface{}{
		"origin":       req.Origin,
		"category":     req.Category,
		"street":       req.Street,
		"house_number": req.HouseNumber,
		"neighborhood": req.Neighborhood,
		"zone":         req.Zone,
		"latitude":     req.Latitude,
		"longitude":    req.Longitude,
		"description":  req.Description,
		"received_by":  req.ReceivedBy,
		"status":       req.Status,
		"night_action": req.NightAction,
	}

	if err := db.Model(&complaint).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update complaint",
			},
		})
		return
	}

	if err := db.First(&complaint, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated complaint",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// SetStatusRequest represents the request body for status changes
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetComplaintStatus handles PATCH /api/v1/complaints/:id/status
func SetComplaintStatus(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidOption(models.Statuses, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be one of the allowed options",
			},
		})
		return
	}

	db := config.GetDB()
	res := db.Model(&models.Complaint{}).Where("id = ?", id).Update("status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update status",
			},
		})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_NOT_FOUND",
				"message": "Complaint not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id, "status": req.Status},
	})
}

// BatchStatusRequest represents the request body for the history table's
// batch status action
type BatchStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1"`
	Status string `json:"status" binding:"required"`
}

// BatchSetStatus handles POST /api/v1/complaints/batch/status
func BatchSetStatus(c *gin.Context) {
	var req BatchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidOption(models.Statuses, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "A non-empty id list and an allowed status are required",
			},
		})
		return
	}

	db := config.GetDB()
	res := db.Model(&models.Complaint{}).Where("id IN ?", req.IDs).Update("status", req.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update statuses",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"updated": res.RowsAffected},
	})
}

// deleteComplaintTx removes a complaint and all its recurrences in one
// transaction and reports whether the complaint existed.
func deleteComplaintTx(db *gorm.DB, ids []uint) (int64, error) {
	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id IN ?", ids).Delete(&models.Recurrence{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Complaint{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// DeleteComplaint handles DELETE /api/v1/complaints/:id - removes the
// complaint and, transitively, all its recurrences.
func DeleteComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}

	deleted, err := deleteComplaintTx(config.GetDB(), []uint{id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete complaint",
			},
		})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_NOT_FOUND",
				"message": "Complaint not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": deleted},
	})
}

// BatchDeleteRequest represents the request body for the batch delete action
type BatchDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// BatchDeleteComplaints handles POST /api/v1/complaints/batch/delete
func BatchDeleteComplaints(c *gin.Context) {
	var req BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A non-empty id list is required",
				"details": err.Error(),
			},
		})
		return
	}

	deleted, err := deleteComplaintTx(config.GetDB(), req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete complaints",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": deleted},
	})
}

// escapeLike neutralizes LIKE metacharacters so filter input always matches
// literally. Callers must pair the pattern with ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// filteredComplaints builds the history listing: newest internal id first,
// each row annotated with its recurrence count, narrowed by the optional
// conjunctive filters (external_id substring, status equality, description
// substring).
func filteredComplaints(c *gin.Context, db *gorm.DB) ([]models.Complaint, error) {
	query := db.Model(&models.Complaint{}).
		Select("complaints.*, (SELECT COUNT(*) FROM recurrences r WHERE r.complaint_id = complaints.id) AS recurrence_count").
		Order("complaints.id DESC")

	if v := c.Query("external_id"); v != "" {
		query = query.Where(`external_id LIKE ? ESCAPE '\'`, "%"+escapeLike(v)+"%")
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}
	if v := c.Query("q"); v != "" {
		query = query.Where(`description LIKE ? ESCAPE '\'`, "%"+escapeLike(v)+"%")
	}

	var complaints []models.Complaint
	if err := query.Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListComplaints handles GET /api/v1/complaints
func ListComplaints(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
	})
}
