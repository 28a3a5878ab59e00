package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urbfiscalizacao/denuncias-api/models"
)

// ListOptions handles GET /api/v1/options - returns the closed option lists
// the intake form presents as dropdowns. The server validates against the
// same lists, so the front end never needs its own copy.
func ListOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"origins":       models.Origins,
			"categories":    models.Categories,
			"neighborhoods": models.Neighborhoods,
			"zones":         models.Zones,
			"inspectors":    models.Inspectors,
			"statuses":      models.Statuses,
		},
	})
}
