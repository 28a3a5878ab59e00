package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/models"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login - authenticates a staff account
// and issues a session token.
func Login(c *gin.Context) {
	var req LoginRequest
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

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_CREDENTIALS",
				"message": "Username and password are required",
			},
		})
		return
	}

	// Digest comparison against the stored hash; which half failed is
	// deliberately not revealed.
	db := config.GetDB()
	var user models.User
	err := db.Where("username = ? AND password_hash = ?", username, utils.HashPassword(req.Password)).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Incorrect username or password",
			},
		})
		return
	}

	cfg := config.GetConfig()
	token, err := utils.GenerateToken(user.Username, []byte(cfg.JWTSecret),
		time.Duration(cfg.SessionTTLHours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "TOKEN_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}
