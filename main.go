package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urbfiscalizacao/denuncias-api/config"
	"github.com/urbfiscalizacao/denuncias-api/controllers"
	"github.com/urbfiscalizacao/denuncias-api/middleware"
	"github.com/urbfiscalizacao/denuncias-api/utils"
)

func main() {
	log.Println("Starting URB Fiscalização complaint intake API...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel, cfg.IsProduction())
	utils.InitMetrics()

	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := config.MigrateDatabase(config.GetDB(), cfg.DefaultAdminPassword); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and routes onto a fresh engine.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/auth/login", controllers.Login)

		authed := v1.Group("", middleware.RequireSession(cfg))
		{
			authed.GET("/options", controllers.ListOptions)

			authed.GET("/complaints", controllers.ListComplaints)
			authed.GET("/complaints/next-id", controllers.PreviewExternalID)
			authed.POST("/complaints", controllers.CreateComplaint)
			authed.GET("/complaints/export/csv", controllers.ExportComplaintsCSV)
			authed.GET("/complaints/export/xlsx", controllers.ExportComplaintsXLSX)
			authed.POST("/complaints/batch/status", controllers.BatchSetStatus)
			authed.POST("/complaints/batch/delete", controllers.BatchDeleteComplaints)
			authed.GET("/complaints/:id", controllers.GetComplaint)
			authed.PUT("/complaints/:id", controllers.UpdateComplaint)
			authed.PATCH("/complaints/:id/status", controllers.SetComplaintStatus)
			authed.DELETE("/complaints/:id", controllers.DeleteComplaint)

			authed.POST("/complaints/:id/recurrences", controllers.AppendRecurrence)
			authed.GET("/complaints/:id/recurrences", controllers.ListRecurrences)

			authed.GET("/complaints/:id/document", controllers.DownloadServiceOrder)

			admin := authed.Group("", middleware.RequireAdmin())
			{
				admin.POST("/users", controllers.CreateUser)
				admin.GET("/users", controllers.ListUsers)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Denúncias API is running",
	})
}
