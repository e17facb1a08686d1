package main

import (
	"log"

	"github.com/martinvega/visa462-tracker/config"
	"github.com/martinvega/visa462-tracker/handler"
	"github.com/martinvega/visa462-tracker/service"
	"github.com/martinvega/visa462-tracker/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize profile store
	profileStore, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open profile store: %v", err)
	}
	defer profileStore.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	payslipService := service.NewPayslipService(pdfProcessor)
	ledgerService := service.NewLedgerService(profileStore)

	// Initialize handler layer
	payslipHandler := handler.NewPayslipHandler(payslipService)
	profileHandler := handler.NewProfileHandler(ledgerService)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Visa 462 Work-Day Tracker",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		payslip := api.Group("/payslip")
		{
			payslip.POST("/extract", payslipHandler.ExtractHours)
		}

		profiles := api.Group("/profiles")
		{
			profiles.POST("", profileHandler.CreateProfile)
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/:name", profileHandler.GetProfile)
			profiles.DELETE("/:name", profileHandler.DeleteProfile)
			profiles.POST("/:name/accruals", profileHandler.ConfirmHours)
			profiles.DELETE("/:name/accruals/:id", profileHandler.RevertEntry)
			profiles.POST("/:name/reset", profileHandler.ResetProfile)
			profiles.GET("/:name/report", profileHandler.Report)
		}
	}

	// Start server
	log.Printf("Starting Visa 462 Work-Day Tracker on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
