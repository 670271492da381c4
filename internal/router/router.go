package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/config"
	"github.com/wso2/consent-policy-validator/internal/handlers"
	"github.com/wso2/consent-policy-validator/internal/middleware"
	"github.com/wso2/consent-policy-validator/internal/service"
	"github.com/wso2/consent-policy-validator/internal/utils"
)

// SetupRouter configures all API routes
func SetupRouter(
	cfg *config.Config,
	validationService *service.ValidationService,
	reportService *service.ReportService,
	logger *logrus.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLogger(logger))

	if cfg.CORS.Enabled {
		router.Use(middleware.CORSMiddleware(cfg.CORS))
	}

	// Global middleware to extract headers and set context
	router.Use(func(c *gin.Context) {
		// Extract and set org ID
		orgID := c.GetHeader("org-id")
		if orgID != "" {
			utils.SetContextValue(c, "orgID", orgID)
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	validationHandler := handlers.NewValidationHandler(validationService, reportService, cfg.Server.MaxBodyBytes)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/schemas/:version/validate", validationHandler.ValidateSchema)
		v1.POST("/manifests/validate", validationHandler.ValidateManifest)
		v1.POST("/lineage-tags/validate", validationHandler.ValidateLineageTag)
		v1.POST("/licenses/parse", validationHandler.ParseLicense)
		v1.POST("/compliance/report", validationHandler.GenerateReport)

		// Validation audit routes
		validations := v1.Group("/validations")
		{
			validations.GET("", validationHandler.ListValidations)
			validations.GET("/:validationId", validationHandler.GetValidation)
		}
	}

	return router
}
