package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/client"
	"github.com/wso2/consent-policy-validator/internal/config"
	"github.com/wso2/consent-policy-validator/internal/dao"
	"github.com/wso2/consent-policy-validator/internal/database"
	"github.com/wso2/consent-policy-validator/internal/logging"
	"github.com/wso2/consent-policy-validator/internal/router"
	"github.com/wso2/consent-policy-validator/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Bootstrap logger until the configured one is available
	bootLogger := logrus.New()
	bootLogger.SetFormatter(&logrus.JSONFormatter{})

	// Priority: CONFIG_PATH env var > repository/conf/deployment.yaml > cmd/server/repository/conf/deployment.yaml
	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger.WithError(err).Fatal("Failed to load configuration")
	}
	config.SetGlobal(cfg)

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		bootLogger.WithError(err).Fatal("Failed to initialize logger")
	}

	logger.WithFields(logrus.Fields{
		"version":     version,
		"build_date":  buildDate,
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Starting Consent Policy Validator...")

	// Audit persistence is optional
	var auditStore service.ValidationAuditStore
	var db *database.DB
	if cfg.Audit.Enabled {
		db, err = database.Initialize(&cfg.Database.Audit, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.HealthCheck(ctx); err != nil {
			cancel()
			logger.WithError(err).Fatal("Database health check failed")
		}
		cancel()

		auditStore = dao.NewValidationAuditDAO(db)
		logger.Info("Validation audit enabled")
	}

	complianceClient := client.NewComplianceClient(&cfg.ComplianceAPI, logger)
	defer complianceClient.Close()
	logger.WithField("enabled", complianceClient.IsEnabled()).Info("Compliance client initialized")

	// Initialize services
	manifestService := service.NewManifestService(logger)
	lineageService := service.NewLineageService(logger)
	licenseService := service.NewLicenseService(logger)

	validationService := service.NewValidationService(
		manifestService,
		lineageService,
		licenseService,
		auditStore,
		logger,
	)

	reportService := service.NewReportService(
		licenseService,
		manifestService,
		lineageService,
		complianceClient,
		logger,
	)

	logger.WithField("audit_enabled", validationService.AuditEnabled()).Info("Services initialized successfully")

	ginRouter := router.SetupRouter(cfg, validationService, reportService, logger)

	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("addr", serverAddr).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	if db != nil {
		go logPoolStats(db)
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return
	}

	logger.Info("Server exited gracefully")
}

// logPoolStats periodically logs audit database pool statistics at debug level
func logPoolStats(db *database.DB) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		db.LogStats()
	}
}
