package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/config"
	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/pkg/utils"
)

// maxResponseBytes caps how much of a compliance API response is read
const maxResponseBytes = 1 << 20

// ComplianceClient calls the remote Palimpsest compliance API
type ComplianceClient struct {
	httpClient *http.Client
	config     *config.ComplianceAPIConfig
	logger     *logrus.Logger
}

// NewComplianceClient creates a new compliance client instance
func NewComplianceClient(cfg *config.ComplianceAPIConfig, logger *logrus.Logger) *ComplianceClient {
	timeout := 10 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &ComplianceClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		config: cfg,
		logger: logger,
	}
}

// IsEnabled reports whether a compliance API URL is configured
func (c *ComplianceClient) IsEnabled() bool {
	return c.config.IsEnabled()
}

// Check submits a licence and manifest for a remote compliance verdict.
// Failures never surface as errors: they yield the "API unavailable" verdict.
func (c *ComplianceClient) Check(ctx context.Context, license *models.PalimpsestLicense, manifest *models.AIBDPManifest) models.ComplianceAPIResponse {
	if !c.IsEnabled() {
		c.logger.Debug("Compliance API not configured, skipping check")
		return models.NotCheckedVerdict()
	}

	response, err := c.call(ctx, &models.ComplianceAPIRequest{License: license, Manifest: manifest})
	if err != nil {
		c.logger.WithError(err).WithField("url", c.config.URL).Warn("API check failed")
		return models.UnavailableVerdict()
	}

	return *response
}

func (c *ComplianceClient) call(ctx context.Context, request *models.ComplianceAPIRequest) (*models.ComplianceAPIResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if correlationID := utils.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set("X-Correlation-ID", correlationID)
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("compliance API call failed after %s: %w", duration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"statusCode": resp.StatusCode,
		"duration":   duration,
		"url":        c.config.URL,
	}).Debug("Compliance API response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("compliance API returned status %d: %s", resp.StatusCode, string(body))
	}

	var verdict models.ComplianceAPIResponse
	if err := json.Unmarshal(body, &verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &verdict, nil
}

// Close closes the HTTP client connections
func (c *ComplianceClient) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}
