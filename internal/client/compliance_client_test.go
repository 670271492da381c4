package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/consent-policy-validator/internal/config"
	"github.com/wso2/consent-policy-validator/internal/logging"
	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/pkg/utils"
)

func newTestClient(url string) *ComplianceClient {
	return NewComplianceClient(&config.ComplianceAPIConfig{
		URL:     url,
		Timeout: 2 * time.Second,
	}, logging.NewDiscardLogger())
}

func sampleLicense() *models.PalimpsestLicense {
	return &models.PalimpsestLicense{
		LicenseVersion: "v0.3.0",
		AGIConsent:     models.AGIConsent{DefaultPolicy: models.PolicyDeny},
	}
}

func sampleManifest() *models.AIBDPManifest {
	return &models.AIBDPManifest{
		ManifestVersion:   models.AIBDPManifestVersion,
		PalimpsestLicense: models.AIBDPPalimpsestReference,
	}
}

func TestComplianceClient_Check_Success(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "corr-7", r.Header.Get("X-Correlation-ID"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid":true,"message":"Compliant","schemaVersion":"v1.1"}`))
	}))
	defer server.Close()

	ctx := utils.WithCorrelationID(context.Background(), "corr-7")
	verdict := newTestClient(server.URL).Check(ctx, sampleLicense(), sampleManifest())

	assert.Equal(t, models.ComplianceAPIResponse{Valid: true, Message: "Compliant", SchemaVersion: "v1.1"}, verdict)
	assert.Contains(t, received, "license")
	assert.Contains(t, received, "manifest")
}

func TestComplianceClient_Check_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			verdict := newTestClient(server.URL).Check(context.Background(), sampleLicense(), sampleManifest())
			assert.Equal(t, models.UnavailableVerdict(), verdict)
		})
	}
}

func TestComplianceClient_Check_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	verdict := newTestClient(url).Check(context.Background(), sampleLicense(), sampleManifest())
	assert.False(t, verdict.Valid)
	assert.Equal(t, "API unavailable", verdict.Message)
	assert.Equal(t, "unknown", verdict.SchemaVersion)
}

func TestComplianceClient_Check_Disabled(t *testing.T) {
	client := newTestClient("")
	assert.False(t, client.IsEnabled())

	verdict := client.Check(context.Background(), sampleLicense(), sampleManifest())
	assert.Equal(t, models.ComplianceAPIResponse{Valid: false, Message: "Not checked", SchemaVersion: "unknown"}, verdict)
}
