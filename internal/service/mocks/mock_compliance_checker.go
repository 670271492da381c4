package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wso2/consent-policy-validator/internal/models"
)

// MockComplianceChecker is a mock implementation of ComplianceChecker
type MockComplianceChecker struct {
	mock.Mock
}

func (m *MockComplianceChecker) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockComplianceChecker) Check(ctx context.Context, license *models.PalimpsestLicense, manifest *models.AIBDPManifest) models.ComplianceAPIResponse {
	args := m.Called(ctx, license, manifest)
	return args.Get(0).(models.ComplianceAPIResponse)
}
