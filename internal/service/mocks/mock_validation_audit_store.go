package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wso2/consent-policy-validator/internal/models"
)

// MockValidationAuditStore is a mock implementation of ValidationAuditStore
type MockValidationAuditStore struct {
	mock.Mock
}

func (m *MockValidationAuditStore) Create(ctx context.Context, audit *models.ValidationAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockValidationAuditStore) CreateBatch(ctx context.Context, audits []*models.ValidationAudit) error {
	args := m.Called(ctx, audits)
	return args.Error(0)
}

func (m *MockValidationAuditStore) GetByID(ctx context.Context, validationID, orgID string) (*models.ValidationAudit, error) {
	args := m.Called(ctx, validationID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidationAudit), args.Error(1)
}

func (m *MockValidationAuditStore) List(ctx context.Context, orgID string, limit, offset int) ([]models.ValidationAudit, int, error) {
	args := m.Called(ctx, orgID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.ValidationAudit), args.Int(1), args.Error(2)
}
