package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/pkg/utils"
	"github.com/wso2/consent-policy-validator/pkg/validator"
)

// Errors returned by audit lookups
var (
	ErrAuditDisabled      = errors.New("validation audit is disabled")
	ErrValidationNotFound = errors.New("validation not found")
)

// ValidationAuditStore persists validation outcomes
type ValidationAuditStore interface {
	Create(ctx context.Context, audit *models.ValidationAudit) error
	CreateBatch(ctx context.Context, audits []*models.ValidationAudit) error
	GetByID(ctx context.Context, validationID, orgID string) (*models.ValidationAudit, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]models.ValidationAudit, int, error)
}

// ValidationService runs document validations and records their outcomes
type ValidationService struct {
	manifests  *ManifestService
	lineage    *LineageService
	licenses   *LicenseService
	auditStore ValidationAuditStore
	logger     *logrus.Logger
}

// NewValidationService creates a new ValidationService. A nil auditStore
// disables audit recording.
func NewValidationService(
	manifests *ManifestService,
	lineage *LineageService,
	licenses *LicenseService,
	auditStore ValidationAuditStore,
	logger *logrus.Logger,
) *ValidationService {
	return &ValidationService{
		manifests:  manifests,
		lineage:    lineage,
		licenses:   licenses,
		auditStore: auditStore,
		logger:     logger,
	}
}

// AuditEnabled reports whether validation outcomes are persisted
func (s *ValidationService) AuditEnabled() bool {
	return s.auditStore != nil
}

// ValidateSchema runs the advanced schema check for a schema version.
// The returned ID is empty when audit is disabled or the record failed.
func (s *ValidationService) ValidateSchema(ctx context.Context, orgID, schemaVersion string, data []byte) (validator.Result, string) {
	result := validator.Validate(data, schemaVersion)
	id := s.record(ctx, orgID, models.DocumentKindSchema, schemaVersion, result.Valid, result.Errors)
	return result, id
}

// ValidateManifest validates an AIBDP manifest
func (s *ValidationService) ValidateManifest(ctx context.Context, orgID string, data []byte) (*models.ManifestResult, string) {
	result := s.manifests.ValidateManifest(data)
	id := s.record(ctx, orgID, models.DocumentKindManifest, validator.SchemaVersionV11, result.Valid, result.Errors)
	return result, id
}

// ValidateLineageTag validates a synthetic lineage tag
func (s *ValidationService) ValidateLineageTag(ctx context.Context, orgID string, content []byte, format string) (*models.LineageTagResult, string, error) {
	result, err := s.lineage.ValidateLineageTag(content, format)
	if err != nil {
		return nil, "", err
	}
	id := s.record(ctx, orgID, models.DocumentKindLineageTag, result.Format, result.Valid, result.Errors)
	return result, id, nil
}

// ParseLicense parses and validates a licence text
func (s *ValidationService) ParseLicense(ctx context.Context, orgID string, content []byte, trustedHash string) (*models.LicenseResult, string) {
	result := s.licenses.ParseLicense(content, trustedHash)
	id := s.record(ctx, orgID, models.DocumentKindLicense, result.Version(), result.Valid, result.Errors)
	return result, id
}

// record stores a validation outcome. Failures are logged and never change
// the validation result.
func (s *ValidationService) record(ctx context.Context, orgID string, kind models.DocumentKind, schemaVersion string, valid bool, errs []string) string {
	if s.auditStore == nil {
		return ""
	}

	logger := s.logger.WithFields(logrus.Fields{
		"orgID":         orgID,
		"documentKind":  kind,
		"schemaVersion": schemaVersion,
	})

	audit, err := newAudit(ctx, orgID, kind, schemaVersion, valid, errs)
	if err != nil {
		logger.WithError(err).Warn("Failed to encode validation errors for audit")
		return ""
	}

	if err := s.auditStore.Create(ctx, audit); err != nil {
		logger.WithError(err).Warn("Failed to record validation audit")
		return ""
	}

	logger.WithField("validationID", audit.ValidationID).Debug("Validation audit recorded")
	return audit.ValidationID
}

// RecordReport stores one audit record per document of a compliance report,
// licence then manifest then lineage tag, in a single batch. It returns the
// validation IDs in that order, or nil when audit is disabled or the batch failed.
func (s *ValidationService) RecordReport(ctx context.Context, orgID string, report *models.ComplianceReport, tagFormat string) []string {
	if s.auditStore == nil {
		return nil
	}

	tagFormat = strings.ToUpper(strings.TrimSpace(tagFormat))
	if tagFormat == "" {
		tagFormat = models.LineageFormatXML
	}

	documents := []struct {
		kind          models.DocumentKind
		schemaVersion string
		valid         bool
		errs          []string
	}{
		{models.DocumentKindLicense, report.License.Version, report.License.Valid, report.License.Errors},
		{models.DocumentKindManifest, validator.SchemaVersionV11, report.Manifest.Valid, report.Manifest.Errors},
		{models.DocumentKindLineageTag, tagFormat, report.LineageTag.Valid, report.LineageTag.Errors},
	}

	logger := s.logger.WithField("orgID", orgID)

	audits := make([]*models.ValidationAudit, 0, len(documents))
	ids := make([]string, 0, len(documents))
	for _, doc := range documents {
		audit, err := newAudit(ctx, orgID, doc.kind, doc.schemaVersion, doc.valid, doc.errs)
		if err != nil {
			logger.WithError(err).Warn("Failed to encode validation errors for audit")
			return nil
		}
		audits = append(audits, audit)
		ids = append(ids, audit.ValidationID)
	}

	if err := s.auditStore.CreateBatch(ctx, audits); err != nil {
		logger.WithError(err).Warn("Failed to record compliance report audit")
		return nil
	}

	logger.WithField("validationIDs", ids).Debug("Compliance report audit recorded")
	return ids
}

func newAudit(ctx context.Context, orgID string, kind models.DocumentKind, schemaVersion string, valid bool, errs []string) (*models.ValidationAudit, error) {
	encoded, err := models.EncodeErrors(errs)
	if err != nil {
		return nil, err
	}

	audit := &models.ValidationAudit{
		ValidationID:  utils.GenerateValidationID(),
		OrgID:         orgID,
		DocumentKind:  string(kind),
		SchemaVersion: schemaVersion,
		IsValid:       valid,
		Errors:        encoded,
		ValidatedTime: utils.GetCurrentTimeMillis(),
	}
	if correlationID := utils.CorrelationIDFromContext(ctx); correlationID != "" {
		audit.CorrelationID = &correlationID
	}
	return audit, nil
}

// GetValidation retrieves a recorded validation outcome
func (s *ValidationService) GetValidation(ctx context.Context, orgID, validationID string) (*models.ValidationAuditResponse, error) {
	if s.auditStore == nil {
		return nil, ErrAuditDisabled
	}
	if err := utils.ValidateValidationID(validationID); err != nil {
		return nil, err
	}
	if err := utils.ValidateOrgID(orgID); err != nil {
		return nil, err
	}

	audit, err := s.auditStore.GetByID(ctx, validationID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to get validation: %w", err)
	}
	if audit == nil {
		return nil, ErrValidationNotFound
	}

	response := audit.ToResponse()
	return &response, nil
}

// ListValidations retrieves recorded validation outcomes, newest first
func (s *ValidationService) ListValidations(ctx context.Context, orgID string, limit, offset int) (*models.ValidationAuditListResponse, error) {
	if s.auditStore == nil {
		return nil, ErrAuditDisabled
	}
	if err := utils.ValidateOrgID(orgID); err != nil {
		return nil, err
	}

	limit = utils.ValidateLimit(limit)
	offset = utils.ValidateOffset(offset)

	audits, total, err := s.auditStore.List(ctx, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list validations: %w", err)
	}

	data := make([]models.ValidationAuditResponse, 0, len(audits))
	for i := range audits {
		data = append(data, audits[i].ToResponse())
	}

	return &models.ValidationAuditListResponse{
		Data: data,
		Pagination: models.PaginationMeta{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}, nil
}
