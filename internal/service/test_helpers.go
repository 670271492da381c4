package service

import (
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/service/mocks"
)

// TestSetup contains common test dependencies
type TestSetup struct {
	MockAuditStore *mocks.MockValidationAuditStore
	MockCompliance *mocks.MockComplianceChecker
	Manifests      *ManifestService
	Lineage        *LineageService
	Licenses       *LicenseService
	Logger         *logrus.Logger
}

// NewTestSetup creates a new test setup with mocks
func NewTestSetup() *TestSetup {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	return &TestSetup{
		MockAuditStore: &mocks.MockValidationAuditStore{},
		MockCompliance: &mocks.MockComplianceChecker{},
		Manifests:      NewManifestService(logger),
		Lineage:        NewLineageService(logger),
		Licenses:       NewLicenseService(logger),
		Logger:         logger,
	}
}

// NewValidationService builds a ValidationService recording into the mock audit store
func (ts *TestSetup) NewValidationService() *ValidationService {
	return NewValidationService(ts.Manifests, ts.Lineage, ts.Licenses, ts.MockAuditStore, ts.Logger)
}

// NewReportService builds a ReportService using the mock compliance checker
func (ts *TestSetup) NewReportService() *ReportService {
	return NewReportService(ts.Licenses, ts.Manifests, ts.Lineage, ts.MockCompliance, ts.Logger)
}

const validManifestJSON = `{
	"manifest_version": "1.0",
	"palimpsest_license": "Palimpsest License v0.3",
	"ai_boundaries": {
		"default_consent": {
			"training": "deny",
			"generation": "allow",
			"agentic": "deny",
			"qai": "deny"
		}
	}
}`

const validLicenseMarkdown = `# Palimpsest License v0.3.1

## Clause 1 - Definitions

Synthetic outputs must carry lineage.
They must name the original work.

## Clause 2 - AGI Consent

No AGI training without consent.
`

const validLineageXML = `<synthetic_lineage><original_work title="Ode" creator="Ada"/></synthetic_lineage>`
