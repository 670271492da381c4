package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/models"
)

// Report output formats
const (
	ReportFormatText = "text"
	ReportFormatJSON = "json"
)

// ComplianceChecker obtains a remote compliance verdict for a licence and manifest
type ComplianceChecker interface {
	IsEnabled() bool
	Check(ctx context.Context, license *models.PalimpsestLicense, manifest *models.AIBDPManifest) models.ComplianceAPIResponse
}

// ReportService combines every licence bundle check into a compliance report
type ReportService struct {
	licenses   *LicenseService
	manifests  *ManifestService
	lineage    *LineageService
	compliance ComplianceChecker
	logger     *logrus.Logger
}

// NewReportService creates a new ReportService. compliance may be nil,
// in which case the remote check is never performed.
func NewReportService(
	licenses *LicenseService,
	manifests *ManifestService,
	lineage *LineageService,
	compliance ComplianceChecker,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		licenses:   licenses,
		manifests:  manifests,
		lineage:    lineage,
		compliance: compliance,
		logger:     logger,
	}
}

// ReportSources holds the raw documents of a licence bundle
type ReportSources struct {
	License []byte
	// LicenseNL is the Dutch translation; nil skips the localization check
	LicenseNL  []byte
	Manifest   []byte
	LineageTag []byte
	TagFormat  string
	Signature  string
}

// ReportInput holds the individual check results a report is built from
type ReportInput struct {
	License    *models.LicenseResult
	LicenseNL  *models.LicenseResult
	Manifest   *models.ManifestResult
	LineageTag *models.LineageTagResult
}

// GenerateReport runs every check on the raw documents and builds the report.
// An error is returned only for an unsupported lineage tag format.
func (s *ReportService) GenerateReport(ctx context.Context, src ReportSources) (*models.ComplianceReport, error) {
	format := src.TagFormat
	if format == "" {
		format = models.LineageFormatXML
	}

	tag, err := s.lineage.ValidateLineageTag(src.LineageTag, format)
	if err != nil {
		return nil, err
	}

	input := ReportInput{
		License:    s.licenses.ParseLicense(src.License, src.Signature),
		Manifest:   s.manifests.ValidateManifest(src.Manifest),
		LineageTag: tag,
	}
	if src.LicenseNL != nil {
		input.LicenseNL = s.licenses.ParseLicense(src.LicenseNL, src.Signature)
	}

	return s.BuildReport(ctx, input), nil
}

// BuildReport combines check results, consults the compliance API when both
// licence and manifest are valid, and computes cross-document consistency
func (s *ReportService) BuildReport(ctx context.Context, in ReportInput) *models.ComplianceReport {
	localization := []string{}
	if in.LicenseNL != nil && in.License.Sections != nil && in.LicenseNL.Sections != nil {
		localization = s.licenses.CheckLocalization(in.License.Sections, in.LicenseNL.Sections)
	}

	bothValid := in.License.Valid && in.Manifest.Valid

	verdict := models.NotCheckedVerdict()
	complianceEnabled := s.compliance != nil && s.compliance.IsEnabled()
	if bothValid && complianceEnabled {
		verdict = s.compliance.Check(ctx, in.License.Data, in.Manifest.Data)
	}

	matches := false
	if bothValid && in.License.Data != nil {
		matches = in.License.Data.AGIConsent.DefaultPolicy == in.Manifest.Data.TrainingPolicy()
	}

	report := &models.ComplianceReport{
		License: models.LicenseSummary{
			Valid:   in.License.Valid,
			Version: in.License.Version(),
			Errors:  nonNil(in.License.Errors),
		},
		Manifest: models.CheckSummary{
			Valid:  in.Manifest.Valid,
			Errors: nonNil(in.Manifest.Errors),
		},
		LineageTag: models.CheckSummary{
			Valid:  in.LineageTag.Valid,
			Errors: nonNil(in.LineageTag.Errors),
		},
		Localization: models.CheckSummary{
			Valid:  len(localization) == 0,
			Errors: localization,
		},
		ComplianceAPI: verdict,
		Compliance: models.ComplianceSummary{
			ManifestMatchesLicense: matches,
		},
	}

	report.HasErrors = !in.License.Valid ||
		!in.Manifest.Valid ||
		!in.LineageTag.Valid ||
		(in.LicenseNL != nil && !in.LicenseNL.Valid) ||
		(complianceEnabled && !verdict.Valid)

	s.logger.WithFields(logrus.Fields{
		"license":    report.License.Valid,
		"manifest":   report.Manifest.Valid,
		"lineageTag": report.LineageTag.Valid,
		"compliance": verdict.Message,
		"hasErrors":  report.HasErrors,
	}).Debug("Compliance report built")

	return report
}

// RenderReport renders a report in the given format ("text" or "json")
func RenderReport(report *models.ComplianceReport, format string) (string, error) {
	switch format {
	case ReportFormatJSON:
		return RenderJSON(report)
	case ReportFormatText, "":
		return RenderText(report), nil
	default:
		return "", fmt.Errorf("unsupported report format %q", format)
	}
}

// RenderJSON renders a report as JSON indented by two spaces
func RenderJSON(report *models.ComplianceReport) (string, error) {
	encoded, err := json.MarshalIndentWithOption(report, "", "  ", json.DisableHTMLEscape())
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(encoded), nil
}

// RenderText renders a report as a human readable summary followed by every
// error message
func RenderText(report *models.ComplianceReport) string {
	var b strings.Builder

	b.WriteString("Palimpsest License Parser Report\n")
	b.WriteString("================================\n")
	fmt.Fprintf(&b, "- License: %s (%s)\n", validity(report.License.Valid), report.License.Version)
	fmt.Fprintf(&b, "- AIBDP Manifest: %s\n", validity(report.Manifest.Valid))
	fmt.Fprintf(&b, "- Lineage Tag: %s\n", validity(report.LineageTag.Valid))
	fmt.Fprintf(&b, "- Localization: %s\n", match(report.Localization.Valid))
	fmt.Fprintf(&b, "- Compliance API: %s (Schema: %s)\n", mark(report.ComplianceAPI.Valid, "Valid", "Invalid"), report.ComplianceAPI.SchemaVersion)
	fmt.Fprintf(&b, "- Overall Compliance: %s\n", match(report.Compliance.ManifestMatchesLicense))
	b.WriteString("\nErrors:")

	for _, msg := range reportErrors(report) {
		b.WriteString("\n- ")
		b.WriteString(msg)
	}

	return b.String()
}

func reportErrors(report *models.ComplianceReport) []string {
	var errs []string
	errs = append(errs, report.License.Errors...)
	errs = append(errs, report.Manifest.Errors...)
	errs = append(errs, report.LineageTag.Errors...)
	errs = append(errs, report.Localization.Errors...)
	if !report.ComplianceAPI.Valid {
		errs = append(errs, report.ComplianceAPI.Message)
	}
	return errs
}

func validity(valid bool) string {
	if valid {
		return "Valid"
	}
	return "Invalid"
}

func match(ok bool) string {
	return mark(ok, "Matches", "Mismatch")
}

func mark(ok bool, yes, no string) string {
	if ok {
		return "✓ " + yes
	}
	return "✗ " + no
}

func nonNil(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
