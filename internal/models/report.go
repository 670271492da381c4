package models

import (
	"encoding/json"
)

// Compliance API messages used when no remote verdict is available
const (
	ComplianceAPIUnavailable = "API unavailable"
	ComplianceNotChecked     = "Not checked"
	ComplianceSchemaUnknown  = "unknown"
)

// ComplianceAPIRequest is the payload sent to the remote compliance API
type ComplianceAPIRequest struct {
	License  *PalimpsestLicense `json:"license"`
	Manifest *AIBDPManifest     `json:"manifest"`
}

// ComplianceAPIResponse is the verdict of the remote compliance API
type ComplianceAPIResponse struct {
	Valid         bool   `json:"valid"`
	Message       string `json:"message"`
	SchemaVersion string `json:"schemaVersion"`
}

// ReportRequest is the HTTP body for a full compliance report
type ReportRequest struct {
	License    string          `json:"license" binding:"required"`
	LicenseNL  string          `json:"licenseNl,omitempty"`
	Manifest   json.RawMessage `json:"manifest" binding:"required"`
	LineageTag string          `json:"lineageTag" binding:"required"`
	TagFormat  string          `json:"tagFormat,omitempty"`
	Signature  string          `json:"signature,omitempty"`
}

// ComplianceReport aggregates every check of a licence bundle
type ComplianceReport struct {
	License       LicenseSummary        `json:"license"`
	Manifest      CheckSummary          `json:"manifest"`
	LineageTag    CheckSummary          `json:"lineageTag"`
	Localization  CheckSummary          `json:"localization"`
	ComplianceAPI ComplianceAPIResponse `json:"complianceAPI"`
	Compliance    ComplianceSummary     `json:"compliance"`

	// HasErrors is true when any check that gates the exit status failed
	HasErrors bool `json:"-"`
}

// LicenseSummary reports the licence check
type LicenseSummary struct {
	Valid   bool     `json:"valid"`
	Version string   `json:"version"`
	Errors  []string `json:"errors"`
}

// CheckSummary reports a single check
type CheckSummary struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ComplianceSummary reports cross-document consistency
type ComplianceSummary struct {
	ManifestMatchesLicense bool `json:"manifestMatchesLicense"`
}

// NotCheckedVerdict is reported when the compliance API was not called
func NotCheckedVerdict() ComplianceAPIResponse {
	return ComplianceAPIResponse{
		Valid:         false,
		Message:       ComplianceNotChecked,
		SchemaVersion: ComplianceSchemaUnknown,
	}
}

// UnavailableVerdict is reported when the compliance API call failed
func UnavailableVerdict() ComplianceAPIResponse {
	return ComplianceAPIResponse{
		Valid:         false,
		Message:       ComplianceAPIUnavailable,
		SchemaVersion: ComplianceSchemaUnknown,
	}
}
