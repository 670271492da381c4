package models

import (
	"github.com/goccy/go-json"
)

// DocumentKind identifies what was validated
type DocumentKind string

const (
	DocumentKindSchema     DocumentKind = "SCHEMA"
	DocumentKindManifest   DocumentKind = "MANIFEST"
	DocumentKindLineageTag DocumentKind = "LINEAGE_TAG"
	DocumentKindLicense    DocumentKind = "LICENSE"
)

// ValidationAudit represents a persisted validation outcome
type ValidationAudit struct {
	ValidationID  string  `db:"VALIDATION_ID"`
	OrgID         string  `db:"ORG_ID"`
	DocumentKind  string  `db:"DOCUMENT_KIND"`
	SchemaVersion string  `db:"SCHEMA_VERSION"`
	IsValid       bool    `db:"IS_VALID"`
	Errors        string  `db:"ERRORS"` // JSON array of error strings
	CorrelationID *string `db:"CORRELATION_ID"`
	ValidatedTime int64   `db:"VALIDATED_TIME"`
}

// ValidationAuditResponse is the API view of a ValidationAudit
type ValidationAuditResponse struct {
	ValidationID  string   `json:"validationId"`
	DocumentKind  string   `json:"documentKind"`
	SchemaVersion string   `json:"schemaVersion"`
	Valid         bool     `json:"valid"`
	Errors        []string `json:"errors"`
	CorrelationID *string  `json:"correlationId,omitempty"`
	ValidatedTime int64    `json:"validatedTime"`
}

// ValidationAuditListResponse is the paginated list of audits
type ValidationAuditListResponse struct {
	Data       []ValidationAuditResponse `json:"data"`
	Pagination PaginationMeta            `json:"pagination"`
}

// PaginationMeta describes a page of results
type PaginationMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// EncodeErrors serializes error strings for the ERRORS column
func EncodeErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}
	encoded, err := json.Marshal(errs)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// ToResponse converts the stored record to its API representation.
// A malformed ERRORS column is surfaced as a single error string.
func (a *ValidationAudit) ToResponse() ValidationAuditResponse {
	errs := []string{}
	if a.Errors != "" {
		if err := json.Unmarshal([]byte(a.Errors), &errs); err != nil {
			errs = []string{a.Errors}
		}
	}

	return ValidationAuditResponse{
		ValidationID:  a.ValidationID,
		DocumentKind:  a.DocumentKind,
		SchemaVersion: a.SchemaVersion,
		Valid:         a.IsValid,
		Errors:        errs,
		CorrelationID: a.CorrelationID,
		ValidatedTime: a.ValidatedTime,
	}
}
