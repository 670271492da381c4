package models

// Consent policy values used across manifests and licences
const (
	PolicyAllow = "allow"
	PolicyDeny  = "deny"
)

// Fixed values required by the AIBDP manifest schema
const (
	AIBDPManifestVersion     = "1.0"
	AIBDPPalimpsestReference = "Palimpsest License v0.3"
)

// ManifestErrorPrefix prefixes manifest read and decode failures
const ManifestErrorPrefix = "Manifest error: "

// AIBDPManifest is an AI Boundary Declaration Protocol manifest
type AIBDPManifest struct {
	ManifestVersion   string        `json:"manifest_version" validate:"required,eq=1.0"`
	PalimpsestLicense string        `json:"palimpsest_license" validate:"required,eq=Palimpsest License v0.3"`
	AIBoundaries      *AIBoundaries `json:"ai_boundaries" validate:"required"`
	Signature         *string       `json:"signature,omitempty"`
}

// AIBoundaries declares the AI usage boundaries of a work
type AIBoundaries struct {
	DefaultConsent *AIBoundariesDefaultConsent `json:"default_consent" validate:"required"`
}

// AIBoundariesDefaultConsent holds the default consent per AI usage.
// QAI is checked by the v1.1 advanced schema rule, not by the basic schema,
// so it keeps whatever JSON value the manifest declares.
type AIBoundariesDefaultConsent struct {
	Training   string      `json:"training" validate:"required,oneof=allow deny"`
	Generation string      `json:"generation" validate:"required,oneof=allow deny"`
	Agentic    string      `json:"agentic" validate:"required,oneof=allow deny"`
	QAI        interface{} `json:"qai,omitempty"`
}

// ManifestResult is the outcome of validating an AIBDP manifest
type ManifestResult struct {
	Valid  bool           `json:"valid"`
	Data   *AIBDPManifest `json:"data,omitempty"`
	Errors []string       `json:"errors"`
}

// TrainingPolicy returns the declared training consent, or "" when absent
func (m *AIBDPManifest) TrainingPolicy() string {
	if m == nil || m.AIBoundaries == nil || m.AIBoundaries.DefaultConsent == nil {
		return ""
	}
	return m.AIBoundaries.DefaultConsent.Training
}
