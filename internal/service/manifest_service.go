package service

import (
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/pkg/validator"
)

// ManifestService validates AIBDP manifests
type ManifestService struct {
	logger *logrus.Logger
}

// NewManifestService creates a new ManifestService
func NewManifestService(logger *logrus.Logger) *ManifestService {
	return &ManifestService{logger: logger}
}

// ValidateManifest checks a manifest against the basic AIBDP schema and,
// when that passes, against the v1.1 advanced schema
func (s *ManifestService) ValidateManifest(data []byte) *models.ManifestResult {
	var document interface{}
	if err := validator.Decode(data, &document); err != nil {
		s.logger.WithError(err).Debug("Failed to decode manifest")
		return ManifestError(err)
	}

	manifest, typeErrs := decodeManifest(document)
	if len(typeErrs) > 0 {
		s.logger.WithField("errors", typeErrs).Debug("Manifest has fields of the wrong type")
		return &models.ManifestResult{Valid: false, Data: manifest, Errors: typeErrs}
	}

	if errs := schemaErrors(manifest); len(errs) > 0 {
		s.logger.WithField("errors", errs).Debug("Manifest failed basic schema")
		return &models.ManifestResult{Valid: false, Data: manifest, Errors: errs}
	}

	advanced := validator.Validate(data, validator.SchemaVersionV11)
	if !advanced.Valid {
		s.logger.WithField("errors", advanced.Errors).Debug("Manifest failed advanced schema")
		return &models.ManifestResult{Valid: false, Data: manifest, Errors: advanced.Errors}
	}

	return &models.ManifestResult{Valid: true, Data: manifest, Errors: []string{}}
}

// ManifestError is the result for a manifest that could not be read or decoded
func ManifestError(err error) *models.ManifestResult {
	return &models.ManifestResult{
		Valid:  false,
		Errors: []string{models.ManifestErrorPrefix + err.Error()},
	}
}

// decodeManifest maps a decoded JSON document onto the manifest model.
// Keys match exactly; values of the wrong JSON type are reported and left unset.
func decodeManifest(document interface{}) (*models.AIBDPManifest, []string) {
	r := &manifestReader{}
	manifest := &models.AIBDPManifest{}

	root, ok := r.object(document, "")
	if !ok {
		return manifest, r.errs
	}

	manifest.ManifestVersion = r.str(root, "", "manifest_version")
	manifest.PalimpsestLicense = r.str(root, "", "palimpsest_license")
	if _, present := root["signature"]; present {
		signature := r.str(root, "", "signature")
		manifest.Signature = &signature
	}

	raw, present := root["ai_boundaries"]
	if !present {
		return manifest, r.errs
	}
	boundaries, ok := r.object(raw, "ai_boundaries")
	if !ok {
		return manifest, r.errs
	}
	manifest.AIBoundaries = &models.AIBoundaries{}

	raw, present = boundaries["default_consent"]
	if !present {
		return manifest, r.errs
	}
	const consentPath = "ai_boundaries.default_consent"
	consent, ok := r.object(raw, consentPath)
	if !ok {
		return manifest, r.errs
	}
	manifest.AIBoundaries.DefaultConsent = &models.AIBoundariesDefaultConsent{
		Training:   r.str(consent, consentPath, "training"),
		Generation: r.str(consent, consentPath, "generation"),
		Agentic:    r.str(consent, consentPath, "agentic"),
		QAI:        consent["qai"],
	}

	return manifest, r.errs
}

// manifestReader collects JSON type errors while reading a manifest
type manifestReader struct {
	errs []string
}

func (r *manifestReader) object(value interface{}, path string) (map[string]interface{}, bool) {
	object, ok := value.(map[string]interface{})
	if !ok {
		r.errs = append(r.errs, withPath(path, "must be object"))
	}
	return object, ok
}

// str returns object[key] when it is a string. Absent keys yield "" and are left
// to the required rules of the basic schema.
func (r *manifestReader) str(object map[string]interface{}, parent, key string) string {
	value, present := object[key]
	if !present {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		r.errs = append(r.errs, withPath(joinPath(parent, key), "must be string"))
	}
	return s
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
