package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wso2/consent-policy-validator/internal/models"
)

var licenseVersionHeader = regexp.MustCompile(`Palimpsest License v(\d+\.\d+\.\d+)`)

// LicenseService parses and validates Palimpsest licence texts
type LicenseService struct {
	markdown goldmark.Markdown
	logger   *logrus.Logger
}

// NewLicenseService creates a new LicenseService
func NewLicenseService(logger *logrus.Logger) *LicenseService {
	return &LicenseService{
		markdown: goldmark.New(),
		logger:   logger,
	}
}

// ParseLicense extracts sections and metadata from a markdown licence text,
// verifies its SHA-256 digest when trustedHash is set, and validates the metadata
func (s *LicenseService) ParseLicense(content []byte, trustedHash string) *models.LicenseResult {
	sections := s.ParseSections(content)
	license := ExtractLicenseMetadata(content, sections)

	if !VerifySignature(content, trustedHash) {
		s.logger.WithField("version", license.LicenseVersion).Warn("Licence signature mismatch")
		return &models.LicenseResult{
			Valid:    false,
			Data:     license,
			Errors:   []string{models.SignatureMismatchError},
			Sections: sections,
		}
	}

	errs := schemaErrors(license)
	if errs == nil {
		errs = []string{}
	}

	return &models.LicenseResult{
		Valid:    len(errs) == 0,
		Data:     license,
		Errors:   errs,
		Sections: sections,
	}
}

// ParseSections splits a markdown document into sections. Each top-level
// heading starts a section and each following top-level paragraph is
// appended to it as a line.
func (s *LicenseService) ParseSections(content []byte) *models.Sections {
	sections := models.NewSections()
	doc := s.markdown.Parser().Parse(text.NewReader(content))

	current := ""
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case ast.KindHeading:
			current = blockText(n, content)
			if current != "" {
				sections.Start(current)
			}
		case ast.KindParagraph:
			if current != "" {
				sections.Append(current, blockText(n, content))
			}
		}
	}

	return sections
}

// blockText returns the raw source text of a block node
func blockText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

// ExtractLicenseMetadata builds the structured licence metadata. Only the
// version is read from the text; the remaining terms are fixed by the licence.
func ExtractLicenseMetadata(content []byte, sections *models.Sections) *models.PalimpsestLicense {
	version := models.DefaultLicenseVersion
	if match := licenseVersionHeader.FindSubmatch(content); match != nil {
		version = "v" + string(match[1])
	}

	aiTypes := make([]string, len(models.AITypes))
	copy(aiTypes, models.AITypes)

	return &models.PalimpsestLicense{
		LicenseVersion: version,
		Jurisdiction: models.Jurisdiction{
			GoverningLaw: models.GoverningLawDutch,
			Enforcement:  models.EnforcementScottish,
		},
		AGIConsent: models.AGIConsent{
			DefaultPolicy: models.PolicyDeny,
			AITypes:       aiTypes,
		},
		SyntheticLineage: models.SyntheticLineage{
			Required: true,
			Format:   models.LineageFormatXML,
		},
		Sections: sections,
	}
}

// VerifySignature reports whether content hashes to trustedHash (hex SHA-256).
// An empty trustedHash skips the check.
func VerifySignature(content []byte, trustedHash string) bool {
	trustedHash = strings.TrimSpace(trustedHash)
	if trustedHash == "" {
		return true
	}
	digest := sha256.Sum256(content)
	return strings.EqualFold(hex.EncodeToString(digest[:]), trustedHash)
}

// CheckLocalization compares the sections present in both translations and
// reports every section whose trimmed text differs
func (s *LicenseService) CheckLocalization(en, nl *models.Sections) []string {
	mismatches := []string{}
	for _, name := range en.Names() {
		nlText, ok := nl.Get(name)
		if !ok || nlText == "" {
			continue
		}
		enText, _ := en.Get(name)
		if strings.TrimSpace(enText) != strings.TrimSpace(nlText) {
			mismatches = append(mismatches, fmt.Sprintf("Section \"%s\" differs between English and Dutch", name))
		}
	}
	return mismatches
}

// LicenseFileError is the result for a licence file that could not be read
func LicenseFileError(err error) *models.LicenseResult {
	return &models.LicenseResult{
		Valid:    false,
		Errors:   []string{models.LicenseFileErrorPrefix + err.Error()},
		Sections: models.NewSections(),
	}
}
