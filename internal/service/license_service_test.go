package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/consent-policy-validator/internal/models"
)

func sha256Hex(content string) string {
	digest := sha256.Sum256([]byte(content))
	return hex.EncodeToString(digest[:])
}

func TestParseLicense_Valid(t *testing.T) {
	ts := NewTestSetup()

	result := ts.Licenses.ParseLicense([]byte(validLicenseMarkdown), "")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Data)
	assert.Equal(t, "v0.3.1", result.Version())
	assert.Equal(t, "Dutch law", result.Data.Jurisdiction.GoverningLaw)
	assert.Equal(t, "deny", result.Data.AGIConsent.DefaultPolicy)
	assert.Equal(t, models.AITypes, result.Data.AGIConsent.AITypes)
	assert.True(t, result.Data.SyntheticLineage.Required)
	assert.Equal(t, "XML", result.Data.SyntheticLineage.Format)

	assert.Equal(t, []string{
		"Palimpsest License v0.3.1",
		"Clause 1 - Definitions",
		"Clause 2 - AGI Consent",
	}, result.Sections.Names())

	text, ok := result.Sections.Get("Clause 1 - Definitions")
	require.True(t, ok)
	assert.Equal(t, "Synthetic outputs must carry lineage.\nThey must name the original work.\n", text)
}

func TestParseLicense_DefaultVersion(t *testing.T) {
	ts := NewTestSetup()

	result := ts.Licenses.ParseLicense([]byte("# Licence\n\nNo version header here.\n"), "")

	assert.True(t, result.Valid)
	assert.Equal(t, "v0.3.0", result.Version())
}

func TestParseLicense_UnsupportedVersion(t *testing.T) {
	ts := NewTestSetup()

	result := ts.Licenses.ParseLicense([]byte("# Palimpsest License v1.0.0\n"), "")

	assert.False(t, result.Valid)
	assert.Equal(t, []string{`licenseVersion: must match pattern "^v0\.3\.\d+$"`}, result.Errors)
	assert.Equal(t, "v1.0.0", result.Version())
}

func TestParseLicense_Signature(t *testing.T) {
	ts := NewTestSetup()

	t.Run("matching hash", func(t *testing.T) {
		result := ts.Licenses.ParseLicense([]byte(validLicenseMarkdown), sha256Hex(validLicenseMarkdown))
		assert.True(t, result.Valid)
	})

	t.Run("matching uppercase hash", func(t *testing.T) {
		hash := strings.ToUpper(sha256Hex(validLicenseMarkdown))
		result := ts.Licenses.ParseLicense([]byte(validLicenseMarkdown), hash)
		assert.True(t, result.Valid)
	})

	t.Run("mismatch keeps data and sections", func(t *testing.T) {
		result := ts.Licenses.ParseLicense([]byte(validLicenseMarkdown), sha256Hex("tampered"))
		assert.False(t, result.Valid)
		assert.Equal(t, []string{"Signature validation failed"}, result.Errors)
		assert.NotNil(t, result.Data)
		assert.Equal(t, 3, result.Sections.Len())
	})
}

func TestParseSections(t *testing.T) {
	ts := NewTestSetup()

	markdown := "Preamble before any heading.\n\n" +
		"# First\n\nAlpha.\n\n- a list item\n\nBeta.\n\n" +
		"Second\n======\n\nGamma.\n\n" +
		"# First\n\nDelta.\n"

	sections := ts.Licenses.ParseSections([]byte(markdown))

	assert.Equal(t, []string{"First", "Second"}, sections.Names())
	first, _ := sections.Get("First")
	assert.Equal(t, "Delta.\n", first, "a repeated heading restarts its section")
	second, _ := sections.Get("Second")
	assert.Equal(t, "Gamma.\n", second)
}

func TestCheckLocalization(t *testing.T) {
	ts := NewTestSetup()

	en := models.NewSections()
	en.Start("Clause 1")
	en.Append("Clause 1", "Same text.")
	en.Start("Clause 2")
	en.Append("Clause 2", "English text.")
	en.Start("Clause 3")
	en.Append("Clause 3", "Only in English.")

	nl := models.NewSections()
	nl.Start("Clause 1")
	nl.Append("Clause 1", "  Same text.  ")
	nl.Start("Clause 2")
	nl.Append("Clause 2", "Nederlandse tekst.")
	nl.Start("Clause 3")

	assert.Equal(t,
		[]string{`Section "Clause 2" differs between English and Dutch`},
		ts.Licenses.CheckLocalization(en, nl))
	assert.Empty(t, ts.Licenses.CheckLocalization(en, en))
}

func TestLicenseFileError(t *testing.T) {
	result := LicenseFileError(assert.AnError)

	assert.False(t, result.Valid)
	assert.Nil(t, result.Data)
	assert.Equal(t, "unknown", result.Version())
	assert.Equal(t, []string{"File error: " + assert.AnError.Error()}, result.Errors)
}
