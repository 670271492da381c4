package models

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Defaults for licence metadata extracted from a Palimpsest licence text
const (
	DefaultLicenseVersion  = "v0.3.0"
	GoverningLawDutch      = "Dutch law"
	EnforcementScottish    = "Scottish courts (per Hague Convention 2005)"
	LineageFormatXML       = "XML"
	LineageFormatJSON      = "JSON"
	SignatureMismatchError = "Signature validation failed"
	LicenseFileErrorPrefix = "File error: "
)

// AITypes lists every AI category covered by AGI consent
var AITypes = []string{"AGI", "Autonomous", "Agentic", "Ambient", "NI", "QAI"}

// PalimpsestLicense is the structured metadata of a licence text
type PalimpsestLicense struct {
	LicenseVersion   string           `json:"licenseVersion" validate:"required,licenseversion"`
	Jurisdiction     Jurisdiction     `json:"jurisdiction"`
	AGIConsent       AGIConsent       `json:"agiConsent"`
	SyntheticLineage SyntheticLineage `json:"syntheticLineage"`
	Sections         *Sections        `json:"sections"`
}

// Jurisdiction holds governing law and enforcement venue
type Jurisdiction struct {
	GoverningLaw string `json:"governingLaw" validate:"required,eq=Dutch law"`
	Enforcement  string `json:"enforcement" validate:"required,eq=Scottish courts (per Hague Convention 2005)"`
}

// AGIConsent holds the default policy for the listed AI types
type AGIConsent struct {
	DefaultPolicy string   `json:"defaultPolicy" validate:"required,oneof=deny allow"`
	AITypes       []string `json:"aiTypes" validate:"required,dive,oneof=AGI Autonomous Agentic Ambient NI QAI"`
}

// SyntheticLineage describes lineage tagging requirements
type SyntheticLineage struct {
	Required bool   `json:"required"`
	Format   string `json:"format" validate:"required,oneof=XML JSON"`
}

// LicenseResult is the outcome of parsing and validating a licence text
type LicenseResult struct {
	Valid    bool               `json:"valid"`
	Data     *PalimpsestLicense `json:"data,omitempty"`
	Errors   []string           `json:"errors"`
	Sections *Sections          `json:"sections"`
}

// Version returns the licence version, or "unknown" when no data was parsed
func (r *LicenseResult) Version() string {
	if r == nil || r.Data == nil || r.Data.LicenseVersion == "" {
		return "unknown"
	}
	return r.Data.LicenseVersion
}

// Sections maps markdown headings to their paragraph text, in document order
type Sections struct {
	order []string
	text  map[string]string
}

// NewSections creates an empty section map
func NewSections() *Sections {
	return &Sections{text: make(map[string]string)}
}

// Start begins (or restarts) a section. A repeated heading keeps its first position.
func (s *Sections) Start(name string) {
	if _, exists := s.text[name]; !exists {
		s.order = append(s.order, name)
	}
	s.text[name] = ""
}

// Append adds a line of text to a section
func (s *Sections) Append(name, line string) {
	s.text[name] += line + "\n"
}

// Get returns the text of a section
func (s *Sections) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	text, ok := s.text[name]
	return text, ok
}

// Names returns the section names in document order
func (s *Sections) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of sections
func (s *Sections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// MarshalJSON encodes the sections as an object, preserving document order
func (s *Sections) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.text[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
