package tag_format_handlers

import "github.com/wso2/consent-policy-validator/internal/models"

// TagFormatHandler parses synthetic lineage tags of one serialization format
type TagFormatHandler interface {
	// GetFormat returns the format identifier, e.g. "XML"
	GetFormat() string

	// Parse decodes a lineage tag. A nil error with a tag lacking its
	// original work means the document parsed but is incomplete.
	Parse(content []byte) (*models.LineageTag, error)
}
