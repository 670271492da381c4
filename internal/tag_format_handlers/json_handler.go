package tag_format_handlers

import (
	"errors"

	"github.com/tidwall/gjson"

	"github.com/wso2/consent-policy-validator/internal/models"
)

// JSONTagFormatHandler handles lineage tags written as JSON, e.g.
// {"synthetic_lineage":{"original_work":{"$":{"title":"..."}}}}
type JSONTagFormatHandler struct{}

// GetFormat returns the format identifier
func (h *JSONTagFormatHandler) GetFormat() string {
	return models.LineageFormatJSON
}

// Parse decodes a JSON lineage tag
func (h *JSONTagFormatHandler) Parse(content []byte) (*models.LineageTag, error) {
	if !gjson.ValidBytes(content) {
		return nil, errors.New("invalid JSON document")
	}

	tag := &models.LineageTag{}
	lineage := gjson.GetBytes(content, "synthetic_lineage")
	if !truthy(lineage) {
		return tag, nil
	}

	tag.SyntheticLineage = &models.SyntheticLineageTag{}
	work := lineage.Get("original_work")
	if !truthy(work) {
		return tag, nil
	}

	tag.SyntheticLineage.OriginalWork = originalWork(work)
	return tag, nil
}

// originalWork reads work attributes from the "$" attribute object when
// present, otherwise from the element itself
func originalWork(work gjson.Result) *models.OriginalWork {
	if work.Type == gjson.String {
		return &models.OriginalWork{Title: work.Str}
	}

	attrs := work
	if a := work.Get(`\$`); a.IsObject() {
		attrs = a
	}

	return &models.OriginalWork{
		Title:   attrs.Get("title").String(),
		Creator: attrs.Get("creator").String(),
		License: attrs.Get("license").String(),
	}
}

// truthy follows JavaScript truthiness: objects and arrays are always true
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}
