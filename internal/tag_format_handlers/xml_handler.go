package tag_format_handlers

import (
	"encoding/xml"
	"strings"

	"github.com/wso2/consent-policy-validator/internal/models"
)

const xmlRootElement = "synthetic_lineage"

// XMLTagFormatHandler handles lineage tags written as XML, e.g.
// <synthetic_lineage><original_work title="..." creator="..."/></synthetic_lineage>
type XMLTagFormatHandler struct{}

type xmlLineageTag struct {
	XMLName      xml.Name
	OriginalWork *xmlOriginalWork `xml:"original_work"`
}

type xmlOriginalWork struct {
	Title   string     `xml:"title,attr"`
	Creator string     `xml:"creator,attr"`
	License string     `xml:"license,attr"`
	Other   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// empty reports whether the element carries no attributes and no content
func (w *xmlOriginalWork) empty() bool {
	return w.Title == "" && w.Creator == "" && w.License == "" &&
		len(w.Other) == 0 && strings.TrimSpace(w.Inner) == ""
}

// GetFormat returns the format identifier
func (h *XMLTagFormatHandler) GetFormat() string {
	return models.LineageFormatXML
}

// Parse decodes an XML lineage tag
func (h *XMLTagFormatHandler) Parse(content []byte) (*models.LineageTag, error) {
	var doc xmlLineageTag
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	tag := &models.LineageTag{}
	if doc.XMLName.Local != xmlRootElement {
		return tag, nil
	}

	tag.SyntheticLineage = &models.SyntheticLineageTag{}
	if doc.OriginalWork != nil && !doc.OriginalWork.empty() {
		tag.SyntheticLineage.OriginalWork = &models.OriginalWork{
			Title:   doc.OriginalWork.Title,
			Creator: doc.OriginalWork.Creator,
			License: doc.OriginalWork.License,
		}
	}

	return tag, nil
}
