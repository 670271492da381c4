package models

// Error strings reported for lineage tags
const (
	LineageMissingFieldsError = "Missing required fields (original_work)"
	LineageParseErrorPrefix   = "Tag parse error: "
)

// LineageTag is a synthetic lineage tag naming the original work
type LineageTag struct {
	SyntheticLineage *SyntheticLineageTag `json:"synthetic_lineage,omitempty"`
}

// SyntheticLineageTag is the body of a lineage tag
type SyntheticLineageTag struct {
	OriginalWork *OriginalWork `json:"original_work,omitempty"`
}

// OriginalWork identifies the work a synthetic output derives from
type OriginalWork struct {
	Title   string `json:"title,omitempty"`
	Creator string `json:"creator,omitempty"`
	License string `json:"license,omitempty"`
}

// HasOriginalWork reports whether the tag names its original work
func (t *LineageTag) HasOriginalWork() bool {
	return t != nil && t.SyntheticLineage != nil && t.SyntheticLineage.OriginalWork != nil
}

// LineageTagResult is the outcome of validating a lineage tag
type LineageTagResult struct {
	Valid  bool        `json:"valid"`
	Format string      `json:"format"`
	Data   *LineageTag `json:"data,omitempty"`
	Errors []string    `json:"errors"`
}
