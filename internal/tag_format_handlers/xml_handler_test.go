package tag_format_handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLTagFormatHandler_Parse(t *testing.T) {
	handler := &XMLTagFormatHandler{}

	tests := []struct {
		name         string
		content      string
		wantErr      bool
		wantOriginal bool
		wantTitle    string
	}{
		{
			name:         "attributes",
			content:      `<synthetic_lineage><original_work title="Ode" creator="Ada"/></synthetic_lineage>`,
			wantOriginal: true,
			wantTitle:    "Ode",
		},
		{
			name:         "unknown attribute only",
			content:      `<synthetic_lineage><original_work id="42"/></synthetic_lineage>`,
			wantOriginal: true,
		},
		{
			name:         "text content",
			content:      `<synthetic_lineage><original_work>Ode to Joy</original_work></synthetic_lineage>`,
			wantOriginal: true,
		},
		{
			name:    "empty original work",
			content: `<synthetic_lineage><original_work>  </original_work></synthetic_lineage>`,
		},
		{
			name:    "missing original work",
			content: `<synthetic_lineage><derived/></synthetic_lineage>`,
		},
		{
			name:    "wrong root element",
			content: `<lineage><original_work title="Ode"/></lineage>`,
		},
		{
			name:    "malformed",
			content: `<synthetic_lineage><original_work>`,
			wantErr: true,
		},
		{
			name:    "empty document",
			content: ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := handler.Parse([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, tag)
			assert.Equal(t, tt.wantOriginal, tag.HasOriginalWork())
			if tt.wantTitle != "" {
				assert.Equal(t, tt.wantTitle, tag.SyntheticLineage.OriginalWork.Title)
			}
		})
	}
}
