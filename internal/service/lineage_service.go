package service

import (
	"github.com/sirupsen/logrus"

	"github.com/wso2/consent-policy-validator/internal/models"
	handlers "github.com/wso2/consent-policy-validator/internal/tag_format_handlers"
)

// LineageService validates synthetic lineage tags
type LineageService struct {
	logger *logrus.Logger
}

// NewLineageService creates a new LineageService
func NewLineageService(logger *logrus.Logger) *LineageService {
	return &LineageService{logger: logger}
}

// ValidateLineageTag parses a tag in the given format and checks that it names
// its original work. An error is returned only for an unsupported format.
func (s *LineageService) ValidateLineageTag(content []byte, format string) (*models.LineageTagResult, error) {
	handler, err := handlers.GetHandler(format)
	if err != nil {
		return nil, err
	}

	result := &models.LineageTagResult{Format: handler.GetFormat()}

	tag, err := handler.Parse(content)
	if err != nil {
		s.logger.WithError(err).WithField("format", result.Format).Debug("Failed to parse lineage tag")
		result.Errors = []string{models.LineageParseErrorPrefix + err.Error()}
		return result, nil
	}

	result.Data = tag
	if !tag.HasOriginalWork() {
		result.Errors = []string{models.LineageMissingFieldsError}
		return result, nil
	}

	result.Valid = true
	result.Errors = []string{}
	return result, nil
}
