package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wso2/consent-policy-validator/internal/middleware"
	"github.com/wso2/consent-policy-validator/internal/models"
	"github.com/wso2/consent-policy-validator/internal/service"
	tagformats "github.com/wso2/consent-policy-validator/internal/tag_format_handlers"
	"github.com/wso2/consent-policy-validator/internal/utils"
	pkgutils "github.com/wso2/consent-policy-validator/pkg/utils"
)

// ValidationHandler handles document validation HTTP requests
type ValidationHandler struct {
	validationService *service.ValidationService
	reportService     *service.ReportService
	maxBodyBytes      int64
}

// NewValidationHandler creates a new ValidationHandler
func NewValidationHandler(
	validationService *service.ValidationService,
	reportService *service.ReportService,
	maxBodyBytes int64,
) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
		reportService:     reportService,
		maxBodyBytes:      maxBodyBytes,
	}
}

// ValidateSchema handles POST /api/v1/schemas/{version}/validate
// Every version is accepted; the response body is the validator output verbatim.
func (h *ValidationHandler) ValidateSchema(c *gin.Context) {
	version := c.Param("version")

	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, validationID := h.validationService.ValidateSchema(c.Request.Context(), utils.GetOrgIDFromContext(c), version, body)
	setValidationID(c, validationID)
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(result.JSON()))
}

// ValidateManifest handles POST /api/v1/manifests/validate
func (h *ValidationHandler) ValidateManifest(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, validationID := h.validationService.ValidateManifest(c.Request.Context(), utils.GetOrgIDFromContext(c), body)
	setValidationID(c, validationID)
	utils.SendOKResponse(c, result)
}

// ValidateLineageTag handles POST /api/v1/lineage-tags/validate?format=XML|JSON
func (h *ValidationHandler) ValidateLineageTag(c *gin.Context) {
	format := c.DefaultQuery("format", models.LineageFormatXML)

	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, validationID, err := h.validationService.ValidateLineageTag(c.Request.Context(), utils.GetOrgIDFromContext(c), body, format)
	if err != nil {
		sendUnsupportedTagFormat(c, err)
		return
	}

	setValidationID(c, validationID)
	utils.SendOKResponse(c, result)
}

// ParseLicense handles POST /api/v1/licenses/parse?signature=<sha256 hex>
func (h *ValidationHandler) ParseLicense(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	result, validationID := h.validationService.ParseLicense(c.Request.Context(), utils.GetOrgIDFromContext(c), body, c.Query("signature"))
	setValidationID(c, validationID)
	utils.SendOKResponse(c, result)
}

// GenerateReport handles POST /api/v1/compliance/report?format=json|text
// Audit IDs of the licence, manifest and lineage tag are returned comma separated
// in X-Validation-ID.
func (h *ValidationHandler) GenerateReport(c *gin.Context) {
	format := c.DefaultQuery("format", service.ReportFormatJSON)
	if format != service.ReportFormatJSON && format != service.ReportFormatText {
		utils.SendBadRequestError(c, "Invalid report format", "format must be json or text")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var request models.ReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		if isBodyTooLarge(err) {
			utils.SendCodedError(c, models.ErrCodePayloadTooLarge, "Request body too large", err.Error())
			return
		}
		utils.SendBadRequestError(c, "Invalid request payload", err.Error())
		return
	}

	sources := service.ReportSources{
		License:    []byte(request.License),
		Manifest:   request.Manifest,
		LineageTag: []byte(request.LineageTag),
		TagFormat:  request.TagFormat,
		Signature:  request.Signature,
	}
	if request.LicenseNL != "" {
		sources.LicenseNL = []byte(request.LicenseNL)
	}

	report, err := h.reportService.GenerateReport(c.Request.Context(), sources)
	if err != nil {
		sendUnsupportedTagFormat(c, err)
		return
	}

	ids := h.validationService.RecordReport(c.Request.Context(), utils.GetOrgIDFromContext(c), report, request.TagFormat)
	setValidationID(c, strings.Join(ids, ","))

	if format == service.ReportFormatText {
		c.String(http.StatusOK, service.RenderText(report))
		return
	}
	utils.SendOKResponse(c, report)
}

// GetValidation handles GET /api/v1/validations/{validationId}
func (h *ValidationHandler) GetValidation(c *gin.Context) {
	validationID := c.Param("validationId")
	orgID := utils.GetOrgIDFromContext(c)

	response, err := h.validationService.GetValidation(c.Request.Context(), orgID, validationID)
	if err != nil {
		h.sendAuditError(c, err)
		return
	}

	utils.SendOKResponse(c, response)
}

// ListValidations handles GET /api/v1/validations?limit=&offset=
func (h *ValidationHandler) ListValidations(c *gin.Context) {
	params, err := utils.ParsePaginationParams(c)
	if err != nil {
		utils.SendBadRequestError(c, "Invalid pagination parameters", err.Error())
		return
	}

	response, err := h.validationService.ListValidations(c.Request.Context(), utils.GetOrgIDFromContext(c), params.Limit, params.Offset)
	if err != nil {
		h.sendAuditError(c, err)
		return
	}

	utils.SendOKResponse(c, response)
}

func (h *ValidationHandler) sendAuditError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuditDisabled):
		utils.SendCodedError(c, models.ErrCodeAuditDisabled, "Validation audit is disabled", "")
	case errors.Is(err, service.ErrValidationNotFound):
		utils.SendCodedError(c, models.ErrCodeValidationNotFound, "Validation not found", "")
	case errors.Is(err, pkgutils.ErrInvalidInput):
		utils.SendBadRequestError(c, "Invalid request", err.Error())
	default:
		utils.SendCodedError(c, models.ErrCodeDatabaseError, "Failed to retrieve validations", err.Error())
	}
}

// readBody reads the raw request body, bounded by maxBodyBytes
func (h *ValidationHandler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		if isBodyTooLarge(err) {
			utils.SendCodedError(c, models.ErrCodePayloadTooLarge, "Request body too large", err.Error())
			return nil, false
		}
		utils.SendBadRequestError(c, "Failed to read request body", err.Error())
		return nil, false
	}
	return body, true
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func sendUnsupportedTagFormat(c *gin.Context, err error) {
	details := fmt.Sprintf("%s (supported: %s)", err.Error(), strings.Join(tagformats.GetAllHandlerFormats(), ", "))
	utils.SendCodedError(c, models.ErrCodeUnsupportedTagFormat, "Unsupported tag format", details)
}

func setValidationID(c *gin.Context, validationID string) {
	if validationID != "" {
		c.Header(middleware.ValidationIDHeader, validationID)
	}
}
