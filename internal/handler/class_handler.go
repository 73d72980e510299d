package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-marketplace-api/internal/middleware"
	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/internal/service"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
	"github.com/noah-isme/tutor-marketplace-api/pkg/response"
)

type classService interface {
	Search(ctx context.Context, req service.SearchClassesRequest) ([]models.ClassSearchResult, error)
	Register(ctx context.Context, req service.RegisterClassRequest) (*models.Class, error)
}

type classExporter interface {
	ExportClasses(ctx context.Context, req service.SearchClassesRequest, format string) (*service.ExportFile, error)
}

// ClassHandler serves availability search, registration and export.
type ClassHandler struct {
	classes classService
	exports classExporter
}

// NewClassHandler constructs a ClassHandler. A nil exporter disables the export route.
func NewClassHandler(classes classService, exports classExporter) *ClassHandler {
	return &ClassHandler{classes: classes, exports: exports}
}

func searchRequest(c *gin.Context) service.SearchClassesRequest {
	return service.SearchClassesRequest{
		Subject: c.Query("subject"),
		WeekDay: c.Query("week_day"),
		Time:    c.Query("time"),
	}
}

// Search godoc
// @Summary Search available classes
// @Description Returns every class of the subject with a slot covering the weekday and time.
// @Tags Classes
// @Produce json
// @Param subject query string true "Subject"
// @Param week_day query int true "Weekday, 0 = Sunday"
// @Param time query string true "Time of day (HH:MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) Search(c *gin.Context) {
	results, err := h.classes.Search(c.Request.Context(), searchRequest(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "count", len(results))
	response.JSON(c, http.StatusOK, results, middleware.ExtractMeta(c))
}

// Register godoc
// @Summary Register a class
// @Description Creates the tutor, the class and its weekly schedule atomically.
// @Tags Classes
// @Accept json
// @Param payload body service.RegisterClassRequest true "Class payload"
// @Success 201
// @Failure 400 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Register(c *gin.Context) {
	var req service.RegisterClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if _, err := h.classes.Register(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedEmpty(c)
}

// Export godoc
// @Summary Export search results
// @Tags Classes
// @Produce text/csv
// @Produce application/pdf
// @Param subject query string true "Subject"
// @Param week_day query int true "Weekday, 0 = Sunday"
// @Param time query string true "Time of day (HH:MM)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /classes/export [get]
func (h *ClassHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrFeatureDisabled)
		return
	}
	file, err := h.exports.ExportClasses(c.Request.Context(), searchRequest(c), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
