package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/pkg/response"
)

type subjectLister interface {
	List() []models.Subject
}

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	service subjectLister
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectLister) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(), nil)
}
