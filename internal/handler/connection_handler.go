package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-marketplace-api/internal/models"
	"github.com/noah-isme/tutor-marketplace-api/internal/service"
	appErrors "github.com/noah-isme/tutor-marketplace-api/pkg/errors"
	"github.com/noah-isme/tutor-marketplace-api/pkg/response"
)

type connectionService interface {
	Create(ctx context.Context, req service.CreateConnectionRequest) (*models.Connection, error)
	Total(ctx context.Context) (*models.ConnectionTotal, error)
}

// ConnectionHandler exposes the connection counter.
type ConnectionHandler struct {
	service connectionService
}

// NewConnectionHandler constructs a ConnectionHandler.
func NewConnectionHandler(svc connectionService) *ConnectionHandler {
	return &ConnectionHandler{service: svc}
}

// Total godoc
// @Summary Count connections
// @Tags Connections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /connections [get]
func (h *ConnectionHandler) Total(c *gin.Context) {
	total, err := h.service.Total(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, total, nil)
}

// Create godoc
// @Summary Record a connection with a tutor
// @Tags Connections
// @Accept json
// @Param payload body service.CreateConnectionRequest true "Connection payload"
// @Success 201
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /connections [post]
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req service.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if _, err := h.service.Create(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedEmpty(c)
}
