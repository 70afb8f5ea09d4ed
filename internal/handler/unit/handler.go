package unit

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servly/pricing-api/internal/handler"
	unitService "github.com/servly/pricing-api/internal/service/unit"
)

type Handler struct {
	service unitService.UnitServicer
}

func NewHandler(service unitService.UnitServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/valuation-units", h.ListUnits)
}

func (h *Handler) ListUnits(c *gin.Context) {
	units := h.service.ListUnits(c.Request.Context())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(units))
}
