package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/handler"
	"github.com/servly/pricing-api/internal/model"
	pricingService "github.com/servly/pricing-api/internal/service/pricing"
	"github.com/servly/pricing-api/pkg/httputil"
)

type Handler struct {
	service pricingService.PricingServicer
}

func NewHandler(service pricingService.PricingServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals/:id/pricing", h.ListPricing)
	pricing := r.Group("/pricing")
	{
		pricing.GET("/:id", h.GetPricing)
		pricing.PUT("/:id", h.UpdatePricing)
	}
}

func (h *Handler) ListPricing(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	records, err := h.service.ListPricing(c.Request.Context(), professionalID)
	if err != nil {
		c.JSON(httputil.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

func (h *Handler) GetPricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid pricing record ID"))
		return
	}

	record, err := h.service.GetPricing(c.Request.Context(), id)
	if err != nil {
		c.JSON(httputil.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}

func (h *Handler) UpdatePricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid pricing record ID"))
		return
	}

	var update model.PricingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.UpdatePricing(c.Request.Context(), id, &update)
	if err != nil {
		c.JSON(httputil.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}
