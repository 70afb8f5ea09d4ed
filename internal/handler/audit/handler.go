package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/handler"
	"github.com/servly/pricing-api/internal/model"
	auditService "github.com/servly/pricing-api/internal/service/audit"
	"github.com/servly/pricing-api/pkg/httputil"
)

type Handler struct {
	service auditService.AuditServicer
}

func NewHandler(service auditService.AuditServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	quants := r.Group("/quantifications")
	{
		quants.POST("", h.WriteSnapshot)
		quants.GET("/professionals/:id", h.ListSnapshots)
	}
}

func (h *Handler) WriteSnapshot(c *gin.Context) {
	var snap model.QuantificationSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusUnprocessableEntity, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.WriteSnapshot(c.Request.Context(), &snap); err != nil {
		c.JSON(httputil.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(snap))
}

func (h *Handler) ListSnapshots(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	snaps, err := h.service.ListSnapshots(c.Request.Context(), professionalID, limit)
	if err != nil {
		c.JSON(httputil.StatusFromError(err), handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(snaps))
}
