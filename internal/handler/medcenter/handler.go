package medcenter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/handler"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/service/medcenter"
)

type Handler struct {
	service *medcenter.Service
}

func NewHandler(service *medcenter.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	centers := r.Group("/med-centers")
	{
		centers.POST("", h.CreateCenter)
		centers.GET("", h.ListCenters)
		centers.GET("/:id", h.GetCenter)
	}
}

func (h *Handler) CreateCenter(c *gin.Context) {
	var req model.CreateMedCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	center, err := h.service.CreateCenter(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(center))
}

func (h *Handler) GetCenter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	center, err := h.service.GetCenter(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(center))
}

func (h *Handler) ListCenters(c *gin.Context) {
	centers, err := h.service.ListCenters(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(centers))
}
