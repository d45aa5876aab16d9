package inpatient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/handler"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/service/inpatient"
)

type Handler struct {
	service *inpatient.Service
}

func NewHandler(service *inpatient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	cares := r.Group("/inpatient-cares")
	{
		cares.POST("", h.CreateCare)
		cares.GET("", h.ListCares)
		cares.POST("/:id/discharge", h.DischargeCare)
	}
}

func (h *Handler) CreateCare(c *gin.Context) {
	medCenterID, err := uuid.Parse(c.Query("med_center_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	var req model.CreateInpatientCareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	care, err := h.service.CreateCare(c.Request.Context(), medCenterID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(care))
}

func (h *Handler) ListCares(c *gin.Context) {
	medCenterID, err := uuid.Parse(c.Query("med_center_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	active := true
	if v := c.Query("active"); v != "" {
		active, err = strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid active flag"))
			return
		}
	}

	cares, err := h.service.ListCares(c.Request.Context(), medCenterID, active)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cares))
}

func (h *Handler) DischargeCare(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid care ID"))
		return
	}

	if err := h.service.SetActive(c.Request.Context(), id, false); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
