package binding

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthdesk/clinic-api/internal/handler"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/service/binding"
)

type Handler struct {
	service *binding.Service
}

func NewHandler(service *binding.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bindings := r.Group("/bindings")
	{
		bindings.POST("/code", h.RequestCode)
		bindings.POST("/confirm", h.ConfirmBinding)
		bindings.POST("/unlink", h.UnlinkBinding)
	}
}

func (h *Handler) RequestCode(c *gin.Context) {
	var req model.RequestBindingCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	code, err := h.service.RequestCode(c.Request.Context(), req.AccountID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"code": code}))
}

func (h *Handler) ConfirmBinding(c *gin.Context) {
	var req model.ConfirmBindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	resp, err := h.service.Confirm(c.Request.Context(), req.Code, req.ChatID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(resp))
}

func (h *Handler) UnlinkBinding(c *gin.Context) {
	var req model.UnlinkBindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.Unlink(c.Request.Context(), req.AccountID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
