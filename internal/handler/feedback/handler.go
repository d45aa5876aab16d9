package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/handler"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/service/feedback"
)

type Handler struct {
	service *feedback.Service
}

func NewHandler(service *feedback.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	feedbacks := r.Group("/feedbacks")
	{
		feedbacks.POST("", h.CreateFeedback)
		feedbacks.GET("", h.ListFeedbacks)
	}
}

// RegisterModerationRoutes mounts the approve/reject endpoints; the
// router gates them behind the staff role.
func (h *Handler) RegisterModerationRoutes(r *gin.RouterGroup) {
	feedbacks := r.Group("/feedbacks")
	{
		feedbacks.POST("/:id/approve", h.ApproveFeedback)
		feedbacks.POST("/:id/reject", h.RejectFeedback)
	}
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fb, err := h.service.CreateFeedback(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(fb))
}

func (h *Handler) ListFeedbacks(c *gin.Context) {
	feedbacks, err := h.service.ListFeedbacks(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(feedbacks))
}

func (h *Handler) ApproveFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid feedback ID"))
		return
	}

	if err := h.service.ApproveFeedback(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RejectFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid feedback ID"))
		return
	}

	var req model.RejectFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.RejectFeedback(c.Request.Context(), id, req.Reason); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
