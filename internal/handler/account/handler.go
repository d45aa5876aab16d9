package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/handler"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/service/account"
)

type Handler struct {
	service *account.Service
}

func NewHandler(service *account.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", h.CreateAccount)
		accounts.GET("", h.ListAccounts)
		accounts.GET("/search", h.SearchAccounts)
		accounts.GET("/doctors", h.ListDoctors)
		accounts.GET("/:id", h.GetAccount)
		accounts.PATCH("/:id", h.UpdateAccount)
		accounts.DELETE("/:id", h.DeleteAccount)
	}
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, licenseKey, err := h.service.CreateAccount(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	// The license key is returned exactly once, at creation time.
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"account":     created,
		"license_key": licenseKey,
	}))
}

func (h *Handler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	acc, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(acc))
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	acc, err := h.service.UpdateAccount(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(acc))
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid account ID"))
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListAccounts(c *gin.Context) {
	medCenterID, err := uuid.Parse(c.Query("med_center_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	accounts, err := h.service.ListAccounts(c.Request.Context(), medCenterID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(accounts))
}

func (h *Handler) SearchAccounts(c *gin.Context) {
	medCenterID, err := uuid.Parse(c.Query("med_center_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	accounts, err := h.service.SearchAccounts(c.Request.Context(), medCenterID, c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(accounts))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	medCenterID, err := uuid.Parse(c.Query("med_center_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid med center ID"))
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), medCenterID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}
