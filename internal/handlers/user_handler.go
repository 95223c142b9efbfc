package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"b24relay/internal/services"
	"b24relay/pkg/apperrors"
)

type UserHandler struct {
	service *services.DialogService
}

func NewUserHandler(service *services.DialogService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/users", h.ListUsers)
}

// ListUsers - GET /api/users, все наблюдавшиеся пользователи без фильтра
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
