package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"b24relay/internal/services"
	"b24relay/pkg/apperrors"
)

type DialogHandler struct {
	service *services.DialogService
}

func NewDialogHandler(service *services.DialogService) *DialogHandler {
	return &DialogHandler{service: service}
}

func (h *DialogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/dialogs", h.ListDialogs)
	api.GET("/dialogs/:chat_id", h.GetDialogDetail)
}

// ListDialogs - GET /api/dialogs?date=&tz_offset=&start_time=&end_time=
func (h *DialogHandler) ListDialogs(c *gin.Context) {
	var q services.TimeRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err.Error()))
		return
	}

	dialogs, err := h.service.ListDialogs(q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dialogs)
}

// GetDialogDetail - GET /api/dialogs/:chat_id, окно применяется к сообщениям
func (h *DialogHandler) GetDialogDetail(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError("chat_id must be an integer"))
		return
	}

	var q services.TimeRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err.Error()))
		return
	}

	detail, err := h.service.DialogDetail(chatID, q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
