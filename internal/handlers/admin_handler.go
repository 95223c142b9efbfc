package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"b24relay/internal/logger"
	"b24relay/internal/services"
)

// AdminHandler - служебные ручки инстанса: мягкое включение/выключение
// бота, уровень логирования, принудительная синхронизация участников.
type AdminHandler struct {
	webhook  *services.WebhookService
	state    *services.BotState
	instance string
	botCode  string
}

func NewAdminHandler(webhook *services.WebhookService, state *services.BotState, instance, botCode string) *AdminHandler {
	return &AdminHandler{webhook: webhook, state: state, instance: instance, botCode: botCode}
}

func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/enable", h.Enable)
	admin.POST("/disable", h.Disable)
	admin.GET("/status", h.Status)
	admin.POST("/loglevel", h.SetLogLevel)
	admin.POST("/dialogs/:chat_id/sync", h.SyncParticipants)
}

func (h *AdminHandler) Enable(c *gin.Context) {
	if err := h.state.Enable(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "enabled": true})
}

func (h *AdminHandler) Disable(c *gin.Context) {
	if err := h.state.Disable(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "enabled": false})
}

func (h *AdminHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"enabled":  h.state.Enabled(),
		"instance": h.instance,
		"bot_code": h.botCode,
	})
}

// SetLogLevel меняет уровень логирования без рестарта
func (h *AdminHandler) SetLogLevel(c *gin.Context) {
	level := c.Query("level")
	if level == "" {
		var body struct {
			Level string `json:"level"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			level = body.Level
		}
	}

	if err := logger.SetLevel(level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "bad level"})
		return
	}
	logger.Info("log level changed by admin", "level", strings.ToUpper(level))
	c.JSON(http.StatusOK, gin.H{"ok": true, "level": strings.ToUpper(level)})
}

// SyncParticipants дозаписывает состав чата из портала
func (h *AdminHandler) SyncParticipants(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "chat_id must be an integer"})
		return
	}

	synced, err := h.webhook.SyncParticipants(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "synced": synced})
}
