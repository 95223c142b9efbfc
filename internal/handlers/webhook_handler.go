package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"b24relay/internal/logger"
	"b24relay/internal/middleware"
	"b24relay/internal/services"
)

type WebhookHandler struct {
	service *services.WebhookService
	state   *services.BotState
	path    string
}

func NewWebhookHandler(service *services.WebhookService, state *services.BotState, path string) *WebhookHandler {
	return &WebhookHandler{service: service, state: state, path: path}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.Engine) {
	r.POST(h.path, middleware.SoftDisableMiddleware(h.state), h.Handle)
}

// Handle - точка входа событий бота. Тело - url-encoded форма со
// скобочными ключами; платформе важен только статус-код ответа.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		logger.FromContext(c.Request.Context()).Warn("malformed webhook form", "error", err)
		c.String(http.StatusOK, "OK")
		return
	}

	resp := h.service.Handle(c.Request.Context(), c.Request.PostForm, publicHandlerURL(c))
	c.String(resp.Status, resp.Body)
}

// publicHandlerURL восстанавливает внешний адрес вебхука с учетом
// реверс-прокси (X-Forwarded-Proto и X-Forwarded-Prefix).
func publicHandlerURL(c *gin.Context) string {
	proto := c.GetHeader("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
		if c.Request.TLS != nil {
			proto = "https"
		}
	}

	path := c.Request.URL.Path
	if prefix := c.GetHeader("X-Forwarded-Prefix"); prefix != "" {
		for len(prefix) > 0 && prefix[len(prefix)-1] == '/' {
			prefix = prefix[:len(prefix)-1]
		}
		path = prefix + path
	}

	return proto + "://" + c.Request.Host + path
}
