package routes

import (
	"github.com/gin-gonic/gin"

	"b24relay/internal/handlers"
	"b24relay/internal/middleware"
)

// RegisterRoutes регистрирует все HTTP маршруты релея.
func RegisterRoutes(r *gin.Engine, appHandlers *handlers.AppHandlers, apiSecret string) {
	// Вебхук бота (без токена: событие авторизуется application_token'ом)
	appHandlers.Webhook.RegisterRoutes(r)

	// Query API (Bearer-токен)
	api := r.Group("/api")
	api.Use(middleware.TokenAuthMiddleware(apiSecret))
	{
		appHandlers.Dialog.RegisterRoutes(api)
		appHandlers.User.RegisterRoutes(api)
	}

	// Админские ручки (?token= или X-API-Token), регистрируются отдельной
	// группой, чтобы на них не действовал Bearer-guard query API
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminTokenMiddleware(apiSecret))
	{
		appHandlers.Admin.RegisterRoutes(admin)
	}
}
