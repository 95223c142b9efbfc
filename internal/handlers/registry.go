package handlers

// AppHandlers - контейнер готовых хэндлеров для регистрации маршрутов.
type AppHandlers struct {
	Webhook *WebhookHandler
	Dialog  *DialogHandler
	User    *UserHandler
	Admin   *AdminHandler
}
