package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"b24relay/internal/bitrix"
	"b24relay/internal/credentials"
	"b24relay/internal/logger"
	"b24relay/internal/models"
	"b24relay/internal/repositories"
	"b24relay/pkg/apperrors"
)

// CredentialStore - единственный слот учетных данных установки.
type CredentialStore interface {
	Save(cred credentials.Credential) error
	Load() (*credentials.Credential, error)
}

// PlatformClient - исходящие REST-вызовы к порталу.
type PlatformClient interface {
	Call(ctx context.Context, cred *credentials.Credential, method string, params map[string]any) (*bitrix.CallResult, error)
}

// WebhookResponse - статус и тело, которыми отвечает вебхук.
// Платформа смотрит только на статус-код.
type WebhookResponse struct {
	Status int
	Body   string
}

// WebhookService - конечный автомат обработки событий бота.
// Состояние задается единственным слотом учетных данных: пока установки не
// было, все кроме ONAPPINSTALL отвергается как Unauthorized.
type WebhookService struct {
	gateway repositories.Gateway
	creds   CredentialStore
	client  PlatformClient
	botCode string
	botName string

	// сериализация обработки внутри одного chat_id, чтобы цепочка
	// dialog -> user -> participant -> message не гонялась сама с собой
	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

func NewWebhookService(gateway repositories.Gateway, creds CredentialStore, client PlatformClient, botCode, botName string) *WebhookService {
	return &WebhookService{
		gateway:   gateway,
		creds:     creds,
		client:    client,
		botCode:   botCode,
		botName:   botName,
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

func (s *WebhookService) lockChat(chatID int64) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		s.chatLocks[chatID] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock
}

// Handle обрабатывает одно входящее событие вебхука.
// handlerURL - публичный адрес этого вебхука, нужен для регистрации бота.
func (s *WebhookService) Handle(ctx context.Context, form url.Values, handlerURL string) WebhookResponse {
	log := logger.FromContext(ctx)

	tree := bitrix.ParseForm(form)
	event := bitrix.Classify(tree)

	log.Info("received event", "event", event.Name, "app_token", bitrix.MaskToken(event.AppToken))
	log.Debug("webhook payload", "body", bitrix.Redact(tree))

	if event.Kind == bitrix.KindInstall {
		return s.handleInstall(ctx, event, handlerURL)
	}

	cred, err := s.creds.Load()
	if err != nil {
		if !errors.Is(err, credentials.ErrNotInstalled) {
			log.Error("failed to load credentials", "error", err)
		} else {
			log.Warn("no credentials saved, install the app first")
		}
		return WebhookResponse{Status: http.StatusUnauthorized, Body: "Unauthorized"}
	}

	if cred.ApplicationToken != event.AppToken {
		log.Warn("mismatched application token",
			"expected", bitrix.MaskToken(cred.ApplicationToken),
			"got", bitrix.MaskToken(event.AppToken))
		return WebhookResponse{Status: http.StatusForbidden, Body: "Forbidden"}
	}

	// в журнал попадают только авторизованные события: чужие и досетапные
	// колбэки не должны оставлять следов в хранилище
	s.auditEvent(event)

	switch event.Kind {
	case bitrix.KindBotJoined:
		s.handleBotJoined(ctx, cred, event)
	case bitrix.KindMessageAdded:
		s.handleMessageAdded(ctx, event)
	default:
		// нераспознанное или неполное событие: подтверждаем без побочных
		// эффектов, не-2xx спровоцировал бы ретраи платформы
		log.Debug("ignoring event", "event", event.Name)
	}

	return WebhookResponse{Status: http.StatusOK, Body: "OK"}
}

// handleInstall сохраняет учетные данные и регистрирует бота.
// Отказ записи фатален (без учетных данных деплой бесполезен); отказ
// регистрации - нет: данные уже сохранены, регистрацию можно повторить.
func (s *WebhookService) handleInstall(ctx context.Context, event bitrix.Event, handlerURL string) WebhookResponse {
	log := logger.FromContext(ctx)

	cred := credentialFromPayload(event.Auth)
	if err := s.creds.Save(cred); err != nil {
		log.Error("failed to save credentials", "error", err)
		return WebhookResponse{Status: http.StatusInternalServerError, Body: "Failed to save auth"}
	}
	log.Info("credentials saved", "app_token", bitrix.MaskToken(cred.ApplicationToken))
	s.auditEvent(event)

	result, err := s.client.Call(ctx, &cred, "imbot.register", map[string]any{
		"CODE":                  s.botCode,
		"TYPE":                  "O",
		"EVENT_WELCOME_MESSAGE": handlerURL,
		"EVENT_MESSAGE_ADD":     handlerURL,
		"EVENT_BOT_DELETE":      handlerURL,
		"PROPERTIES": map[string]any{
			"NAME":          s.botName,
			"WORK_POSITION": "Перехват и передача диалогов",
			"COLOR":         "AQUA",
		},
	})
	switch {
	case err != nil:
		log.Error("failed to register bot", "error", err)
	case result.IsError():
		log.Error("failed to register bot", "status", result.StatusCode, "body", bitrix.Redact(result.Body))
	default:
		log.Info("bot registered", "bot_id", result.Result())
	}

	return WebhookResponse{Status: http.StatusOK, Body: "OK"}
}

// handleBotJoined: бот добавлен в чат. Присоединившийся всегда моделируется
// как клиент; после записи диалог передается в очередь операторов.
func (s *WebhookService) handleBotJoined(ctx context.Context, cred *credentials.Credential, event bitrix.Event) {
	log := logger.FromContext(ctx)

	lock := s.lockChat(event.ChatID)
	defer lock.Unlock()

	if _, err := s.gateway.EnsureDialog(event.ChatID); err != nil {
		log.Error("failed to ensure dialog", "chat_id", event.ChatID, "error", err)
		return
	}
	if err := s.gateway.UpsertUser(event.UserID, event.UserName, models.RoleClient); err != nil {
		log.Error("failed to upsert user", "user_id", event.UserID, "error", err)
	}
	if err := s.gateway.AddParticipant(event.ChatID, event.UserID); err != nil {
		log.Error("failed to add participant", "chat_id", event.ChatID, "user_id", event.UserID, "error", err)
	}

	log.Info("bot joined chat, transferring to operator queue", "chat_id", event.ChatID)
	result, err := s.client.Call(ctx, cred, "imopenlines.bot.session.transfer", map[string]any{
		"CHAT_ID": event.ChatID,
		"QUEUE":   "Y",
		"LEAVE":   "Y",
	})
	if err != nil {
		log.Error("transfer to queue failed", "chat_id", event.ChatID, "error", err)
	} else if result.IsError() {
		log.Error("transfer to queue failed", "chat_id", event.ChatID, "body", bitrix.Redact(result.Body))
	}
}

// handleMessageAdded: входящее сообщение. Порядок записей обязателен:
// диалог, затем автор, затем членство, затем само сообщение.
func (s *WebhookService) handleMessageAdded(ctx context.Context, event bitrix.Event) {
	log := logger.FromContext(ctx)

	lock := s.lockChat(event.ChatID)
	defer lock.Unlock()

	if _, err := s.gateway.EnsureDialog(event.ChatID); err != nil {
		log.Error("failed to ensure dialog", "chat_id", event.ChatID, "error", err)
		return
	}

	role := models.RoleForExternal(event.IsExternal)
	if err := s.gateway.UpsertUser(event.UserID, event.UserName, role); err != nil {
		log.Error("failed to upsert author", "user_id", event.UserID, "error", err)
	}
	if err := s.gateway.AddParticipant(event.ChatID, event.UserID); err != nil {
		log.Error("failed to add participant", "chat_id", event.ChatID, "user_id", event.UserID, "error", err)
	}
	if err := s.gateway.AppendMessage(event.ChatID, event.UserID, event.Text); err != nil {
		log.Error("failed to append message", "chat_id", event.ChatID, "error", err)
	}
}

// SyncParticipants подтягивает актуальный состав чата с портала и
// дозаписывает недостающих участников (роль по умолчанию - менеджер).
func (s *WebhookService) SyncParticipants(ctx context.Context, chatID int64) (int, error) {
	log := logger.FromContext(ctx)

	cred, err := s.creds.Load()
	if err != nil {
		return 0, err
	}

	chatResult, err := s.client.Call(ctx, cred, "im.chat.get", map[string]any{"CHAT_ID": chatID})
	if err != nil {
		return 0, apperrors.UpstreamError(err, "im.chat.get failed")
	}
	if chatResult.IsError() {
		return 0, apperrors.UpstreamError(nil, "im.chat.get returned an error")
	}

	userIDs := rosterIDs(chatResult.Result())
	if len(userIDs) == 0 {
		return 0, nil
	}

	usersResult, err := s.client.Call(ctx, cred, "user.get", map[string]any{"ID": userIDs})
	if err != nil {
		return 0, apperrors.UpstreamError(err, "user.get failed")
	}
	if usersResult.IsError() {
		return 0, apperrors.UpstreamError(nil, "user.get returned an error")
	}

	lock := s.lockChat(chatID)
	defer lock.Unlock()

	if _, err := s.gateway.EnsureDialog(chatID); err != nil {
		return 0, err
	}

	synced := 0
	users, _ := usersResult.Result().([]any)
	for _, raw := range users {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		userID, ok := parseID(entry["ID"])
		if !ok {
			continue
		}
		name := fullName(entry)
		if err := s.gateway.UpsertUser(userID, name, models.RoleManager); err != nil {
			log.Error("failed to upsert roster user", "user_id", userID, "error", err)
			continue
		}
		if err := s.gateway.AddParticipant(chatID, userID); err != nil {
			log.Error("failed to add roster participant", "user_id", userID, "error", err)
			continue
		}
		synced++
	}
	return synced, nil
}

// auditEvent добавляет замаскированный снимок события в журнал (best-effort).
func (s *WebhookService) auditEvent(event bitrix.Event) {
	var chatID *int64
	if event.ChatID != 0 {
		id := event.ChatID
		chatID = &id
	}
	if err := s.gateway.LogEvent(event.Name, chatID, bitrix.Redact(event.Raw)); err != nil {
		logger.Warn("failed to audit event", "event", event.Name, "error", err)
	}
}

func credentialFromPayload(auth map[string]string) credentials.Credential {
	return credentials.Credential{
		ApplicationToken: auth["application_token"],
		ClientEndpoint:   auth["client_endpoint"],
		AccessToken:      auth["access_token"],
		RefreshToken:     auth["refresh_token"],
		Domain:           auth["domain"],
		MemberID:         auth["member_id"],
	}
}

func rosterIDs(result any) []any {
	chat, ok := result.(map[string]any)
	if !ok {
		return nil
	}
	ids, _ := chat["users"].([]any)
	return ids
}

func parseID(v any) (int64, bool) {
	switch id := v.(type) {
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		return n, err == nil
	case float64:
		return int64(id), true
	default:
		return 0, false
	}
}

func fullName(entry map[string]any) string {
	first, _ := entry["NAME"].(string)
	last, _ := entry["LAST_NAME"].(string)
	name := first
	if last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	return name
}
