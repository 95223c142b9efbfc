package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"b24relay/internal/models"
	"b24relay/pkg/apperrors"
)

// DialogDetail - заголовок диалога с участниками и сообщениями окна.
type DialogDetail struct {
	ID           int64         `json:"id"`
	ChatID       int64         `json:"chat_id"`
	StartTime    time.Time     `json:"start_time"`
	Participants []models.User `json:"participants"`
	Messages     []MessageView `json:"messages"`
}

// Gateway - единая точка доступа к хранилищу диалогов. Сервисы зависят от
// интерфейса, в тестах подменяется in-memory реализацией.
type Gateway interface {
	EnsureDialog(chatID int64) (*models.Dialog, error)
	UpsertUser(id int64, name string, role models.UserRole) error
	AddParticipant(chatID, userID int64) error
	AppendMessage(chatID, authorID int64, text string) error

	DialogsInRange(start, end time.Time) ([]models.Dialog, error)
	DialogDetail(chatID int64, start, end time.Time) (*DialogDetail, error)
	AllUsers() ([]models.User, error)

	LogEvent(event string, chatID *int64, payload any) error
}

// GormGateway реализует Gateway поверх GORM/Postgres.
type GormGateway struct {
	dialogs      *DialogRepository
	users        *UserRepository
	participants *ParticipantRepository
	messages     *MessageRepository
	events       *EventLogRepository
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{
		dialogs:      NewDialogRepository(db),
		users:        NewUserRepository(db),
		participants: NewParticipantRepository(db),
		messages:     NewMessageRepository(db),
		events:       NewEventLogRepository(db),
	}
}

// EnsureDialog регистрирует диалог при первом наблюдении chat_id.
// start_time - момент первой регистрации, не время из события.
func (g *GormGateway) EnsureDialog(chatID int64) (*models.Dialog, error) {
	dialog, err := g.dialogs.Ensure(chatID, time.Now().UTC())
	if err != nil {
		return nil, apperrors.PersistError(err, "failed to ensure dialog")
	}
	return dialog, nil
}

func (g *GormGateway) UpsertUser(id int64, name string, role models.UserRole) error {
	user := models.User{ID: id, UserName: name, Role: role}
	if err := g.users.Upsert(&user); err != nil {
		return apperrors.PersistError(err, "failed to upsert user")
	}
	return nil
}

// AddParticipant вставляет членство. Отсутствие диалога - восстановимая
// ошибка: она означает нарушение порядка ensure-then-reference выше по стеку.
func (g *GormGateway) AddParticipant(chatID, userID int64) error {
	dialog, err := g.dialogs.FindByChatID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDialogNotFound(err)
		}
		return apperrors.PersistError(err, "failed to resolve dialog for participant")
	}
	if err := g.participants.Add(dialog.ID, userID); err != nil {
		return apperrors.PersistError(err, "failed to add participant")
	}
	return nil
}

func (g *GormGateway) AppendMessage(chatID, authorID int64, text string) error {
	message := models.Message{
		DialogChatID: chatID,
		AuthorID:     authorID,
		MessageText:  text,
		Timestamp:    time.Now().UTC(),
	}
	if err := g.messages.Append(&message); err != nil {
		return apperrors.PersistError(err, "failed to append message")
	}
	return nil
}

func (g *GormGateway) DialogsInRange(start, end time.Time) ([]models.Dialog, error) {
	dialogs, err := g.dialogs.FindInRange(start, end)
	if err != nil {
		return nil, apperrors.PersistError(err, "failed to query dialogs")
	}
	return dialogs, nil
}

func (g *GormGateway) DialogDetail(chatID int64, start, end time.Time) (*DialogDetail, error) {
	dialog, err := g.dialogs.FindByChatID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDialogNotFound(err)
		}
		return nil, apperrors.PersistError(err, "failed to load dialog")
	}

	participants, err := g.participants.UsersOf(dialog.ID)
	if err != nil {
		return nil, apperrors.PersistError(err, "failed to load participants")
	}
	messages, err := g.messages.InRangeForChat(chatID, start, end)
	if err != nil {
		return nil, apperrors.PersistError(err, "failed to load messages")
	}

	return &DialogDetail{
		ID:           dialog.ID,
		ChatID:       dialog.ChatID,
		StartTime:    dialog.StartTime,
		Participants: participants,
		Messages:     messages,
	}, nil
}

func (g *GormGateway) AllUsers() ([]models.User, error) {
	users, err := g.users.FindAll()
	if err != nil {
		return nil, apperrors.PersistError(err, "failed to query users")
	}
	return users, nil
}

func (g *GormGateway) LogEvent(event string, chatID *int64, payload any) error {
	if err := g.events.Append(event, chatID, payload); err != nil {
		return apperrors.PersistError(err, "failed to log event")
	}
	return nil
}
