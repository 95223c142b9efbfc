package repositories

import (
	"time"

	"gorm.io/gorm"

	"b24relay/internal/models"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// MessageView - сообщение с именем автора для выдачи деталей диалога.
type MessageView struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	MessageText string    `json:"message_text"`
	Timestamp   time.Time `json:"timestamp"`
}

// Append добавляет сообщение (append-only, одна строка на событие)
func (r *MessageRepository) Append(message *models.Message) error {
	return r.DB.Create(message).Error
}

// InRangeForChat возвращает сообщения чата в окне [start, end], старые первыми
func (r *MessageRepository) InRangeForChat(chatID int64, start, end time.Time) ([]MessageView, error) {
	views := make([]MessageView, 0)
	err := r.DB.
		Table("messages m").
		Select("m.id, m.author_id, u.user_name AS author_name, m.message_text, m.timestamp").
		Joins("LEFT JOIN users u ON u.id = m.author_id").
		Where("m.dialog_chat_id = ? AND m.timestamp BETWEEN ? AND ?", chatID, start, end).
		Order("m.timestamp ASC").
		Scan(&views).Error
	return views, err
}
