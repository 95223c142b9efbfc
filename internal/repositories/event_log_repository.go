package repositories

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"b24relay/internal/models"
)

type EventLogRepository struct {
	DB *gorm.DB
}

func NewEventLogRepository(db *gorm.DB) *EventLogRepository {
	return &EventLogRepository{DB: db}
}

// Append записывает событие в журнал. Payload ожидается уже замаскированным.
func (r *EventLogRepository) Append(event string, chatID *int64, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := models.EventLog{
		Event:   event,
		ChatID:  chatID,
		Payload: datatypes.JSON(data),
	}
	return r.DB.Create(&entry).Error
}
