package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventLog - журнал входящих событий вебхука. Payload хранится уже
// замаскированным, сырые токены в БД не попадают.
type EventLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Event     string         `gorm:"index" json:"event"`
	ChatID    *int64         `gorm:"index" json:"chat_id,omitempty"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (EventLog) TableName() string {
	return "event_log"
}
