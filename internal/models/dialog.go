package models

import "time"

type Dialog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID    int64     `gorm:"uniqueIndex;not null" json:"chat_id"`
	StartTime time.Time `gorm:"index;not null" json:"start_time"`

	Participants []DialogParticipant `gorm:"foreignKey:DialogID" json:"-"`
}

func (Dialog) TableName() string {
	return "dialogs"
}
