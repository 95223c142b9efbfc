package models

import "time"

// Message ссылается на диалог по внешнему chat_id, а не по внутреннему id
// (унаследованная денормализация, см. DESIGN.md).
type Message struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DialogChatID int64     `gorm:"index;not null" json:"-"`
	AuthorID     int64     `gorm:"index;not null" json:"author_id"`
	MessageText  string    `gorm:"type:text" json:"message_text"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
}

func (Message) TableName() string {
	return "messages"
}
