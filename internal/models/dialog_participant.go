package models

// DialogParticipant - факт членства (диалог, пользователь). Строки никогда не удаляются.
type DialogParticipant struct {
	DialogID int64 `gorm:"primaryKey;autoIncrement:false" json:"dialog_id"`
	UserID   int64 `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
}

func (DialogParticipant) TableName() string {
	return "dialog_participants"
}
