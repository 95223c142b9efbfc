package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"b24relay/internal/models"
)

type DialogRepository struct {
	DB *gorm.DB
}

func NewDialogRepository(db *gorm.DB) *DialogRepository {
	return &DialogRepository{DB: db}
}

// Ensure создает диалог для chat_id, если его еще нет, и возвращает строку.
// Идемпотентна: конкурентные вызовы для одного chat_id не плодят дубликатов
// (ON CONFLICT DO NOTHING по уникальному chat_id).
func (r *DialogRepository) Ensure(chatID int64, startTime time.Time) (*models.Dialog, error) {
	dialog := models.Dialog{ChatID: chatID, StartTime: startTime}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoNothing: true,
	}).Create(&dialog).Error
	if err != nil {
		return nil, err
	}
	return r.FindByChatID(chatID)
}

// FindByChatID возвращает диалог по внешнему chat_id
func (r *DialogRepository) FindByChatID(chatID int64) (*models.Dialog, error) {
	var dialog models.Dialog
	err := r.DB.First(&dialog, "chat_id = ?", chatID).Error
	if err != nil {
		return nil, err
	}
	return &dialog, nil
}

// FindInRange возвращает диалоги, начавшиеся в окне [start, end], новые первыми
func (r *DialogRepository) FindInRange(start, end time.Time) ([]models.Dialog, error) {
	var dialogs []models.Dialog
	err := r.DB.
		Where("start_time BETWEEN ? AND ?", start, end).
		Order("start_time DESC").
		Find(&dialogs).Error
	return dialogs, err
}
