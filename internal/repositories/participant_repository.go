package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"b24relay/internal/models"
)

type ParticipantRepository struct {
	DB *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// Add добавляет членство (dialog, user), если его еще нет
func (r *ParticipantRepository) Add(dialogID, userID int64) error {
	participant := models.DialogParticipant{DialogID: dialogID, UserID: userID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&participant).Error
}

// UsersOf возвращает участников диалога с их именами и ролями
func (r *ParticipantRepository) UsersOf(dialogID int64) ([]models.User, error) {
	var users []models.User
	err := r.DB.
		Table("users u").
		Select("u.id, u.user_name, u.role").
		Joins("JOIN dialog_participants dp ON u.id = dp.user_id").
		Where("dp.dialog_id = ?", dialogID).
		Scan(&users).Error
	return users, err
}
