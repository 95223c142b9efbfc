package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"b24relay/internal/models"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Upsert вставляет пользователя либо безусловно обновляет имя и роль
// (последняя запись побеждает, в том числе по роли).
func (r *UserRepository) Upsert(user *models.User) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_name", "role"}),
	}).Create(user).Error
}

// FindAll возвращает всех пользователей без фильтра
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.DB.Find(&users).Error
	return users, err
}
