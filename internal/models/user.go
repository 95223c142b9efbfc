package models

type UserRole string

const (
	RoleClient  UserRole = "client"
	RoleManager UserRole = "manager"
)

// RoleForExternal выводит роль автора из флага экстранета:
// внешний пользователь (IS_EXTRANET=Y) всегда клиент, остальные — менеджеры.
func RoleForExternal(isExternal bool) UserRole {
	if isExternal {
		return RoleClient
	}
	return RoleManager
}

// User - пользователь портала, id приходит из Битрикса (не автоинкремент).
type User struct {
	ID       int64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserName string   `json:"user_name"`
	Role     UserRole `gorm:"type:varchar(16)" json:"role"`
}

func (User) TableName() string {
	return "users"
}
