package services

import (
	"time"

	"b24relay/internal/models"
	"b24relay/internal/repositories"
	"b24relay/pkg/apperrors"
)

// DialogService - read-only запросы поверх накопленных диалогов.
type DialogService struct {
	gateway repositories.Gateway
}

func NewDialogService(gateway repositories.Gateway) *DialogService {
	return &DialogService{gateway: gateway}
}

// ListDialogs возвращает диалоги, начавшиеся в запрошенном окне, новые первыми
func (s *DialogService) ListDialogs(q TimeRangeQuery) ([]models.Dialog, error) {
	start, end, err := TimeRangeUTC(q, time.Now())
	if err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	return s.gateway.DialogsInRange(start, end)
}

// DialogDetail возвращает диалог с участниками и сообщениями окна.
// Окно применяется только к сообщениям.
func (s *DialogService) DialogDetail(chatID int64, q TimeRangeQuery) (*repositories.DialogDetail, error) {
	start, end, err := TimeRangeUTC(q, time.Now())
	if err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	return s.gateway.DialogDetail(chatID, start, end)
}

// ListUsers возвращает всех наблюдавшихся пользователей
func (s *DialogService) ListUsers() ([]models.User, error) {
	return s.gateway.AllUsers()
}
