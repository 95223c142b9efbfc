package apperrors

import "net/http"

/*
Фабрики для доменных ошибок релея: хранилище, учетные данные,
исходящие вызовы Битрикса.
*/

// PersistError - ошибка записи в хранилище. По контракту вебхука почти
// всегда логируется и не выходит наружу (кроме установки).
func PersistError(err error, message string) *AppError {
	return Wrap(err, CodeDatabaseError, "persistence", message, http.StatusInternalServerError)
}

// UpstreamError - исходящий вызов платформы не удался или вернул тело с ошибкой.
func UpstreamError(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "bitrix", message, http.StatusBadGateway)
}

// ErrDialogNotFound - диалог с таким chat_id не зарегистрирован.
func ErrDialogNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "dialogs", "Dialog not found", http.StatusNotFound)
}
