package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var (
	log   *slog.Logger
	level = new(slog.LevelVar)
)

// Init инициализирует глобальный логгер
// env: "development" или "production"
func Init(env string) {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		// Development: читаемый текстовый формат
		level.Set(slog.LevelDebug)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Production: JSON формат для парсинга
		level.Set(slog.LevelInfo)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	if log == nil {
		// Fallback если Init не вызван
		Init("development")
	}
	return log
}

// SetLevel меняет уровень логирования на лету (admin loglevel).
// Принимает DEBUG/INFO/WARNING/ERROR без учета регистра.
func SetLevel(name string) error {
	switch strings.ToUpper(name) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "WARNING", "WARN":
		level.Set(slog.LevelWarn)
	case "ERROR", "CRITICAL":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("bad level %q", name)
	}
	return nil
}

// Level возвращает текущий уровень логирования.
func Level() slog.Level {
	return level.Level()
}

// Debug логирует debug сообщение
func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

// Info логирует info сообщение
func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

// Warn логирует warning сообщение
func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

// Error логирует error сообщение
func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует fatal ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает новый логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
