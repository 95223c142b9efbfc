package services

import (
	"os"
	"path/filepath"
)

// BotState - мягкий выключатель обработки вебхука. Файл-флаг DISABLED в
// директории инстанса подавляет обработку, не трогая учетные данные.
type BotState struct {
	enabledFlag  string
	disabledFlag string
}

func NewBotState(dir string) *BotState {
	return &BotState{
		enabledFlag:  filepath.Join(dir, "ENABLED"),
		disabledFlag: filepath.Join(dir, "DISABLED"),
	}
}

// Enabled - бот включен, пока файла DISABLED не существует.
func (b *BotState) Enabled() bool {
	_, err := os.Stat(b.disabledFlag)
	return os.IsNotExist(err)
}

func (b *BotState) Enable() error {
	if err := os.Remove(b.disabledFlag); err != nil && !os.IsNotExist(err) {
		return err
	}
	f, err := os.Create(b.enabledFlag)
	if err != nil {
		return err
	}
	return f.Close()
}

func (b *BotState) Disable() error {
	f, err := os.Create(b.disabledFlag)
	if err != nil {
		return err
	}
	return f.Close()
}
