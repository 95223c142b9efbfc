package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotInstalled - приложение еще не было установлено (auth.json отсутствует).
var ErrNotInstalled = errors.New("credentials: not installed")

// Credential - полный auth-payload установки приложения Битрикс24.
// Перезаписывается целиком при каждой (пере)установке.
type Credential struct {
	ApplicationToken string `json:"application_token"`
	ClientEndpoint   string `json:"client_endpoint"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	Domain           string `json:"domain,omitempty"`
	MemberID         string `json:"member_id,omitempty"`
}

// Store - единственный слот учетных данных, файл auth.json в директории
// инстанса. Save атомарен (tmp + rename), читатели видят либо старую,
// либо новую запись целиком.
type Store struct {
	path string
	mu   sync.RWMutex
}

func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "auth.json")}
}

// Save полностью заменяет сохраненные учетные данные.
func (s *Store) Save(cred Credential) error {
	if cred.ApplicationToken == "" {
		return fmt.Errorf("credentials: empty application_token")
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("credentials: marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("credentials: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("credentials: replace %s: %w", s.path, err)
	}
	return nil
}

// Load возвращает текущие учетные данные или ErrNotInstalled.
func (s *Store) Load() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("credentials: read %s: %w", s.path, err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("credentials: parse %s: %w", s.path, err)
	}
	return &cred, nil
}
