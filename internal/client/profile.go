package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alatem/alatem/internal/models"
)

// ProfileStore хранит единственный профиль жителя в JSON-файле на устройстве.
// Профиль - единственный источник правды о том, зарегистрировано ли устройство.
type ProfileStore struct {
	path string
}

func NewProfileStore(path string) *ProfileStore {
	return &ProfileStore{path: path}
}

// Load читает сохраненный профиль. Отсутствующий или поврежденный файл
// трактуется как "профиля нет": устройство возвращается на экран приветствия.
func (s *ProfileStore) Load() *models.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var profile models.User
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}

// Save перезаписывает профиль целиком. Частичных обновлений нет,
// вызывающая сторона сливает поля сама.
func (s *ProfileStore) Save(profile *models.User) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("client: could not marshal profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("client: could not create profile directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("client: could not write profile: %w", err)
	}
	return nil
}
