// Package fallback реализует локальное долговечное хранилище последней
// несохраненной записи клиента. Используется только на пути сохранения
// анкеты: при отказе основного хранилища запись пишется в локальный файл,
// чтобы одна неудачная попытка не теряла данные. Автоматической выгрузки
// обратно в хранилище нет — окно потери данных задокументировано.
package fallback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eventosguau/training-club/internal/models"
)

// Store файловое fallback-хранилище: один файл на пользователя.
type Store struct {
	dir string
}

// New создает хранилище в каталоге dir, создавая его при необходимости.
func New(dir string) (*Store, error) {
	const op = "fallback.New"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{dir: dir}, nil
}

// Write сохраняет запись пользователя в файл. Предыдущее содержимое
// заменяется: хранится только последняя несохраненная версия.
func (s *Store) Write(user models.User) error {
	const op = "fallback.Write"
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(s.path(user.Email), data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Read возвращает последнюю записанную fallback-версию записи пользователя.
func (s *Store) Read(email string) (*models.User, error) {
	const op = "fallback.Read"
	data, err := os.ReadFile(s.path(email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (s *Store) path(email string) string {
	name := strings.ReplaceAll(email, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}
