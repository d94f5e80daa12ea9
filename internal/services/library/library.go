// Package library реализует библиотеку шаблонов упражнений и массовый
// импорт из текстового файла с разделителями.
package library

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventosguau/training-club/internal/models"
)

// TemplateRepository определяет методы библиотеки упражнений в хранилище.
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, t models.ExerciseTemplate) error
	ListTemplates(ctx context.Context) ([]*models.ExerciseTemplate, error)
}

// LibraryService реализует операции над библиотекой шаблонов.
type LibraryService struct {
	repo TemplateRepository
	log  *slog.Logger
}

// NewLibraryService создает новый экземпляр LibraryService.
func NewLibraryService(repo TemplateRepository, log *slog.Logger) *LibraryService {
	return &LibraryService{repo: repo, log: log}
}

// List возвращает все шаблоны библиотеки.
func (s *LibraryService) List(ctx context.Context) ([]*models.ExerciseTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// ImportCSV разбирает текстовый файл с разделителями-запятыми в шаблоны
// упражнений и сохраняет их. Возвращает количество импортированных строк.
//
// Первая строка — заголовок, пропускается. Колонки:
// title,description,category,duration,videoUrl (последняя опциональна).
// Строки с менее чем четырьмя полями молча отбрасываются.
// Сгенерированные id уникальны в пределах импорта: отметка времени плюс
// случайный суффикс, глобальная уникальность не требуется.
func (s *LibraryService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	const op = "library.ImportCSV"

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // заголовок
	}

	imported := 0
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		t := models.ExerciseTemplate{
			ID:          newTemplateID(),
			Title:       strings.TrimSpace(row[0]),
			Description: strings.TrimSpace(row[1]),
			Category:    strings.TrimSpace(row[2]),
			Duration:    strings.TrimSpace(row[3]),
		}
		if t.Title == "" {
			continue
		}
		if len(row) > 4 {
			t.VideoURL = strings.TrimSpace(row[4])
		}
		if err := s.repo.CreateTemplate(ctx, t); err != nil {
			return imported, fmt.Errorf("%s: %w", op, err)
		}
		imported++
	}

	s.log.Info("imported exercise templates", slog.Int("count", imported))
	return imported, nil
}

// CSVTemplate возвращает пример файла импорта с одной строкой-образцом.
func CSVTemplate() string {
	return "title,description,category,duration,videoUrl\n" +
		"Ejemplo de Ejercicio,Instrucciones detalladas aquí,Obediencia,10 min,https://youtube.com/v=...\n"
}

func newTemplateID() string {
	return fmt.Sprintf("csv_%d_%s", time.Now().UnixNano(), uuid.NewString()[:8])
}
