package repository

import (
	"context"
	"fmt"

	"github.com/eventosguau/training-club/internal/models"
)

// CreateTemplate вставляет шаблон упражнения в библиотеку.
func (s *Storage) CreateTemplate(ctx context.Context, t models.ExerciseTemplate) error {
	const op = "storage.CreateTemplate"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO exercise_templates (id, title, description, category,
			      duration, video_url)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`
	_, err := s.DB.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.Category, t.Duration, t.VideoURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTemplate возвращает шаблон упражнения по ID.
func (s *Storage) GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error) {
	const op = "storage.GetTemplate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, duration, COALESCE(video_url, '')
			  FROM exercise_templates
			  WHERE id = $1`
	t := &models.ExerciseTemplate{}
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Duration, &t.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListTemplates возвращает все шаблоны библиотеки в порядке добавления.
func (s *Storage) ListTemplates(ctx context.Context) ([]*models.ExerciseTemplate, error) {
	const op = "storage.ListTemplates"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, category, duration, COALESCE(video_url, '')
			  FROM exercise_templates
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExerciseTemplate
	for rows.Next() {
		t := &models.ExerciseTemplate{}
		if err = rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category,
			&t.Duration, &t.VideoURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
