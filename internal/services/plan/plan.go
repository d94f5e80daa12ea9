// Package plan содержит бизнес-логику календаря тренировок: окна недель,
// отметки выполнения, вопросы тренеру, назначение упражнений и экспорт
// в текстовый календарь. Все мутации сохраняют запись клиента целиком.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventosguau/training-club/internal/lib/ics"
	"github.com/eventosguau/training-club/internal/lib/week"
	"github.com/eventosguau/training-club/internal/models"
)

// ErrOutOfRange возвращается, когда день недели или индекс дня выходит
// за пределы допустимого диапазона.
var ErrOutOfRange = errors.New("index out of range")

// RecordRepository определяет методы для работы с записями клиентов.
type RecordRepository interface {
	// GetUserByEmail возвращает полную запись клиента.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ReplaceRecord заменяет запись клиента целиком.
	ReplaceRecord(ctx context.Context, user models.User) error
	// GetTemplate возвращает шаблон упражнения из библиотеки.
	GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error)
}

// Cache описывает методы для кэширования записей.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Publisher публикует событие о новых упражнениях в очередь уведомлений.
type Publisher interface {
	PublishPlanReady(info models.PlanReadyInfo) error
}

// PlanService реализует операции календаря поверх хранилища записей с кешированием.
type PlanService struct {
	repo      RecordRepository
	cache     Cache
	publisher Publisher
	log       *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo RecordRepository, cache Cache, publisher Publisher, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// WeekWindow возвращает чистый срез плана клиента для окна weekOffset.
// Клиентский путь чтения план не расширяет: если план короче окна,
// возвращается укороченный срез, недостающие дни — дни отдыха.
func (s *PlanService) WeekWindow(ctx context.Context, email string, weekOffset int) ([]models.DayEntry, error) {
	u, err := s.loadRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return week.Window(u.Plan, weekOffset), nil
}

// ToggleCompletion переключает флаг выполнения упражнения в дне absIndex.
// Неизвестный день или id упражнения — no-op без ошибки.
// Двойное переключение возвращает исходное состояние.
func (s *PlanService) ToggleCompletion(ctx context.Context, email string, absIndex int, exerciseID string) error {
	const op = "plan.ToggleCompletion"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ex := findExercise(u.Plan, absIndex, exerciseID); ex != nil {
		ex.Completed = !ex.Completed
		return s.persist(ctx, *u)
	}
	return nil
}

// SetFeedback перезаписывает вопрос клиента тренеру по упражнению.
// Пустая строка очищает поле. Неизвестный день или id — no-op.
func (s *PlanService) SetFeedback(ctx context.Context, email string, absIndex int, exerciseID, feedback string) error {
	const op = "plan.SetFeedback"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ex := findExercise(u.Plan, absIndex, exerciseID); ex != nil {
		ex.Feedback = feedback
		return s.persist(ctx, *u)
	}
	return nil
}

// TogglePreferredDay добавляет или убирает день недели (0-6) из
// предпочитаемых дней анкеты. Семантика множества.
func (s *PlanService) TogglePreferredDay(ctx context.Context, email string, day int) error {
	const op = "plan.TogglePreferredDay"
	if day < 0 || day >= week.DaysPerWeek {
		return fmt.Errorf("%s: day %d: %w", op, day, ErrOutOfRange)
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if u.Profile == nil {
		u.Profile = &models.DogProfile{}
	}
	u.Profile.TogglePreferredDay(day)
	return s.persist(ctx, *u)
}

// ExportCalendar формирует iCalendar-документ по всему сохраненному плану
// клиента и имя файла, производное от имени собаки.
func (s *PlanService) ExportCalendar(ctx context.Context, email string) (filename, content string, err error) {
	const op = "plan.ExportCalendar"
	u, err := s.loadRecord(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return ics.Filename(u.DogName), ics.Calendar(u.Plan), nil
}

// AssignTemplate назначает шаблон из библиотеки на день клиента.
//
// Абсолютный индекс считается общим помощником недельной адресации; если
// план короче, он лениво расширяется пустыми днями отдыха (даты у
// синтезированных дней остаются пустыми). В день добавляется копия
// шаблона с completed=false. После назначения публикуется уведомление.
func (s *PlanService) AssignTemplate(ctx context.Context, email string, weekOffset, day int, templateID string) error {
	const op = "plan.AssignTemplate"
	if day < 0 || day >= week.DaysPerWeek {
		return fmt.Errorf("%s: day %d: %w", op, day, ErrOutOfRange)
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	t, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	absIndex := week.AbsoluteIndex(weekOffset, day)
	if absIndex < 0 {
		return fmt.Errorf("%s: week %d day %d: %w", op, weekOffset, day, ErrOutOfRange)
	}
	u.Plan = week.Extend(u.Plan, absIndex+1)
	u.Plan[absIndex].Exercises = append(u.Plan[absIndex].Exercises, models.Exercise{
		ExerciseTemplate: *t,
		Completed:        false,
	})

	if err := s.persist(ctx, *u); err != nil {
		return err
	}
	s.log.Info("assigned exercise",
		slog.String("email", email), slog.Int("abs_index", absIndex), slog.String("template", templateID))

	if s.publisher != nil {
		info := models.PlanReadyInfo{
			Email:      u.Email,
			Username:   u.Username,
			DogName:    u.DogName,
			WeekOffset: weekOffset,
		}
		if err := s.publisher.PublishPlanReady(info); err != nil {
			s.log.Warn("failed to publish plan.ready", slog.Any("err", err))
		}
	}
	return nil
}

// EditExercise заменяет изменяемые поля назначенного упражнения:
// название, инструкции и длительность. Тренер отвечает на вопрос клиента,
// правя инструкции на месте; поле feedback при этом не очищается.
func (s *PlanService) EditExercise(ctx context.Context, email string, absIndex, exerciseIndex int, title, description, duration string) error {
	const op = "plan.EditExercise"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if absIndex < 0 || absIndex >= len(u.Plan) {
		return fmt.Errorf("%s: day index %d: %w", op, absIndex, ErrOutOfRange)
	}
	day := &u.Plan[absIndex]
	if exerciseIndex < 0 || exerciseIndex >= len(day.Exercises) {
		return fmt.Errorf("%s: exercise index %d: %w", op, exerciseIndex, ErrOutOfRange)
	}
	ex := &day.Exercises[exerciseIndex]
	ex.Title = title
	ex.Description = description
	ex.Duration = duration
	return s.persist(ctx, *u)
}

// loadRecord возвращает запись клиента, используя кеш или репозиторий.
func (s *PlanService) loadRecord(ctx context.Context, email string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("record:%s", email)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read record cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache record", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// persist сохраняет запись целиком и инвалидирует кеш.
func (s *PlanService) persist(ctx context.Context, u models.User) error {
	const op = "plan.persist"
	if err := s.repo.ReplaceRecord(ctx, u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	cacheKey := fmt.Sprintf("record:%s", u.Email)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate record cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

func findExercise(plan []models.DayEntry, absIndex int, exerciseID string) *models.Exercise {
	if absIndex < 0 || absIndex >= len(plan) {
		return nil
	}
	for i := range plan[absIndex].Exercises {
		if plan[absIndex].Exercises[i].ID == exerciseID {
			return &plan[absIndex].Exercises[i]
		}
	}
	return nil
}
