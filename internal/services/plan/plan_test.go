package plan

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventosguau/training-club/internal/lib/week"
	"github.com/eventosguau/training-club/internal/models"
)

// MockRepository реализует интерфейс plan.RecordRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) ReplaceRecord(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetTemplate(ctx context.Context, id string) (*models.ExerciseTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExerciseTemplate), args.Error(1)
}

// MockCache реализует интерфейс plan.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockPublisher реализует интерфейс plan.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPlanReady(info models.PlanReadyInfo) error {
	args := m.Called(info)
	return args.Error(0)
}

func newTestService(repo *MockRepository, cache *MockCache, publisher Publisher) *PlanService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewPlanService(repo, cache, publisher, logger)
}

func passthroughCache() *MockCache {
	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	return cache
}

func planUser(planLength int) *models.User {
	u := &models.User{
		Email:    "client@example.com",
		Username: "ana",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		DogName:  "Rex",
	}
	if planLength > 0 {
		u.Plan = week.Seed(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))[:planLength]
	}
	return u
}

func TestToggleCompletion(t *testing.T) {
	t.Run("двойное переключение возвращает исходное состояние", func(t *testing.T) {
		u := planUser(week.SeedLength)
		u.Plan[week.Anchor].Exercises = []models.Exercise{
			{ExerciseTemplate: models.ExerciseTemplate{ID: "ex1", Title: "Sentado"}},
		}
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
		repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

		service := newTestService(repo, passthroughCache(), nil)

		require.NoError(t, service.ToggleCompletion(context.Background(), "client@example.com", week.Anchor, "ex1"))
		assert.True(t, u.Plan[week.Anchor].Exercises[0].Completed)

		require.NoError(t, service.ToggleCompletion(context.Background(), "client@example.com", week.Anchor, "ex1"))
		assert.False(t, u.Plan[week.Anchor].Exercises[0].Completed)
	})

	t.Run("неизвестное упражнение — no-op без ошибки", func(t *testing.T) {
		u := planUser(week.SeedLength)
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)

		service := newTestService(repo, passthroughCache(), nil)

		require.NoError(t, service.ToggleCompletion(context.Background(), "client@example.com", week.Anchor, "missing"))
		repo.AssertNotCalled(t, "ReplaceRecord", mock.Anything, mock.Anything)
	})

	t.Run("индекс за пределами плана — no-op без ошибки", func(t *testing.T) {
		u := planUser(week.SeedLength)
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)

		service := newTestService(repo, passthroughCache(), nil)

		require.NoError(t, service.ToggleCompletion(context.Background(), "client@example.com", 100, "ex1"))
		repo.AssertNotCalled(t, "ReplaceRecord", mock.Anything, mock.Anything)
	})
}

func TestSetFeedback(t *testing.T) {
	u := planUser(week.SeedLength)
	u.Plan[week.Anchor].Exercises = []models.Exercise{
		{ExerciseTemplate: models.ExerciseTemplate{ID: "ex1"}, Feedback: "vieja pregunta"},
	}
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
	repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, passthroughCache(), nil)

	require.NoError(t, service.SetFeedback(context.Background(), "client@example.com", week.Anchor, "ex1", "¿Cuántas veces?"))
	assert.Equal(t, "¿Cuántas veces?", u.Plan[week.Anchor].Exercises[0].Feedback)

	// пустая строка очищает заметку
	require.NoError(t, service.SetFeedback(context.Background(), "client@example.com", week.Anchor, "ex1", ""))
	assert.Empty(t, u.Plan[week.Anchor].Exercises[0].Feedback)
}

func TestWeekWindowDoesNotExtendPlan(t *testing.T) {
	u := planUser(17)
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)

	service := newTestService(repo, passthroughCache(), nil)

	days, err := service.WeekWindow(context.Background(), "client@example.com", 0)
	require.NoError(t, err)
	// клиентское чтение возвращает укороченное окно и не трогает запись
	assert.Len(t, days, 3)
	assert.Len(t, u.Plan, 17)
	repo.AssertNotCalled(t, "ReplaceRecord", mock.Anything, mock.Anything)
}

func TestAssignTemplate(t *testing.T) {
	t.Run("назначение расширяет план и публикует уведомление", func(t *testing.T) {
		u := planUser(week.SeedLength)
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
		repo.On("GetTemplate", mock.Anything, "tpl1").Return(&models.ExerciseTemplate{
			ID:    "tpl1",
			Title: "Junto",
		}, nil)
		repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

		publisher := new(MockPublisher)
		publisher.On("PublishPlanReady", models.PlanReadyInfo{
			Email:      "client@example.com",
			Username:   "ana",
			DogName:    "Rex",
			WeekOffset: 4,
		}).Return(nil)

		service := newTestService(repo, passthroughCache(), publisher)

		// неделя 4 лежит за пределами засеянных 28 дней
		require.NoError(t, service.AssignTemplate(context.Background(), "client@example.com", 4, 2, "tpl1"))

		absIndex := week.AbsoluteIndex(4, 2)
		require.Len(t, u.Plan, absIndex+1)
		require.Len(t, u.Plan[absIndex].Exercises, 1)
		assert.Equal(t, "Junto", u.Plan[absIndex].Exercises[0].Title)
		assert.False(t, u.Plan[absIndex].Exercises[0].Completed)
		// синтезированные дни остаются без дат
		assert.Empty(t, u.Plan[week.SeedLength].Date)
		publisher.AssertExpectations(t)
	})

	t.Run("ошибка публикации не ломает назначение", func(t *testing.T) {
		u := planUser(week.SeedLength)
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
		repo.On("GetTemplate", mock.Anything, "tpl1").Return(&models.ExerciseTemplate{ID: "tpl1"}, nil)
		repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

		publisher := new(MockPublisher)
		publisher.On("PublishPlanReady", mock.Anything).Return(assert.AnError)

		service := newTestService(repo, passthroughCache(), publisher)

		assert.NoError(t, service.AssignTemplate(context.Background(), "client@example.com", 0, 0, "tpl1"))
	})

	t.Run("день вне диапазона", func(t *testing.T) {
		service := newTestService(new(MockRepository), passthroughCache(), nil)

		err := service.AssignTemplate(context.Background(), "client@example.com", 0, 7, "tpl1")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("неделя раньше начала истории", func(t *testing.T) {
		// абсолютный индекс для недели -3 отрицателен: назначать некуда
		u := planUser(week.SeedLength)
		repo := new(MockRepository)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
		repo.On("GetTemplate", mock.Anything, "tpl1").Return(&models.ExerciseTemplate{ID: "tpl1"}, nil)

		service := newTestService(repo, passthroughCache(), nil)

		err := service.AssignTemplate(context.Background(), "client@example.com", -3, 0, "tpl1")
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Len(t, u.Plan, week.SeedLength)
		repo.AssertNotCalled(t, "ReplaceRecord", mock.Anything, mock.Anything)
	})
}

func TestEditExercise(t *testing.T) {
	u := planUser(week.SeedLength)
	u.Plan[week.Anchor].Exercises = []models.Exercise{
		{ExerciseTemplate: models.ExerciseTemplate{ID: "ex1", Title: "Sentado"}, Feedback: "¿Así?"},
	}
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
	repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, passthroughCache(), nil)

	require.NoError(t, service.EditExercise(context.Background(), "client@example.com",
		week.Anchor, 0, "Sentado avanzado", "Con distracciones", "15 min"))

	ex := u.Plan[week.Anchor].Exercises[0]
	assert.Equal(t, "Sentado avanzado", ex.Title)
	assert.Equal(t, "Con distracciones", ex.Description)
	assert.Equal(t, "15 min", ex.Duration)
	// заметка клиента при правке не очищается
	assert.Equal(t, "¿Así?", ex.Feedback)

	err := service.EditExercise(context.Background(), "client@example.com", week.Anchor, 5, "x", "", "")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTogglePreferredDay(t *testing.T) {
	u := planUser(0)
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
	repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo, passthroughCache(), nil)

	require.NoError(t, service.TogglePreferredDay(context.Background(), "client@example.com", 2))
	assert.Equal(t, []int{2}, u.Profile.PreferredDaysNextWeek)

	require.NoError(t, service.TogglePreferredDay(context.Background(), "client@example.com", 2))
	assert.Empty(t, u.Profile.PreferredDaysNextWeek)

	assert.ErrorIs(t, service.TogglePreferredDay(context.Background(), "client@example.com", 7), ErrOutOfRange)
}
