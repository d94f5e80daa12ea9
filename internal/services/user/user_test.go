package user

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventosguau/training-club/internal/lib/week"
	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/onboarding"
)

// MockRepository реализует интерфейс user.UserRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RegisterUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
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

func (m *MockRepository) GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSummary), args.Error(1)
}

func (m *MockRepository) ListClients(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockRepository) UpdateSubscription(ctx context.Context, id int64, level models.SubscriptionLevel) error {
	args := m.Called(ctx, id, level)
	return args.Error(0)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFallback реализует интерфейс user.FallbackStore
type MockFallback struct {
	mock.Mock
}

func (m *MockFallback) Write(user models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockCache реализует интерфейс user.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestService(repo *MockRepository, fb *MockFallback, cache *MockCache) *UserService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewUserService(repo, fb, cache, logger)
}

func baseUser() *models.User {
	return &models.User{
		Email:        "client@example.com",
		Username:     "ana",
		Role:         models.RoleUser,
		Subscription: models.SubscriptionNone,
		Status:       models.StatusPendingForm,
		DogName:      "Rex",
	}
}

func TestSaveProfileFallback(t *testing.T) {
	repo := new(MockRepository)
	fb := new(MockFallback)
	cache := new(MockCache)

	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(baseUser(), nil)
	repo.On("ReplaceRecord", mock.Anything, mock.Anything).Return(errors.New("db down"))
	// fallback получает именно ту запись, которую не удалось сохранить
	fb.On("Write", mock.MatchedBy(func(u models.User) bool {
		return u.Email == "client@example.com" &&
			u.Profile != nil &&
			u.Profile.Breed == "Border Collie" &&
			u.Frequency == models.FrequencyDaily
	})).Return(nil)

	service := newTestService(repo, fb, cache)
	err := service.SaveProfile(context.Background(), "client@example.com",
		models.DogProfile{DogName: "Rex", Breed: "Border Collie"}, models.FrequencyDaily)

	// отказ хранилища не прерывает рабочий процесс клиента
	require.NoError(t, err)
	fb.AssertExpectations(t)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestSaveProfileSuccess(t *testing.T) {
	repo := new(MockRepository)
	fb := new(MockFallback)
	cache := new(MockCache)

	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(baseUser(), nil)
	repo.On("ReplaceRecord", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Profile != nil && u.DogName == "Luna" && u.Profile.UpdatedAt != ""
	})).Return(nil)
	cache.On("Invalidate", "record:client@example.com").Return(nil)

	service := newTestService(repo, fb, cache)
	err := service.SaveProfile(context.Background(), "client@example.com",
		models.DogProfile{DogName: "Luna"}, "")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	fb.AssertNotCalled(t, "Write", mock.Anything)
}

func TestConfirmPayment(t *testing.T) {
	repo := new(MockRepository)
	fb := new(MockFallback)
	cache := new(MockCache)

	u := baseUser()
	u.Status = models.StatusPendingPayment
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
	repo.On("ReplaceRecord", mock.Anything, mock.MatchedBy(func(saved models.User) bool {
		return saved.Subscription == models.SubscriptionPremium &&
			saved.Status == models.StatusPendingForm
	})).Return(nil)
	cache.On("Invalidate", "record:client@example.com").Return(nil)

	service := newTestService(repo, fb, cache)
	err := service.ConfirmPayment(context.Background(), "client@example.com", models.SubscriptionPremium)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCompleteOnboarding(t *testing.T) {
	t.Run("активация засевает стартовый план", func(t *testing.T) {
		repo := new(MockRepository)
		fb := new(MockFallback)
		cache := new(MockCache)

		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(baseUser(), nil)
		repo.On("ReplaceRecord", mock.Anything, mock.MatchedBy(func(saved models.User) bool {
			return saved.Status == models.StatusActive &&
				len(saved.Plan) == week.SeedLength &&
				saved.Frequency == models.FrequencyMedium
		})).Return(nil)
		cache.On("Invalidate", "record:client@example.com").Return(nil)

		service := newTestService(repo, fb, cache)
		err := service.CompleteOnboarding(context.Background(), "client@example.com",
			models.DogProfile{DogName: "Rex", OwnerName: "Ana", Goals: "Obediencia"}, models.FrequencyMedium)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("существующий план не пересеивается", func(t *testing.T) {
		repo := new(MockRepository)
		fb := new(MockFallback)
		cache := new(MockCache)

		u := baseUser()
		u.Plan = make([]models.DayEntry, 3)
		repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(u, nil)
		repo.On("ReplaceRecord", mock.Anything, mock.MatchedBy(func(saved models.User) bool {
			return len(saved.Plan) == 3
		})).Return(nil)
		cache.On("Invalidate", "record:client@example.com").Return(nil)

		service := newTestService(repo, fb, cache)
		err := service.CompleteOnboarding(context.Background(), "client@example.com",
			models.DogProfile{DogName: "Rex", OwnerName: "Ana", Goals: "Obediencia"}, models.FrequencyLow)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("неполная анкета не активирует запись", func(t *testing.T) {
		tests := []struct {
			name    string
			profile models.DogProfile
		}{
			{"пустая анкета", models.DogProfile{}},
			{"нет имени владельца", models.DogProfile{DogName: "Rex", Goals: "Obediencia"}},
			{"нет имени собаки", models.DogProfile{OwnerName: "Ana", Goals: "Obediencia"}},
			{"нет целей", models.DogProfile{OwnerName: "Ana", DogName: "Rex"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := new(MockRepository)

				service := newTestService(repo, new(MockFallback), new(MockCache))
				err := service.CompleteOnboarding(context.Background(), "client@example.com",
					tt.profile, models.FrequencyLow)

				require.ErrorIs(t, err, onboarding.ErrIncomplete)
				repo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
				repo.AssertNotCalled(t, "ReplaceRecord", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestSetAdminComment(t *testing.T) {
	repo := new(MockRepository)
	fb := new(MockFallback)
	cache := new(MockCache)

	// у клиента еще нет анкеты — комментарий создает её
	repo.On("GetUserByEmail", mock.Anything, "client@example.com").Return(baseUser(), nil)
	repo.On("ReplaceRecord", mock.Anything, mock.MatchedBy(func(saved models.User) bool {
		return saved.Profile != nil && saved.Profile.AdminComments == "Usar correa corta"
	})).Return(nil)
	cache.On("Invalidate", "record:client@example.com").Return(nil)

	service := newTestService(repo, fb, cache)
	err := service.SetAdminComment(context.Background(), "client@example.com", "Usar correa corta")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateUser(t *testing.T) {
	repo := new(MockRepository)
	fb := new(MockFallback)
	cache := new(MockCache)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Subscription == models.SubscriptionBasic && u.PasswordHash != "secret-password"
	})).Return(int64(5), nil)
	repo.On("GetUserSummary", mock.Anything, int64(5)).Return(&models.UserSummary{
		ID:    5,
		Email: "client@example.com",
	}, nil)

	service := newTestService(repo, fb, cache)
	res, err := service.CreateUser(context.Background(), "client@example.com", "ana", "secret-password", "Rex")

	require.NoError(t, err)
	assert.Equal(t, int64(5), res.ID)
	repo.AssertExpectations(t)
}
