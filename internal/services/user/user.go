// Package user реализует контроллер записи клиента: CRUD-границу /users
// и мутации полной записи (анкета, оплата, онбординг). Каждая мутация
// сохраняет запись целиком; частичных обновлений на этом уровне нет.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventosguau/training-club/internal/lib/password"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/lib/week"
	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/onboarding"
)

// UserRepository определяет методы для работы с записями клиентов в хранилище.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ReplaceRecord(ctx context.Context, user models.User) error
	GetUserSummary(ctx context.Context, id int64) (*models.UserSummary, error)
	ListClients(ctx context.Context) ([]*models.User, error)
	UpdateSubscription(ctx context.Context, id int64, level models.SubscriptionLevel) error
	DeleteUser(ctx context.Context, id int64) error
}

// FallbackStore описывает локальное долговечное хранилище для записей,
// которые не удалось сохранить в основное хранилище.
type FallbackStore interface {
	Write(user models.User) error
}

// Cache описывает методы инвалидации кеша записей.
type Cache interface {
	Invalidate(key string) error
}

// UserService реализует операции над записью клиента.
type UserService struct {
	repo     UserRepository
	fallback FallbackStore
	cache    Cache
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, fallback FallbackStore, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		fallback: fallback,
		cache:    cache,
		log:      log,
	}
}

// CreateUser создает пользователя через CRUD-границу: пароль хэшируется
// до записи, подписка по умолчанию basic.
func (s *UserService) CreateUser(ctx context.Context, email, username, rawPassword, dogName string) (*models.UserSummary, error) {
	const op = "user.CreateUser"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.repo.RegisterUser(ctx, models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Subscription: models.SubscriptionBasic,
		Status:       models.StatusPendingPayment,
		DogName:      dogName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.GetUserSummary(ctx, id)
}

// GetUser возвращает краткое представление пользователя по ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.UserSummary, error) {
	return s.repo.GetUserSummary(ctx, id)
}

// UpdateSubscription меняет уровень подписки пользователя по ID.
func (s *UserService) UpdateSubscription(ctx context.Context, id int64, level models.SubscriptionLevel) error {
	return s.repo.UpdateSubscription(ctx, id, level)
}

// DeleteUser удаляет пользователя по ID.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// ListClients возвращает полные записи всех клиентов с ролью user.
func (s *UserService) ListClients(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListClients(ctx)
}

// SaveProfile сохраняет анкету и частоту в запись клиента.
//
// Путь с локальным fallback: при отказе хранилища запись пишется в
// локальный файл и отказ логируется, но рабочий процесс не прерывается —
// клиент не теряет введенную анкету из-за одной неудачной попытки.
// Повторной выгрузки fallback-записи в хранилище нет.
func (s *UserService) SaveProfile(ctx context.Context, email string, profile models.DogProfile, frequency models.Frequency) error {
	const op = "user.SaveProfile"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	u.Profile = &profile
	if frequency != "" {
		u.Frequency = frequency
	}
	if profile.DogName != "" {
		u.DogName = profile.DogName
	}

	if err := s.repo.ReplaceRecord(ctx, *u); err != nil {
		s.log.Error("failed to persist profile, writing local fallback", sl.Err(err))
		if fbErr := s.fallback.Write(*u); fbErr != nil {
			s.log.Error("fallback write failed", sl.Err(fbErr))
		}
		return nil
	}
	s.invalidate(email)
	return nil
}

// SetAdminComment записывает технический комментарий тренера в анкету клиента.
func (s *UserService) SetAdminComment(ctx context.Context, email, comment string) error {
	const op = "user.SetAdminComment"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if u.Profile == nil {
		u.Profile = &models.DogProfile{}
	}
	u.Profile.AdminComments = comment
	if err := s.repo.ReplaceRecord(ctx, *u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(email)
	return nil
}

// ConfirmPayment фиксирует успешную оплату: уровень подписки из платежа,
// статус pending_form — дальше клиента ждет мастер онбординга.
func (s *UserService) ConfirmPayment(ctx context.Context, email string, level models.SubscriptionLevel) error {
	const op = "user.ConfirmPayment"
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	u.Subscription = level
	u.Status = models.StatusPendingForm
	if err := s.repo.ReplaceRecord(ctx, *u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(email)
	return nil
}

// CompleteOnboarding принимает результат мастера (анкету и частоту),
// активирует запись и засеивает план: 28 дней отдыха, из них две недели
// истории перед якорным индексом. Ворота первого шага мастера проверяются
// повторно: запись без обязательных полей анкеты не активируется.
func (s *UserService) CompleteOnboarding(ctx context.Context, email string, profile models.DogProfile, frequency models.Frequency) error {
	const op = "user.CompleteOnboarding"
	if !onboarding.ProfileComplete(profile) {
		return fmt.Errorf("%s: %w", op, onboarding.ErrIncomplete)
	}
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	u.Profile = &profile
	u.Frequency = frequency
	u.DogName = profile.DogName
	u.Status = models.StatusActive
	if u.Plan == nil {
		u.Plan = week.Seed(time.Now().UTC())
	}
	if err := s.repo.ReplaceRecord(ctx, *u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(email)
	return nil
}

func (s *UserService) invalidate(email string) {
	cacheKey := fmt.Sprintf("record:%s", email)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate record cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
}
