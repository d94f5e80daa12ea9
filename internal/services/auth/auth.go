// Package auth содержит логику бизнес-уровня для регистрации и входа клиентов.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventosguau/training-club/internal/lib/jwt"
	"github.com/eventosguau/training-club/internal/lib/password"
	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/session"
)

// ErrInvalidCredentials возвращается при любой ошибке аутентификации.
// Неизвестный email и неверный пароль не различаются, чтобы не допустить
// перебор учетных записей.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (int64, error)
	// GetUserByEmail возвращает полную запись пользователя или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// LoginResult результат входа: токен, запись и экран, вычисленный из
// долговечного статуса записи.
type LoginResult struct {
	Token string
	User  *models.User
	View  session.View
}

// AuthService отвечает за регистрацию, авторизацию и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового клиента с хэшированием пароля. Новая запись
// получает роль user, подписку none и статус pending_payment: до оплаты
// клиенту доступен только платежный экран.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword, dogName string) (int64, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Subscription: models.SubscriptionNone,
		Status:       models.StatusPendingPayment,
		DogName:      dogName,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
// Экран маршрутизации выводится из статуса записи при каждом входе.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	return &LoginResult{
		Token: token,
		User:  user,
		View:  session.Resolve(user),
	}, nil
}
