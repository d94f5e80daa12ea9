// Package models содержит доменные структуры клуба дрессировки:
// учетную запись клиента, анкету собаки и план тренировок.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import (
	"fmt"
	"time"
)

// Role роль пользователя в системе.
type Role string

// Возможные роли.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// SubscriptionLevel уровень подписки клиента.
type SubscriptionLevel string

// Возможные уровни подписки.
const (
	SubscriptionNone    SubscriptionLevel = "none"
	SubscriptionBasic   SubscriptionLevel = "basic"
	SubscriptionPremium SubscriptionLevel = "premium"
)

// Status статус жизненного цикла учетной записи.
// Статус — источник истины для маршрутизации: он перечитывается
// из хранилища при каждом входе, а не берется из клиента.
type Status string

// Возможные статусы.
const (
	StatusPendingPayment Status = "pending_payment"
	StatusPendingForm    Status = "pending_form"
	StatusActive         Status = "active"
)

// Frequency желаемая частота тренировок в неделю.
type Frequency string

// Возможные частоты.
const (
	FrequencyLow    Frequency = "1-2"
	FrequencyMedium Frequency = "3-4"
	FrequencyDaily  Frequency = "daily"
)

// User представляет полную запись клиента: идентичность, подписка,
// анкета и план тренировок. Запись сохраняется целиком при каждой мутации.
type User struct {
	Email        string            // Электронная почта, ключ записи
	Username     string            // Имя пользователя
	PasswordHash string            // Хэш пароля
	Role         Role              // Роль: admin или user
	Subscription SubscriptionLevel // Уровень подписки
	Status       Status            // Статус жизненного цикла
	DogName      string            // Имя собаки (дублируется из анкеты для списков)
	Frequency    Frequency         // Частота тренировок, пустая до онбординга
	Profile      *DogProfile       // Анкета, nil до онбординга
	Plan         []DayEntry        // План тренировок, адресуется абсолютным индексом
	CreatedAt    time.Time         // Дата создания записи
}

// Validate проверяет запись на границе хранилища: обязательные поля
// и допустимость значений перечислений. Анкета и план могут отсутствовать.
func (u *User) Validate() error {
	const op = "models.User.Validate"
	if u.Email == "" {
		return fmt.Errorf("%s: empty email", op)
	}
	switch u.Role {
	case RoleAdmin, RoleUser:
	default:
		return fmt.Errorf("%s: unknown role %q", op, u.Role)
	}
	switch u.Subscription {
	case SubscriptionNone, SubscriptionBasic, SubscriptionPremium:
	default:
		return fmt.Errorf("%s: unknown subscription level %q", op, u.Subscription)
	}
	switch u.Status {
	case StatusPendingPayment, StatusPendingForm, StatusActive:
	default:
		return fmt.Errorf("%s: unknown status %q", op, u.Status)
	}
	if u.Frequency != "" {
		switch u.Frequency {
		case FrequencyLow, FrequencyMedium, FrequencyDaily:
		default:
			return fmt.Errorf("%s: unknown frequency %q", op, u.Frequency)
		}
	}
	return nil
}

// UserSummary краткое представление пользователя для CRUD-границы /users.
type UserSummary struct {
	ID           int64             `json:"id"`
	Email        string            `json:"email"`
	Username     string            `json:"username"`
	DogName      string            `json:"dogName"`
	Subscription SubscriptionLevel `json:"subscription"`
	CreatedAt    time.Time         `json:"createdAt"`
}
