// Package session определяет явный объект сессии и правило маршрутизации
// верхнего уровня: какой экран показывать в зависимости от записи клиента.
//
// Правило выводится из долговечного статуса записи при каждом входе,
// а не доверяется состоянию, которое держит клиент.
package session

import (
	"time"

	"github.com/eventosguau/training-club/internal/models"
)

// View верхнеуровневый экран приложения.
type View string

// Возможные экраны.
const (
	ViewLogin      View = "login"
	ViewPayment    View = "payment"
	ViewOnboarding View = "onboarding"
	ViewDashboard  View = "dashboard"
	ViewAdmin      View = "admin"
)

// Session активная сессия одного аутентифицированного пользователя.
// Создается при входе и уничтожается при выходе; передается компонентам
// явно, а не хранится глобальным состоянием.
type Session struct {
	Email     string
	Role      models.Role
	View      View
	CreatedAt time.Time
}

// Resolve вычисляет экран по записи пользователя.
//
// nil → форма входа; pending_payment → оплата; pending_form → онбординг;
// иначе основной экран, причем администратору всегда показывается панель
// администратора независимо от запрошенного вида.
func Resolve(user *models.User) View {
	switch {
	case user == nil:
		return ViewLogin
	case user.Status == models.StatusPendingPayment:
		return ViewPayment
	case user.Status == models.StatusPendingForm:
		return ViewOnboarding
	case user.Role == models.RoleAdmin:
		return ViewAdmin
	default:
		return ViewDashboard
	}
}

// New создает сессию для пользователя с вычисленным экраном.
func New(user *models.User) *Session {
	return &Session{
		Email:     user.Email,
		Role:      user.Role,
		View:      Resolve(user),
		CreatedAt: time.Now().UTC(),
	}
}
