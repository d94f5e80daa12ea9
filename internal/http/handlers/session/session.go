// Package session реализует HTTP-обработчик текущей сессии.
//
// Экран не хранится в сессии: он каждый раз выводится заново из
// долговечного статуса записи, поэтому обновление страницы после оплаты
// или онбординга сразу показывает правильный экран.
package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/session"
)

// Handler обрабатывает запросы текущей сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения записи клиента.
type Service interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает email, роль и стартовый экран, вычисленный из статуса записи.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Данные сессии"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	u, err := h.service.GetUserByEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to read user record", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read session"))
		return
	}

	s := session.New(u)
	log.Info("session resolved", slog.String("email", email), slog.Any("view", s.View))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"email": s.Email,
		"role":  s.Role,
		"view":  s.View,
	}))
}
