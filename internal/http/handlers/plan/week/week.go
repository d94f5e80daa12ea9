// Package week реализует HTTP-обработчик для чтения недельного окна плана.
//
// Смещение недели передается query-параметром offset: 0 — текущая неделя,
// -1 — прошлая, 1 — следующая. Окно короче семи дней означает, что план
// в эту сторону еще не продлен тренером.
package week

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/models"
)

// Handler обрабатывает запросы недельного окна плана.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения плана.
type Service interface {
	WeekWindow(ctx context.Context, email string, weekOffset int) ([]models.DayEntry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Недельное окно плана
// @Description Возвращает дни плана для недели с заданным смещением относительно текущей.
// @Tags Plan
// @Produce  json
// @Param offset query int false "Смещение недели (0 — текущая)"
// @Success 200 {object} map[string]any "Дни недели"
// @Failure 400 {object} response.ErrorResponse "Некорректное смещение"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plan/week [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.week"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		var err error
		offset, err = strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to decode offset from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	days, err := h.service.WeekWindow(r.Context(), email, offset)
	if err != nil {
		log.Error("failed to read week window", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read plan"))
		return
	}

	log.Info("success to read week window", slog.Int("offset", offset), slog.Int("days", len(days)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"offset": offset,
		"days":   days,
	}))
}
