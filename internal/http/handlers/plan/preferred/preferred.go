// Package preferred реализует HTTP-обработчик выбора предпочтительных дней.
//
// День недели — переключатель: повторный запрос убирает день из набора.
// Набор хранится в анкете и виден тренеру при планировании следующей недели.
package preferred

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/services/plan"
)

// Request — структура входных данных выбора дня.
type Request struct {
	Day int `json:"day" validate:"min=0,max=6"`
}

// Handler обрабатывает запросы выбора предпочтительных дней.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики предпочтительных дней.
type Service interface {
	TogglePreferredDay(ctx context.Context, email string, day int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Переключить предпочтительный день
// @Description Добавляет или убирает день недели из набора предпочтительных дней следующей недели.
// @Tags Plan
// @Accept  json
// @Produce  json
// @Param request body Request true "День недели (0 — понедельник)"
// @Success 200 {object} response.Response "День переключен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или день вне диапазона"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plan/preferred [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.preferred"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.TogglePreferredDay(r.Context(), email, req.Day); err != nil {
		if errors.Is(err, plan.ErrOutOfRange) {
			log.Error("day out of range", slog.Int("day", req.Day))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("day out of range"))
			return
		}
		log.Error("failed to toggle preferred day", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle preferred day"))
		return
	}

	log.Info("success to toggle preferred day", slog.Int("day", req.Day))
	render.JSON(w, r, response.OK())
}
