// Package complete реализует HTTP-обработчик завершения онбординга.
//
// Вызывается на последнем шаге мастера: принимает собранную анкету и
// частоту тренировок, переводит запись в активный статус и засевает
// стартовый план. Email берется из контекста аутентификации.
package complete

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
	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/onboarding"
)

// Request — структура входных данных завершения онбординга.
type Request struct {
	Profile   models.DogProfile `json:"profile"`
	Frequency string            `json:"frequency" validate:"required,oneof=1-2 3-4 daily"`
}

// Handler обрабатывает запросы завершения онбординга.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики завершения онбординга.
type Service interface {
	CompleteOnboarding(ctx context.Context, email string, profile models.DogProfile, frequency models.Frequency) error
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
// @Summary Завершить онбординг
// @Description Сохраняет анкету и частоту тренировок, активирует запись и засевает стартовый план.
// @Tags Onboarding
// @Accept  json
// @Produce  json
// @Param request body Request true "Анкета и частота тренировок"
// @Success 200 {object} response.Response "Онбординг завершен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /onboarding/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.onboarding.complete"

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

	err := h.service.CompleteOnboarding(r.Context(), email, req.Profile, models.Frequency(req.Frequency))
	if err != nil {
		if errors.Is(err, onboarding.ErrIncomplete) {
			log.Error("profile is incomplete", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("profile is incomplete"))
			return
		}
		log.Error("failed to complete onboarding", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete onboarding"))
		return
	}

	log.Info("success to complete onboarding", slog.String("email", email))
	render.JSON(w, r, response.OK())
}
