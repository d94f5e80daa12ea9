// Package save реализует HTTP-обработчик сохранения анкеты собаки.
//
// Сохранение устойчиво к отказу хранилища: сервис пишет запись в локальный
// fallback и не возвращает ошибку клиенту, поэтому единственные отказы на
// этой границе — некорректный запрос или отсутствие аутентификации.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/models"
)

// Request — структура входных данных для сохранения анкеты.
type Request struct {
	Profile   models.DogProfile `json:"profile"`
	Frequency string            `json:"frequency" validate:"omitempty,oneof=1-2 3-4 daily"`
}

// Handler обрабатывает запросы на сохранение анкеты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сохранения анкеты.
type Service interface {
	SaveProfile(ctx context.Context, email string, profile models.DogProfile, frequency models.Frequency) error
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
// @Summary Сохранить анкету собаки
// @Description Сохраняет анкету и частоту тренировок в запись клиента.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Анкета собаки"
// @Success 200 {object} response.Response "Анкета сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /profile [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.save"

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

	err := h.service.SaveProfile(r.Context(), email, req.Profile, models.Frequency(req.Frequency))
	if err != nil {
		log.Error("failed to save profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save profile"))
		return
	}

	log.Info("success to save profile", slog.String("email", email))
	render.JSON(w, r, response.OK())
}
