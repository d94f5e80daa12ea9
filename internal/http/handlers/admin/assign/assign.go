// Package assign реализует HTTP-обработчик назначения упражнения клиенту.
//
// Тренер указывает клиента, неделю, день и шаблон из библиотеки. План
// клиента при необходимости лениво расширяется до адресуемого дня. После
// успешного назначения клиенту уходит уведомление по email.
package assign

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/services/plan"
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// Request — структура входных данных назначения упражнения.
type Request struct {
	Email      string `json:"email" validate:"required,email"`
	WeekOffset int    `json:"weekOffset"`
	Day        int    `json:"day" validate:"min=0,max=6"`
	TemplateID string `json:"templateId" validate:"required"`
}

// Handler обрабатывает запросы назначения упражнений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики назначения упражнений.
type Service interface {
	AssignTemplate(ctx context.Context, email string, weekOffset, day int, templateID string) error
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
// @Summary Назначить упражнение клиенту
// @Description Добавляет копию шаблона из библиотеки в день плана клиента.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Клиент, неделя, день и шаблон"
// @Success 200 {object} response.Response "Упражнение назначено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или день вне диапазона"
// @Failure 404 {object} response.ErrorResponse "Клиент или шаблон не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/assign [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.assign"

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

	err := h.service.AssignTemplate(r.Context(), req.Email, req.WeekOffset, req.Day, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrOutOfRange):
			log.Error("day out of range", slog.Int("day", req.Day))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("day out of range"))
		case errors.Is(err, repository.ErrNotFound):
			log.Info("client or template not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client or template not found"))
		default:
			log.Error("failed to assign exercise", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not assign exercise"))
		}
		return
	}

	log.Info("success to assign exercise",
		slog.String("email", req.Email), slog.Int("week_offset", req.WeekOffset),
		slog.Int("day", req.Day), slog.String("template_id", req.TemplateID))
	render.JSON(w, r, response.OK())
}
