// Package complete реализует HTTP-обработчик отметки выполнения упражнения.
//
// Отметка — переключатель: повторный запрос с теми же параметрами снимает
// галочку. Неизвестный день или упражнение молча игнорируются, запись не
// меняется.
package complete

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
)

// Request — структура входных данных отметки выполнения.
type Request struct {
	DayIndex   int    `json:"dayIndex" validate:"min=0"`
	ExerciseID string `json:"exerciseId" validate:"required"`
}

// Handler обрабатывает запросы отметки выполнения упражнения.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отметки выполнения.
type Service interface {
	ToggleCompletion(ctx context.Context, email string, absIndex int, exerciseID string) error
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
// @Summary Отметить выполнение упражнения
// @Description Переключает отметку выполнения упражнения в дне плана с абсолютным индексом.
// @Tags Plan
// @Accept  json
// @Produce  json
// @Param request body Request true "Индекс дня и ID упражнения"
// @Success 200 {object} response.Response "Отметка переключена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plan/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.complete"

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

	if err := h.service.ToggleCompletion(r.Context(), email, req.DayIndex, req.ExerciseID); err != nil {
		log.Error("failed to toggle completion", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not toggle completion"))
		return
	}

	log.Info("success to toggle completion",
		slog.Int("day_index", req.DayIndex), slog.String("exercise_id", req.ExerciseID))
	render.JSON(w, r, response.OK())
}
