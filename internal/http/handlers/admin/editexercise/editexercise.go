// Package editexercise реализует HTTP-обработчик правки назначенного упражнения.
//
// Тренер меняет название, инструкции и длительность уже назначенной копии
// упражнения; заметка клиента при этом сохраняется.
package editexercise

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

// Request — структура входных данных правки упражнения.
type Request struct {
	Email         string `json:"email" validate:"required,email"`
	DayIndex      int    `json:"dayIndex" validate:"min=0"`
	ExerciseIndex int    `json:"exerciseIndex" validate:"min=0"`
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Duration      string `json:"duration"`
}

// Handler обрабатывает запросы правки назначенных упражнений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики правки упражнений.
type Service interface {
	EditExercise(ctx context.Context, email string, absIndex, exerciseIndex int, title, description, duration string) error
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
// @Summary Править назначенное упражнение
// @Description Заменяет название, инструкции и длительность упражнения в дне плана клиента.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Клиент, адрес упражнения и новые поля"
// @Success 200 {object} response.Response "Упражнение обновлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или индекс вне диапазона"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/exercise [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.editexercise"

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

	err := h.service.EditExercise(r.Context(), req.Email, req.DayIndex, req.ExerciseIndex,
		req.Title, req.Description, req.Duration)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrOutOfRange):
			log.Error("index out of range",
				slog.Int("day_index", req.DayIndex), slog.Int("exercise_index", req.ExerciseIndex))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("index out of range"))
		case errors.Is(err, repository.ErrNotFound):
			log.Info("client not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
		default:
			log.Error("failed to edit exercise", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not edit exercise"))
		}
		return
	}

	log.Info("success to edit exercise",
		slog.String("email", req.Email), slog.Int("day_index", req.DayIndex))
	render.JSON(w, r, response.OK())
}
