// Package comment реализует HTTP-обработчик для комментария тренера к анкете.
//
// Доступен только администратору: комментарий сохраняется в анкету
// клиента и виден ему в личном кабинете.
package comment

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
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// Request — структура входных данных для комментария тренера.
type Request struct {
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment"`
}

// Handler обрабатывает запросы на сохранение комментария тренера.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики комментария тренера.
type Service interface {
	SetAdminComment(ctx context.Context, email, comment string) error
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
// @Summary Комментарий тренера к анкете
// @Description Сохраняет комментарий тренера в анкету клиента.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body Request true "Email клиента и комментарий"
// @Success 200 {object} response.Response "Комментарий сохранен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/comment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.comment"

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

	if err := h.service.SetAdminComment(r.Context(), req.Email, req.Comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("client not found", slog.String("email", req.Email))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
			return
		}
		log.Error("failed to save comment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save comment"))
		return
	}

	log.Info("success to save comment", slog.String("email", req.Email))
	render.JSON(w, r, response.OK())
}
