// Package list реализует HTTP-обработчик списка шаблонов упражнений.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/models"
)

// Handler обрабатывает запросы списка шаблонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики библиотеки упражнений.
type Service interface {
	List(ctx context.Context) ([]*models.ExerciseTemplate, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список шаблонов упражнений
// @Description Возвращает все шаблоны библиотеки упражнений.
// @Tags Library
// @Produce  json
// @Success 200 {object} map[string]any "Шаблоны упражнений"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/library [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	templates, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list templates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list templates"))
		return
	}

	log.Info("success to list templates", slog.Int("count", len(templates)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"templates": templates,
	}))
}
