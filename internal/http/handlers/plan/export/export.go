// Package export реализует HTTP-обработчик выгрузки плана в формате iCalendar.
//
// Единственный обработчик, отдающий не JSON: тело ответа — файл .ics
// со всеми датированными упражнениями плана, имя файла строится из
// клички собаки.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
)

// Handler обрабатывает запросы выгрузки календаря.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выгрузки календаря.
type Service interface {
	ExportCalendar(ctx context.Context, email string) (filename, content string, err error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выгрузить план в iCalendar
// @Description Возвращает файл .ics со всеми датированными упражнениями плана.
// @Tags Plan
// @Produce  text/calendar
// @Success 200 {string} string "Файл календаря"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plan/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.export"

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

	filename, content, err := h.service.ExportCalendar(r.Context(), email)
	if err != nil {
		log.Error("failed to export calendar", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not export calendar"))
		return
	}

	log.Info("success to export calendar", slog.String("filename", filename))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		log.Error("failed to write calendar body", sl.Err(err))
	}
}
