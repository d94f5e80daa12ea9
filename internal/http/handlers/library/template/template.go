// Package template реализует HTTP-обработчик выгрузки образца CSV-файла импорта.
package template

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/services/library"
)

// Handler отдает пример CSV-файла для импорта библиотеки.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Образец CSV для импорта
// @Description Возвращает пример файла импорта библиотеки с одной строкой-образцом.
// @Tags Library
// @Produce  text/csv
// @Success 200 {string} string "CSV-файл"
// @Router /admin/library/template [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.template"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="plantilla_ejercicios.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(library.CSVTemplate())); err != nil {
		log.Error("failed to write csv template", sl.Err(err))
	}
}
