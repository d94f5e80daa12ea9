// Package importcsv реализует HTTP-обработчик массового импорта упражнений.
//
// Файл принимается multipart-полем file; если формы нет, телом запроса
// считается сам CSV. Возвращается количество импортированных строк.
package importcsv

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
)

// максимальный размер файла импорта
const maxImportSize = 5 << 20

// Handler обрабатывает запросы импорта библиотеки упражнений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики импорта шаблонов.
type Service interface {
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Импорт библиотеки упражнений
// @Description Импортирует шаблоны упражнений из CSV-файла. Первая строка — заголовок.
// @Tags Library
// @Accept  multipart/form-data
// @Produce  json
// @Param file formData file true "CSV-файл с шаблонами"
// @Success 200 {object} map[string]any "Количество импортированных строк"
// @Failure 400 {object} response.ErrorResponse "Некорректный файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/library/import [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.library.importcsv"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var src io.Reader = http.MaxBytesReader(w, r.Body, maxImportSize)
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			log.Error("failed to read form file", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing file field"))
			return
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				log.Debug("failed to close form file", sl.Err(closeErr))
			}
		}()
		src = file
	}

	imported, err := h.service.ImportCSV(r.Context(), src)
	if err != nil {
		log.Error("failed to import templates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not import templates"))
		return
	}

	log.Info("success to import templates", slog.Int("imported", imported))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"imported": imported,
	}))
}
