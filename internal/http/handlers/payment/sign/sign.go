// Package sign реализует HTTP-обработчик подписи платежного запроса.
//
// Возвращает закодированный блок параметров и подпись HMAC-SHA256 для
// перенаправления браузера на платежную страницу. Секретный ключ
// торговца не покидает сервер.
package sign

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eventosguau/training-club/internal/http/response"
	"github.com/eventosguau/training-club/internal/lib/sl"
	"github.com/eventosguau/training-club/internal/services/payment"
)

// Handler обрабатывает запросы подписи платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подписи платежей.
type Service interface {
	Sign(req payment.SignRequest) (*payment.SignResult, error)
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
// @Summary Подписать платежный запрос
// @Description Формирует блок параметров и подпись HMAC-SHA256 для платежного шлюза.
// @Tags Payment
// @Accept  json
// @Produce  json
// @Param request body payment.SignRequest true "Параметры платежа"
// @Success 200 {object} payment.SignResult "Подписанные параметры"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или отсутствует поле"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payment/sign [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.sign"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req payment.SignRequest
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

	res, err := h.service.Sign(req)
	if err != nil {
		if errors.Is(err, payment.ErrMissingField) {
			log.Error("missing payment field", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing payment field"))
			return
		}
		log.Error("failed to sign payment request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign payment request"))
		return
	}

	log.Info("success to sign payment request", slog.String("order", req.Order))
	render.JSON(w, r, res)
}
