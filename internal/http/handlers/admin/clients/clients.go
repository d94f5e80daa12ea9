// Package clients реализует HTTP-обработчик списка клиентов для тренера.
//
// Возвращает всех клиентов с ролью user в виде, пригодном для панели
// администратора: контакт, собака, статус, частота и предпочитаемые дни.
package clients

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

// ClientInfo строка списка клиентов в панели тренера.
type ClientInfo struct {
	Email         string                   `json:"email"`
	Username      string                   `json:"username"`
	DogName       string                   `json:"dogName"`
	Subscription  models.SubscriptionLevel `json:"subscription"`
	Status        models.Status            `json:"status"`
	Frequency     models.Frequency         `json:"frequency"`
	PlanLength    int                      `json:"planLength"`
	PreferredDays []int                    `json:"preferredDays"`
}

// Handler обрабатывает запросы списка клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	ListClients(ctx context.Context) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает всех клиентов с ролью user для панели тренера.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.clients"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListClients(r.Context())
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list clients"))
		return
	}

	clients := make([]ClientInfo, 0, len(users))
	for _, u := range users {
		info := ClientInfo{
			Email:        u.Email,
			Username:     u.Username,
			DogName:      u.DogName,
			Subscription: u.Subscription,
			Status:       u.Status,
			Frequency:    u.Frequency,
			PlanLength:   len(u.Plan),
		}
		if u.Profile != nil {
			info.PreferredDays = u.Profile.PreferredDaysNextWeek
		}
		clients = append(clients, info)
	}

	log.Info("success to list clients", slog.Int("count", len(clients)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clients": clients,
	}))
}
