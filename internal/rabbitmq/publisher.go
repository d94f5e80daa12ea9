package rabbitmq

import (
	"github.com/streadway/amqp"

	librabbit "github.com/eventosguau/training-club/internal/lib/rabbitmq"
	"github.com/eventosguau/training-club/internal/models"
)

// PlanReadyPublisher публикует события о новых упражнениях в плане.
type PlanReadyPublisher struct {
	ch *amqp.Channel
}

// NewPlanReadyPublisher создает новый экземпляр PlanReadyPublisher.
func NewPlanReadyPublisher(ch *amqp.Channel) *PlanReadyPublisher {
	return &PlanReadyPublisher{ch: ch}
}

// PublishPlanReady отправляет уведомление в очередь notifications.plan-ready.
func (p *PlanReadyPublisher) PublishPlanReady(info models.PlanReadyInfo) error {
	return librabbit.PublishMessage(p.ch, NotificationsExchange, PlanReadyRoutingKey, info)
}
