// Package notifier собирает фонового потребителя уведомлений: подключение
// к брокеру, SMTP-транспорт и цикл обработки очереди plan-ready.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/eventosguau/training-club/internal/config"
	"github.com/eventosguau/training-club/internal/lib/smtp"
	"github.com/eventosguau/training-club/internal/rabbitmq"
	notifierservice "github.com/eventosguau/training-club/internal/services/notifier"
)

// App инкапсулирует потребителя очереди уведомлений.
type App struct {
	logger *slog.Logger
	conn   *amqp.Connection
	ch     *amqp.Channel
	sender *notifierservice.SenderService
}

// New подключается к брокеру, объявляет очереди и готовит отправителя писем.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	sender := notifierservice.NewSenderService(transport, logger)

	return &App{
		logger: logger,
		conn:   conn,
		ch:     ch,
		sender: sender,
	}, nil
}

// Run запускает потребителя и блокируется до остановки контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.PlanReadyQueue, a.sender.SendPlanReady)
	if err != nil {
		return err
	}
	a.logger.Info("consuming plan-ready notifications", slog.String("queue", rabbitmq.PlanReadyQueue))

	<-ctx.Done()

	a.logger.Info("shutting down notifier gracefully")
	_ = a.ch.Close()
	_ = a.conn.Close()
	return nil
}
