package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// PlanReadyQueue очередь уведомлений о новых упражнениях в плане.
const (
	PlanReadyQueue        = "notifications.plan-ready"
	PlanReadyRoutingKey   = "plan.ready"
	NotificationsExchange = "notifications"
)

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PlanReadyQueue, RoutingKey: PlanReadyRoutingKey},
	}
}
