package models

// PlanReadyInfo сообщение о том, что тренер опубликовал клиенту новые
// упражнения. Публикуется в очередь уведомлений и потребляется отправителем писем.
type PlanReadyInfo struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	DogName    string `json:"dogName"`
	WeekOffset int    `json:"weekOffset"`
}
