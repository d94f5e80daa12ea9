package models

// ExerciseTemplate элемент библиотеки упражнений, не привязан к пользователю.
type ExerciseTemplate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// Exercise экземпляр упражнения в плане: копия полей шаблона плюс
// состояние выполнения и вопрос клиента тренеру.
type Exercise struct {
	ExerciseTemplate
	Completed bool   `json:"completed"`
	Feedback  string `json:"feedback,omitempty"`
}

// DayEntry один день плана: дата и упорядоченный список упражнений.
// Признак дня отдыха не хранится: он вычисляется из списка упражнений,
// поэтому рассинхронизация флага и списка невозможна.
type DayEntry struct {
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

// IsRestDay день отдыха тогда и только тогда, когда упражнений нет.
func (d DayEntry) IsRestDay() bool {
	return len(d.Exercises) == 0
}
