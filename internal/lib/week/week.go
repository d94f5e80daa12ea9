// Package week реализует адресацию плана тренировок по абсолютному индексу.
//
// Индекс 14 определен как первый день "текущей недели" на момент активации
// учетной записи; индексы 0–13 — две недели истории, засеянные днями отдыха.
// Неделя N (N может быть отрицательной) занимает индексы 14+7N .. 14+7N+6.
// И календарь клиента, и инструмент администратора обязаны считать индекс
// через этот пакет, иначе они рассинхронизируются.
package week

import (
	"time"

	"github.com/eventosguau/training-club/internal/models"
)

const (
	// Anchor абсолютный индекс первого дня текущей недели на момент активации.
	Anchor = 14
	// DaysPerWeek количество дней в окне недели.
	DaysPerWeek = 7
	// HistoryDays количество дней истории перед якорем.
	HistoryDays = 14
	// SeedLength длина плана, засеваемого при активации: две недели истории
	// и две недели вперед.
	SeedLength = 28
	// DateLayout формат дат дней плана.
	DateLayout = "2006-01-02"
)

// AbsoluteIndex возвращает абсолютный индекс дня плана по смещению недели
// и номеру дня внутри недели (0-6).
func AbsoluteIndex(weekOffset, day int) int {
	return Anchor + DaysPerWeek*weekOffset + day
}

// WindowStart возвращает абсолютный индекс первого дня окна недели.
func WindowStart(weekOffset int) int {
	return AbsoluteIndex(weekOffset, 0)
}

// Window возвращает чистый срез плана для окна недели weekOffset.
// План не мутируется; если план короче окна, возвращается укороченный
// срез — отсутствующие дни трактуются вызывающим как дни отдыха.
func Window(plan []models.DayEntry, weekOffset int) []models.DayEntry {
	start := WindowStart(weekOffset)
	if start >= len(plan) {
		return nil
	}
	end := start + DaysPerWeek
	if end > len(plan) {
		end = len(plan)
	}
	if start < 0 {
		return nil
	}
	return plan[start:end:end]
}

// Seed создает план длиной SeedLength, датированный так, что день с
// индексом HistoryDays приходится на activatedAt. Все дни — дни отдыха.
func Seed(activatedAt time.Time) []models.DayEntry {
	plan := make([]models.DayEntry, SeedLength)
	day0 := activatedAt.AddDate(0, 0, -HistoryDays)
	for i := range plan {
		plan[i] = models.DayEntry{
			Date:      day0.AddDate(0, 0, i).Format(DateLayout),
			Exercises: []models.Exercise{},
		}
	}
	return plan
}

// Extend дополняет план пустыми днями отдыха до длины length.
// Даты синтезированных дней остаются пустыми: известный пробел исходного
// поведения, экспорт календаря такие дни пропускает.
func Extend(plan []models.DayEntry, length int) []models.DayEntry {
	for len(plan) < length {
		plan = append(plan, models.DayEntry{Exercises: []models.Exercise{}})
	}
	return plan
}
