// Package onboarding реализует линейный мастер регистрации из четырех шагов:
// basic → technical → google_form → frequency.
//
// Переход назад разрешен только к непосредственно предыдущему шагу.
// Переход basic → technical закрыт, пока не заполнены имя владельца,
// имя собаки и цели: попытка перехода при пустом поле — no-op, не ошибка.
// Мастер не обращается к хранилищу: результат (анкета, частота) передается
// вызывающему одним колбэком на завершающем шаге.
package onboarding

import (
	"errors"

	"github.com/eventosguau/training-club/internal/models"
)

// ErrIncomplete возвращается серверным путем завершения, когда анкета
// не проходит ворота первого шага.
var ErrIncomplete = errors.New("required profile fields missing")

// Step шаг мастера.
type Step string

// Шаги в порядке прохождения.
const (
	StepBasic      Step = "basic"
	StepTechnical  Step = "technical"
	StepGoogleForm Step = "google_form"
	StepFrequency  Step = "frequency"
)

var order = []Step{StepBasic, StepTechnical, StepGoogleForm, StepFrequency}

// Wizard состояние мастера: текущий шаг и накапливаемая анкета.
type Wizard struct {
	step      Step
	Profile   models.DogProfile
	Frequency models.Frequency
}

// New создает мастер на первом шаге с частотой по умолчанию.
func New() *Wizard {
	return &Wizard{step: StepBasic, Frequency: models.FrequencyMedium}
}

// Step возвращает текущий шаг.
func (w *Wizard) Step() Step {
	return w.step
}

// ProfileComplete сообщает, заполнены ли обязательные поля первого шага:
// имя владельца, имя собаки и цели. То же правило применяется на сервере
// при завершении онбординга — клиентскому состоянию мастера не доверяют.
func ProfileComplete(p models.DogProfile) bool {
	return p.OwnerName != "" && p.DogName != "" && p.Goals != ""
}

// CanAdvance сообщает, разрешен ли переход с текущего шага вперед.
// Закрыт только выход с первого шага при незаполненных обязательных полях.
func (w *Wizard) CanAdvance() bool {
	if w.step == StepBasic {
		return ProfileComplete(w.Profile)
	}
	return true
}

// Next переводит мастер на следующий шаг. Возвращает false и не меняет
// состояние, если переход закрыт или шаг последний.
func (w *Wizard) Next() bool {
	if !w.CanAdvance() {
		return false
	}
	for i, s := range order {
		if s == w.step {
			if i == len(order)-1 {
				return false
			}
			w.step = order[i+1]
			return true
		}
	}
	return false
}

// Back возвращает мастер на непосредственно предыдущий шаг.
// На первом шаге — no-op, возвращает false.
func (w *Wizard) Back() bool {
	for i, s := range order {
		if s == w.step {
			if i == 0 {
				return false
			}
			w.step = order[i-1]
			return true
		}
	}
	return false
}

// Complete завершает мастер на последнем шаге и возвращает результат.
// На любом другом шаге возвращает false.
func (w *Wizard) Complete() (models.DogProfile, models.Frequency, bool) {
	if w.step != StepFrequency {
		return models.DogProfile{}, "", false
	}
	return w.Profile, w.Frequency, true
}
