package models

// DogProfile анкета собаки и владельца. Поля свободной формы,
// любое может отсутствовать до заполнения мастером онбординга.
// Хранится как jsonb внутри записи пользователя.
type DogProfile struct {
	OwnerName             string   `json:"ownerName,omitempty"`
	OwnerEmail            string   `json:"ownerEmail,omitempty"`
	OwnerPhone            string   `json:"ownerPhone,omitempty"`
	DogName               string   `json:"dogName,omitempty"`
	Breed                 string   `json:"breed,omitempty"`
	BirthDate             string   `json:"birthDate,omitempty"`
	Gender                string   `json:"gender,omitempty"`
	IsCastrated           bool     `json:"isCastrated,omitempty"`
	EnergyLevel           string   `json:"energyLevel,omitempty"`
	HealthIssues          string   `json:"healthIssues,omitempty"`
	BehaviorProblems      []string `json:"behaviorProblems,omitempty"`
	CurrentLevel          string   `json:"currentLevel,omitempty"`
	Goals                 string   `json:"goals,omitempty"`
	UpdatedAt             string   `json:"updatedAt,omitempty"`
	PreferredDaysNextWeek []int    `json:"preferredDaysNextWeek,omitempty"`
	AdminComments         string   `json:"adminComments,omitempty"`
}

// TogglePreferredDay добавляет или убирает день недели (0-6) из списка
// предпочитаемых. Семантика множества: без дубликатов, порядок не значим.
func (p *DogProfile) TogglePreferredDay(day int) {
	for i, d := range p.PreferredDaysNextWeek {
		if d == day {
			p.PreferredDaysNextWeek = append(p.PreferredDaysNextWeek[:i], p.PreferredDaysNextWeek[i+1:]...)
			return
		}
	}
	p.PreferredDaysNextWeek = append(p.PreferredDaysNextWeek, day)
}
