package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventosguau/training-club/internal/models"
)

func TestAbsoluteIndex(t *testing.T) {
	tests := []struct {
		name       string
		weekOffset int
		day        int
		expected   int
	}{
		{name: "первый день текущей недели", weekOffset: 0, day: 0, expected: 14},
		{name: "последний день текущей недели", weekOffset: 0, day: 6, expected: 20},
		{name: "первый день следующей недели", weekOffset: 1, day: 0, expected: 21},
		{name: "первый день прошлой недели", weekOffset: -1, day: 0, expected: 7},
		{name: "начало истории", weekOffset: -2, day: 0, expected: 0},
		{name: "середина второй недели вперед", weekOffset: 2, day: 3, expected: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbsoluteIndex(tt.weekOffset, tt.day))
		})
	}
}

func TestWindowAdjacentWeeksDoNotOverlap(t *testing.T) {
	plan := Seed(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	for offset := -2; offset < 1; offset++ {
		current := Window(plan, offset)
		next := Window(plan, offset+1)
		require.Len(t, current, DaysPerWeek)
		require.NotEmpty(t, next)
		// последний день окна и первый день следующего — соседние даты
		assert.NotEqual(t, current[len(current)-1].Date, next[0].Date)
	}
}

func TestWindowShortPlan(t *testing.T) {
	tests := []struct {
		name       string
		planLength int
		weekOffset int
		expected   int
	}{
		{name: "план кончается в середине недели", planLength: 17, weekOffset: 0, expected: 3},
		{name: "план не достает до окна", planLength: 14, weekOffset: 0, expected: 0},
		{name: "пустой план", planLength: 0, weekOffset: 0, expected: 0},
		{name: "полное окно истории", planLength: 14, weekOffset: -1, expected: 7},
		{name: "окно целиком за планом", planLength: 28, weekOffset: 5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := make([]models.DayEntry, tt.planLength)
			assert.Len(t, Window(plan, tt.weekOffset), tt.expected)
		})
	}
}

func TestSeed(t *testing.T) {
	activatedAt := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	plan := Seed(activatedAt)

	require.Len(t, plan, SeedLength)
	assert.Equal(t, "2026-02-16", plan[0].Date)
	assert.Equal(t, "2026-03-02", plan[Anchor].Date)
	assert.Equal(t, "2026-03-15", plan[SeedLength-1].Date)
	for _, day := range plan {
		assert.True(t, day.IsRestDay())
	}
}

func TestExtend(t *testing.T) {
	plan := Seed(time.Now())
	extended := Extend(plan, 40)

	require.Len(t, extended, 40)
	for i := SeedLength; i < 40; i++ {
		assert.Empty(t, extended[i].Date)
		assert.True(t, extended[i].IsRestDay())
	}

	// план не короче запрошенной длины — без изменений
	same := Extend(extended, 10)
	assert.Len(t, same, 40)
}
