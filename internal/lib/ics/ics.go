// Package ics формирует текстовый календарь (iCalendar) из плана тренировок.
//
// На каждый экземпляр упражнения создается одно событие на весь день с датой
// дня плана. Экспорт охватывает весь сохраненный план, а не только видимую
// неделю. Переводы строк в описаниях экранируются литеральной
// последовательностью \n согласно правилам текстового формата.
package ics

import (
	"fmt"
	"strings"

	"github.com/eventosguau/training-club/internal/models"
)

// Calendar возвращает содержимое iCalendar-документа для плана plan.
// Дни с пустой датой (синтезированные при ленивом расширении) пропускаются.
func Calendar(plan []models.DayEntry) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Eventos GUAU//Training Calendar//ES\n")
	for _, day := range plan {
		if day.Date == "" {
			continue
		}
		dateStr := strings.ReplaceAll(day.Date, "-", "")
		for _, ex := range day.Exercises {
			b.WriteString("BEGIN:VEVENT\n")
			fmt.Fprintf(&b, "SUMMARY:GUAU: %s\n", escape(ex.Title))
			fmt.Fprintf(&b, "DESCRIPTION:%s (Duración: %s)\n", escape(ex.Description), escape(ex.Duration))
			fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\n", dateStr)
			fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\n", dateStr)
			b.WriteString("END:VEVENT\n")
		}
	}
	b.WriteString("END:VCALENDAR")
	return b.String()
}

// Filename возвращает имя файла экспорта, производное от имени собаки.
func Filename(dogName string) string {
	name := strings.TrimSpace(dogName)
	if name == "" {
		name = "plan"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("entrenamiento_%s.ics", name)
}

// escape экранирует переводы строк литеральной последовательностью \n,
// а не реальным разрывом строки.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}
