package calendar

import (
	"fmt"
	"time"

	"salonmate/internal/model"
)

// MonthDays builds the ordered day cells for one calendar month.
// month is zero-based; values outside 0..11 roll over into the
// adjacent year by date arithmetic (month -1 is the previous
// year's December), so callers can navigate with plain +1/-1.
//
// The first real day is left-padded into its weekday column
// (Sunday first) and the final week is completed with padding so
// the result length is always a multiple of 7. Padding cells have
// an empty DateStr and IsPast set, keeping them unselectable.
func MonthDays(year, month int, todayStr string) []model.CalendarDay {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	days := make([]model.CalendarDay, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		days = append(days, model.CalendarDay{IsPast: true})
	}

	for d := 1; d <= last.Day(); d++ {
		dateStr := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), d)
		days = append(days, model.CalendarDay{
			DateStr:        dateStr,
			DayOfMonth:     d,
			IsCurrentMonth: true,
			IsToday:        dateStr == todayStr,
			IsPast:         dateStr < todayStr,
		})
	}

	for len(days)%7 != 0 {
		days = append(days, model.CalendarDay{IsPast: true})
	}
	return days
}

// Normalize rolls an arbitrary zero-based month offset into a
// concrete (year, month) pair, carrying over year boundaries.
func Normalize(year, month int) (int, int) {
	t := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)
	return t.Year(), int(t.Month()) - 1
}
