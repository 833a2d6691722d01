package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthDaysAlignment(t *testing.T) {
	// June 2025 starts on a Sunday and has 30 days.
	days := MonthDays(2025, 5, "2025-06-10")

	assert.Equal(t, 0, len(days)%7)
	assert.Equal(t, "2025-06-01", days[0].DateStr)
	assert.Equal(t, 1, days[0].DayOfMonth)

	// May 2025 starts on a Thursday: four leading pads.
	days = MonthDays(2025, 4, "2025-06-10")
	assert.Equal(t, 0, len(days)%7)
	for i := 0; i < 4; i++ {
		assert.Empty(t, days[i].DateStr)
		assert.False(t, days[i].IsCurrentMonth)
	}
	assert.Equal(t, "2025-05-01", days[4].DateStr)
}

func TestMonthDaysTodayAndPast(t *testing.T) {
	days := MonthDays(2025, 5, "2025-06-10")

	for _, d := range days {
		if !d.IsCurrentMonth {
			continue
		}
		switch {
		case d.DateStr == "2025-06-10":
			assert.True(t, d.IsToday)
			assert.False(t, d.IsPast)
		case d.DateStr < "2025-06-10":
			assert.True(t, d.IsPast, d.DateStr)
			assert.False(t, d.IsToday)
		default:
			assert.False(t, d.IsPast, d.DateStr)
			assert.False(t, d.IsToday)
		}
	}
}

func TestMonthDaysYearRollover(t *testing.T) {
	// month -1 of 2025 is December 2024.
	days := MonthDays(2025, -1, "2025-06-10")

	var first string
	for _, d := range days {
		if d.IsCurrentMonth {
			first = d.DateStr
			break
		}
	}
	assert.Equal(t, "2024-12-01", first)

	// month 12 of 2024 is January 2025.
	days = MonthDays(2024, 12, "2025-06-10")
	for _, d := range days {
		if d.IsCurrentMonth {
			assert.Equal(t, "2025-01-01", d.DateStr)
			break
		}
	}
}

func TestNormalize(t *testing.T) {
	year, month := Normalize(2025, -1)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 11, month)

	year, month = Normalize(2024, 12)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 0, month)

	year, month = Normalize(2025, 5)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 5, month)
}

func TestMonthDaysCellCount(t *testing.T) {
	// Every cell is either a dated current-month day or a pad.
	days := MonthDays(2025, 1, "2025-06-10") // February 2025, 28 days
	dated := 0
	for _, d := range days {
		if d.IsCurrentMonth {
			dated++
			assert.NotEmpty(t, d.DateStr)
		} else {
			assert.Empty(t, d.DateStr)
			assert.True(t, d.IsPast)
		}
	}
	assert.Equal(t, 28, dated)
}
