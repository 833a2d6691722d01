package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salonmate/internal/model"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testEngine() *Engine {
	// 2025-06-10 09:00 local
	return NewEngine(fixedClock{t: time.Date(2025, 6, 10, 9, 0, 0, 0, time.Local)})
}

func reservation(id, name, phone, date, timeStr string) model.Reservation {
	return model.Reservation{
		ID:            id,
		CustomerName:  name,
		CustomerPhone: phone,
		Date:          date,
		Time:          timeStr,
	}
}

func TestDayViewSortsAndFlagsPast(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "김민지", "010-1111-2222", "2025-06-10", "10:30"),
		reservation("b", "이서연", "010-3333-4444", "2025-06-10", "08:50"),
		reservation("c", "박지우", "010-5555-6666", "2025-06-11", "09:00"),
	}

	day := e.DayView(reservations, "2025-06-10")
	assert.Len(t, day, 2)
	assert.Equal(t, "08:50", day[0].Time)
	assert.True(t, day[0].Past)
	assert.Equal(t, "10:30", day[1].Time)
	assert.False(t, day[1].Past)

	// Whole past date: everything is past regardless of time.
	past := e.DayView([]model.Reservation{
		reservation("d", "최하은", "", "2025-06-09", "23:59"),
	}, "2025-06-09")
	assert.Len(t, past, 1)
	assert.True(t, past[0].Past)

	// Future date: nothing is past.
	future := e.DayView(reservations, "2025-06-11")
	assert.Len(t, future, 1)
	assert.False(t, future[0].Past)
}

func TestCellPreview(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "김민지", "", "2025-06-10", "08:00"),
		reservation("b", "이서연", "", "2025-06-10", "14:00"),
		reservation("c", "박지우", "", "2025-06-09", "10:00"),
		reservation("d", "최하은", "", "2025-06-12", "11:00"),
	}
	reservations[1].ServiceType = "펌"

	// Past date collapses to a count.
	count, entries := e.CellPreview(reservations, "2025-06-09")
	assert.Equal(t, 1, count)
	assert.Nil(t, entries)

	// Today: elapsed entries keep time only, rest are upcoming.
	count, entries = e.CellPreview(reservations, "2025-06-10")
	assert.Equal(t, 2, count)
	assert.Len(t, entries, 2)
	assert.Equal(t, "08:00", entries[0].Time)
	assert.Empty(t, entries[0].Name)
	assert.False(t, entries[0].Upcoming)
	assert.Equal(t, "14:00", entries[1].Time)
	assert.Equal(t, "이서연", entries[1].Name)
	assert.Equal(t, "펌", entries[1].Service)
	assert.True(t, entries[1].Upcoming)

	// Future date: full detail, not flagged upcoming.
	count, entries = e.CellPreview(reservations, "2025-06-12")
	assert.Equal(t, 1, count)
	assert.Equal(t, "최하은", entries[0].Name)
	assert.False(t, entries[0].Upcoming)
}

func TestUpcoming(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "김민지", "", "2025-06-10", "08:59"),
		reservation("b", "이서연", "", "2025-06-10", "09:00"),
		reservation("c", "박지우", "", "2025-06-11", "00:01"),
		reservation("d", "최하은", "", "2025-06-09", "23:59"),
	}

	up := e.Upcoming(reservations)
	ids := make([]string, 0, len(up))
	for _, r := range up {
		ids = append(ids, r.ID)
	}
	// 09:00 today is still upcoming; 08:59 is not. Any time tomorrow
	// counts, no time yesterday does.
	assert.Equal(t, []string{"b", "c"}, ids)

	assert.Equal(t, 1, e.TodayRemaining(reservations))
}

func TestSearchByName(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "Kim Minji", "010-1234-5678", "2025-06-10", "10:00"),
		reservation("b", "이서연", "010-9999-0000", "2025-06-11", "11:00"),
	}

	assert.Len(t, e.Search(reservations, "kim"), 1)
	assert.Len(t, e.Search(reservations, "KIM"), 1)
	assert.Len(t, e.Search(reservations, "서연"), 1)
	assert.Len(t, e.Search(reservations, "없는이름"), 0)
	assert.Len(t, e.Search(reservations, "   "), 0)
}

func TestSearchByPhone(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "김민지", "010-555-1234", "2025-06-10", "10:00"),
		reservation("b", "이서연", "010-1234-9999", "2025-06-11", "11:00"),
	}

	// Exactly four digits typed as four characters: suffix match.
	suffix := e.Search(reservations, "1234")
	assert.Len(t, suffix, 1)
	assert.Equal(t, "a", suffix[0].ID)

	// Longer digit runs match anywhere in the stripped phone.
	assert.Len(t, e.Search(reservations, "5551234"), 1)
	assert.Len(t, e.Search(reservations, "51234"), 1)

	// Four characters but only three digits: substring, not suffix.
	both := e.Search(reservations, "12-3")
	assert.Len(t, both, 2)
}

func TestIsLastFourQuery(t *testing.T) {
	assert.True(t, IsLastFourQuery("1234"))
	assert.True(t, IsLastFourQuery(" 1234 "))
	assert.False(t, IsLastFourQuery("12-3"))
	assert.False(t, IsLastFourQuery("12345"))
	assert.False(t, IsLastFourQuery("123"))
	assert.False(t, IsLastFourQuery("abcd"))
}

func TestLedgerMatches(t *testing.T) {
	customers := []model.CustomerRecord{
		{Name: "김민지", Phone: "010-555-1234"},
		{Name: "김민지(단골)", Phone: "010-555-1234"},
		{Name: "김민지", Phone: "010-555-1234"},
		{Name: "이서연", Phone: "010-777-1234"},
		{Name: "박지우", Phone: "010-888-9999"},
	}

	matches := LedgerMatches(customers, "1234")
	assert.Len(t, matches, 2)
	assert.Equal(t, "010-555-1234", matches[0].Phone)
	assert.Equal(t, []string{"김민지", "김민지(단골)"}, matches[0].Names)
	assert.Equal(t, "010-777-1234", matches[1].Phone)

	// Name queries never touch the ledger.
	assert.Nil(t, LedgerMatches(customers, "김민지"))
	// Nor do longer digit queries.
	assert.Nil(t, LedgerMatches(customers, "5551234"))
}

func TestSearchIdempotent(t *testing.T) {
	e := testEngine()
	reservations := []model.Reservation{
		reservation("a", "김민지", "010-555-1234", "2025-06-10", "10:00"),
	}

	first := e.Search(reservations, "1234")
	second := e.Search(reservations, "1234")
	assert.Equal(t, first, second)
}

func TestGroupUpcomingAndSearchOrder(t *testing.T) {
	reservations := []model.Reservation{
		reservation("a", "김민지", "", "2025-06-12", "14:00"),
		reservation("b", "이서연", "", "2025-06-11", "10:00"),
		reservation("c", "박지우", "", "2025-06-12", "09:00"),
	}

	up := GroupUpcoming(reservations)
	assert.Len(t, up, 2)
	assert.Equal(t, "2025-06-11", up[0].Date)
	assert.Equal(t, "2025-06-12", up[1].Date)
	assert.Equal(t, "09:00", up[1].Reservations[0].Time)
	assert.Equal(t, "14:00", up[1].Reservations[1].Time)

	down := GroupSearch(reservations)
	assert.Len(t, down, 2)
	assert.Equal(t, "2025-06-12", down[0].Date)
	assert.Equal(t, "14:00", down[0].Reservations[0].Time)
	assert.Equal(t, "2025-06-11", down[1].Date)
}
