package calendar

// Korean public holidays for red-day styling. Two tables: fixed
// dates recur every year and are matched on the MM-DD substring;
// movable (lunar-calendar) holidays are enumerated per year and
// must be extended annually. Dates outside the enumerated years
// are never flagged by the movable table — a documented limitation,
// not a bug. Sundays are handled by the caller via the weekday
// column, not here.

var fixedHolidays = map[string]struct{}{
	"01-01": {},
	"03-01": {},
	"05-05": {},
	"06-06": {},
	"08-15": {},
	"10-03": {},
	"10-09": {},
	"12-25": {},
}

var movableHolidays = map[string]struct{}{
	"2024-02-09": {},
	"2024-02-10": {},
	"2024-02-11": {},
	"2024-02-12": {},
	"2024-04-10": {},
	"2024-05-06": {},
	"2024-05-15": {},
	"2024-09-16": {},
	"2024-09-17": {},
	"2024-09-18": {},
	"2025-01-28": {},
	"2025-01-29": {},
	"2025-01-30": {},
	"2025-03-03": {},
	"2025-05-06": {},
	"2025-10-05": {},
	"2025-10-06": {},
	"2025-10-07": {},
	"2025-10-08": {},
}

// IsKoreanHoliday reports whether an ISO date string is a public
// holiday. Empty or malformed input returns false.
func IsKoreanHoliday(dateStr string) bool {
	if len(dateStr) != 10 {
		return false
	}
	if _, ok := fixedHolidays[dateStr[5:]]; ok {
		return true
	}
	_, ok := movableHolidays[dateStr]
	return ok
}
