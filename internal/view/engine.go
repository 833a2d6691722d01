package view

import (
	"sort"
	"strings"
	"unicode/utf8"

	"salonmate/internal/model"
)

// Engine derives the calendar-centric projections from the cached
// reservation collection. All derivations are total functions: an
// empty source yields an empty result, never an error. Ordering
// within a day is plain string comparison on HH:MM.
type Engine struct {
	clock Clock
}

// NewEngine creates a view engine on the given clock. A nil clock
// falls back to the wall clock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	return &Engine{clock: clock}
}

// DayEntry is one reservation in the full day panel. Past entries
// stay in the list but render dimmed; the panel is a complete
// record of the day.
type DayEntry struct {
	model.Reservation
	Past bool `json:"past"`
}

// DayView filters reservations to one date, sorted ascending by
// time. Whether an entry is past is decided once for the whole day
// unless the date is today, in which case each entry is compared
// against the current clock reading.
func (e *Engine) DayView(reservations []model.Reservation, dateStr string) []DayEntry {
	now := e.clock.Now()
	todayStr, nowTime := DateOf(now), TimeOf(now)

	entries := make([]DayEntry, 0)
	for _, r := range reservations {
		if r.Date == dateStr {
			entries = append(entries, DayEntry{Reservation: r})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })

	for i := range entries {
		switch {
		case dateStr < todayStr:
			entries[i].Past = true
		case dateStr == todayStr:
			entries[i].Past = entries[i].Time < nowTime
		}
	}
	return entries
}

// CellEntry is the compact per-reservation line inside a month-grid
// cell. On today, entries whose time already passed keep the time
// but drop name and service: the cell has no room for obsolete
// detail, while the day panel still shows the full dimmed record.
type CellEntry struct {
	Time     string `json:"time"`
	Name     string `json:"name,omitempty"`
	Service  string `json:"service,omitempty"`
	Upcoming bool   `json:"upcoming"`
}

// CellPreview builds the month-grid cell projection for a date.
// Past dates collapse to a count with no entries.
func (e *Engine) CellPreview(reservations []model.Reservation, dateStr string) (int, []CellEntry) {
	day := e.DayView(reservations, dateStr)
	todayStr := DateOf(e.clock.Now())
	if dateStr < todayStr {
		return len(day), nil
	}

	entries := make([]CellEntry, 0, len(day))
	for _, d := range day {
		entry := CellEntry{Time: d.Time}
		if !d.Past {
			entry.Name = d.CustomerName
			entry.Service = d.ServiceType
			entry.Upcoming = dateStr == todayStr
		}
		entries = append(entries, entry)
	}
	return len(day), entries
}

// Upcoming returns the rolling "what's left to do" set: strictly
// future dates, plus today's entries at or after the current clock
// reading. Natural collection order is preserved.
func (e *Engine) Upcoming(reservations []model.Reservation) []model.Reservation {
	now := e.clock.Now()
	todayStr, nowTime := DateOf(now), TimeOf(now)

	out := make([]model.Reservation, 0)
	for _, r := range reservations {
		if r.Date > todayStr || (r.Date == todayStr && r.Time >= nowTime) {
			out = append(out, r)
		}
	}
	return out
}

// TodayRemaining counts today's reservations at or after the
// current clock reading, for the header badge.
func (e *Engine) TodayRemaining(reservations []model.Reservation) int {
	now := e.clock.Now()
	todayStr, nowTime := DateOf(now), TimeOf(now)

	count := 0
	for _, r := range reservations {
		if r.Date == todayStr && r.Time >= nowTime {
			count++
		}
	}
	return count
}

// Search matches reservations against a free-text query: a
// case-insensitive substring test on the customer name, or a phone
// match on digits. When the operator types exactly four digits (no
// formatting, four characters as typed) the phone match becomes a
// last-4 suffix lookup; any other digit query matches as a
// substring of the stripped phone. Results keep natural collection
// order; grouping for display is a separate step.
func (e *Engine) Search(reservations []model.Reservation, query string) []model.Reservation {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	cleanQuery := stripDigits(query)
	lowerQuery := strings.ToLower(query)

	out := make([]model.Reservation, 0)
	for _, r := range reservations {
		nameMatch := strings.Contains(strings.ToLower(r.CustomerName), lowerQuery)

		phoneMatch := false
		if cleanQuery != "" {
			cleanPhone := stripDigits(r.CustomerPhone)
			if IsLastFourQuery(query) {
				phoneMatch = strings.HasSuffix(cleanPhone, cleanQuery)
			} else {
				phoneMatch = strings.Contains(cleanPhone, cleanQuery)
			}
		}

		if nameMatch || phoneMatch {
			out = append(out, r)
		}
	}
	return out
}

// IsLastFourQuery reports whether a query is the last-4 phone
// lookup idiom. Both conditions are required: the stripped query is
// four digits AND the query as typed was four characters. A query
// like "12-3" has four characters but three digits and must not
// qualify, so the two checks cannot be collapsed into one.
func IsLastFourQuery(query string) bool {
	query = strings.TrimSpace(query)
	return len(stripDigits(query)) == 4 && utf8.RuneCountInString(query) == 4
}

// PhoneNames groups the distinct names the ledger has seen under
// one phone number, in insertion order.
type PhoneNames struct {
	Phone string   `json:"phone"`
	Names []string `json:"names"`
}

// LedgerMatches cross-references a search query against the
// imported customer ledger. Only the last-4 digit lookup triggers
// it: the ledger holds nothing but name/phone pairs, so a name
// search already found its answer in the live reservation set.
// Matches are grouped by the phone string exactly as it appears in
// the ledger, collecting the distinct names recorded under it.
func LedgerMatches(customers []model.CustomerRecord, query string) []PhoneNames {
	query = strings.TrimSpace(query)
	if !IsLastFourQuery(query) {
		return nil
	}
	cleanQuery := stripDigits(query)

	index := make(map[string]int)
	out := make([]PhoneNames, 0)
	for _, c := range customers {
		if !strings.HasSuffix(stripDigits(c.Phone), cleanQuery) {
			continue
		}
		i, ok := index[c.Phone]
		if !ok {
			i = len(out)
			index[c.Phone] = i
			out = append(out, PhoneNames{Phone: c.Phone})
		}
		if !containsName(out[i].Names, c.Name) {
			out[i].Names = append(out[i].Names, c.Name)
		}
	}
	return out
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func stripDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
