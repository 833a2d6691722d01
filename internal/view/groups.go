package view

import (
	"sort"

	"salonmate/internal/model"
)

// DateGroup is one day's worth of reservations for a grouped list.
type DateGroup struct {
	Date         string              `json:"date"`
	Reservations []model.Reservation `json:"reservations"`
}

// GroupUpcoming arranges the upcoming set for display: dates
// ascending, times ascending within a day.
func GroupUpcoming(reservations []model.Reservation) []DateGroup {
	groups := groupByDate(reservations)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date < groups[j].Date })
	for _, g := range groups {
		rs := g.Reservations
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Time < rs[j].Time })
	}
	return groups
}

// GroupSearch arranges search results for display: dates
// descending, times descending within a day. Search results read
// as history, newest first — the opposite of the day view.
func GroupSearch(reservations []model.Reservation) []DateGroup {
	groups := groupByDate(reservations)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	for _, g := range groups {
		rs := g.Reservations
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Time > rs[j].Time })
	}
	return groups
}

func groupByDate(reservations []model.Reservation) []DateGroup {
	index := make(map[string]int)
	groups := make([]DateGroup, 0)
	for _, r := range reservations {
		i, ok := index[r.Date]
		if !ok {
			i = len(groups)
			index[r.Date] = i
			groups = append(groups, DateGroup{Date: r.Date})
		}
		groups[i].Reservations = append(groups[i].Reservations, r)
	}
	return groups
}
