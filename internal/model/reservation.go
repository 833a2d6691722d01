package model

import (
	"strings"
	"time"
)

// Reservation is a single time-slotted booking for a customer.
// Date and Time are kept as strings on purpose: ISO dates and
// zero-padded HH:MM clock times order correctly under plain string
// comparison, and every derived view relies on that.
type Reservation struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	ServiceType   string    `json:"serviceType"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ReservationInput carries the operator-editable fields. The store
// assigns ID and CreatedAt on create and preserves both on update.
type ReservationInput struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ServiceType   string `json:"serviceType"`
	Memo          string `json:"memo"`
}

// HasCustomer reports whether at least one of name and phone is
// filled in. A reservation with neither is rejected before any
// store call.
func (in ReservationInput) HasCustomer() bool {
	return strings.TrimSpace(in.CustomerName) != "" || strings.TrimSpace(in.CustomerPhone) != ""
}

// CustomerRecord is one row of the externally maintained customer
// ledger. Read-only: the ledger is parsed fresh on every load and
// never written back.
type CustomerRecord struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CalendarDay is one cell of the month grid. Padding cells carry an
// empty DateStr and are never selectable.
type CalendarDay struct {
	DateStr        string `json:"dateStr"`
	DayOfMonth     int    `json:"dayOfMonth"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	IsToday        bool   `json:"isToday"`
	IsPast         bool   `json:"isPast"`
}
