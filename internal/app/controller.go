package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"salonmate/internal/calendar"
	"salonmate/internal/ledger"
	"salonmate/internal/metrics"
	"salonmate/internal/model"
	"salonmate/internal/session"
	"salonmate/internal/store"
	"salonmate/internal/view"
)

// ErrEmptyCustomer rejects reservation input that identifies no
// customer at all.
var ErrEmptyCustomer = errors.New("reservation needs a customer name or phone")

// Controller holds the application state the API serves: the cached
// reservation collection, the imported ledger, the visible month and
// the selected date. It owns a sampled clock that ticks once a
// minute so that time-relative views shift without any data change.
type Controller struct {
	store  store.Store
	loader *ledger.Loader
	gate   *session.Gate
	logger *zerolog.Logger
	engine *view.Engine
	slots  []string

	mu           sync.RWMutex
	year         int
	month        int // zero-based, January is 0
	selectedDate string
	reservations []model.Reservation
	customers    []model.CustomerRecord
	loading      bool

	nowMu sync.RWMutex
	now   time.Time
}

// New builds a controller. The slot list is the configured bookable
// times for a day.
func New(st store.Store, loader *ledger.Loader, gate *session.Gate, slots []string, logger *zerolog.Logger) *Controller {
	c := &Controller{
		store:  st,
		loader: loader,
		gate:   gate,
		logger: logger,
		slots:  slots,
		now:    time.Now(),
	}
	c.engine = view.NewEngine(c)

	today := view.DateOf(c.now)
	c.year = c.now.Year()
	c.month = int(c.now.Month()) - 1
	c.selectedDate = today
	return c
}

// Now returns the sampled clock reading. It satisfies the view
// engine's clock and is guarded separately from the state mutex, so
// engine calls made while holding the state lock cannot deadlock.
func (c *Controller) Now() time.Time {
	c.nowMu.RLock()
	defer c.nowMu.RUnlock()
	return c.now
}

// StartClock advances the sampled clock once a minute until the
// context is cancelled.
func (c *Controller) StartClock(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			c.nowMu.Lock()
			c.now = t
			c.nowMu.Unlock()
		}
	}
}

// Login delegates to the session gate.
func (c *Controller) Login(ctx context.Context, password string) error {
	err := c.gate.Login(ctx, password)
	if err != nil {
		metrics.IncLoginFailure()
	}
	return err
}

// Authenticated delegates to the session gate.
func (c *Controller) Authenticated(ctx context.Context) bool {
	return c.gate.Authenticated(ctx)
}

// Refresh resamples the clock and reloads both the reservation
// collection and the customer ledger. A ledger failure degrades to
// a warning; reservations are authoritative and their failure is
// returned.
func (c *Controller) Refresh(ctx context.Context) error {
	c.nowMu.Lock()
	c.now = time.Now()
	c.nowMu.Unlock()

	if err := c.LoadData(ctx); err != nil {
		return err
	}
	c.LoadLedger(ctx)
	return nil
}

// LoadData replaces the cached reservation collection from the
// store.
func (c *Controller) LoadData(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	reservations, err := c.store.ListReservations(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load reservations")
		return err
	}

	c.mu.Lock()
	c.reservations = reservations
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(reservations)).Msg("reservations loaded")
	return nil
}

// LoadLedger replaces the cached customer ledger. The ledger is
// best effort: a failed load degrades to an empty ledger and the
// app keeps working without cross-references.
func (c *Controller) LoadLedger(ctx context.Context) {
	records, err := c.loader.Load(ctx)
	if err != nil {
		metrics.IncLedgerLoadFailure()
		c.logger.Warn().Err(err).Msg("ledger load failed, clearing ledger")
		records = nil
	}

	c.mu.Lock()
	c.customers = records
	c.mu.Unlock()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// Loading reports whether a reservation load is in flight.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// NavigateMonth moves the visible month by delta months, carrying
// over year boundaries.
func (c *Controller) NavigateMonth(delta int) (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year, c.month = calendar.Normalize(c.year, c.month+delta)
	return c.year, c.month
}

// SetMonth jumps the visible month directly.
func (c *Controller) SetMonth(year, month int) (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year, c.month = calendar.Normalize(year, month)
	return c.year, c.month
}

// GoToToday snaps the visible month and the selected date back to
// the current day.
func (c *Controller) GoToToday() {
	now := c.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year = now.Year()
	c.month = int(now.Month()) - 1
	c.selectedDate = view.DateOf(now)
}

// SelectDate changes the selected date for the day panel.
func (c *Controller) SelectDate(dateStr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedDate = dateStr
}

// SelectedDate returns the date the day panel is showing.
func (c *Controller) SelectedDate() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedDate
}

// VisibleMonth returns the year and zero-based month of the grid.
func (c *Controller) VisibleMonth() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.year, c.month
}

// CalendarCell is one rendered cell of the month grid.
type CalendarCell struct {
	model.CalendarDay
	RedDay  bool             `json:"redDay"`
	Count   int              `json:"count"`
	Entries []view.CellEntry `json:"entries,omitempty"`
}

// CalendarMonth renders the visible month grid. Sundays and Korean
// public holidays are flagged red. Padding cells carry no date and
// are never red.
func (c *Controller) CalendarMonth() []CalendarCell {
	c.mu.RLock()
	year, month := c.year, c.month
	reservations := c.reservations
	c.mu.RUnlock()

	todayStr := view.DateOf(c.Now())
	days := calendar.MonthDays(year, month, todayStr)

	cells := make([]CalendarCell, len(days))
	for i, d := range days {
		cell := CalendarCell{CalendarDay: d}
		if d.IsCurrentMonth {
			cell.RedDay = i%7 == 0 || calendar.IsKoreanHoliday(d.DateStr)
			cell.Count, cell.Entries = c.engine.CellPreview(reservations, d.DateStr)
		}
		cells[i] = cell
	}
	return cells
}

// DayView renders the panel for the selected date.
func (c *Controller) DayView() []view.DayEntry {
	return c.DayViewFor(c.SelectedDate())
}

// DayViewFor renders the panel for an arbitrary date.
func (c *Controller) DayViewFor(dateStr string) []view.DayEntry {
	c.mu.RLock()
	reservations := c.reservations
	c.mu.RUnlock()
	return c.engine.DayView(reservations, dateStr)
}

// Upcoming returns future reservations grouped by date, soonest
// first.
func (c *Controller) Upcoming() []view.DateGroup {
	c.mu.RLock()
	reservations := c.reservations
	c.mu.RUnlock()
	return view.GroupUpcoming(c.engine.Upcoming(reservations))
}

// TodayRemaining counts what is left of today.
func (c *Controller) TodayRemaining() int {
	c.mu.RLock()
	reservations := c.reservations
	c.mu.RUnlock()
	return c.engine.TodayRemaining(reservations)
}

// SearchResult is the full answer to one search query: matching
// reservations grouped newest first, plus ledger cross-references
// when the query is a last-4 phone lookup.
type SearchResult struct {
	Query  string            `json:"query"`
	Total  int               `json:"total"`
	Groups []view.DateGroup  `json:"groups"`
	Ledger []view.PhoneNames `json:"ledger,omitempty"`
}

// Search runs the query against the cached reservations and the
// imported ledger.
func (c *Controller) Search(query string) SearchResult {
	c.mu.RLock()
	reservations := c.reservations
	customers := c.customers
	c.mu.RUnlock()

	matched := c.engine.Search(reservations, query)
	result := SearchResult{
		Query:  query,
		Total:  len(matched),
		Groups: view.GroupSearch(matched),
		Ledger: view.LedgerMatches(customers, query),
	}

	if view.IsLastFourQuery(query) {
		metrics.IncSearch("last4")
	} else {
		metrics.IncSearch("name")
	}
	return result
}

// Create validates and persists a new reservation, then patches the
// cache. The cache is untouched when the store rejects the write.
func (c *Controller) Create(ctx context.Context, input model.ReservationInput) (model.Reservation, error) {
	if !input.HasCustomer() {
		return model.Reservation{}, ErrEmptyCustomer
	}

	created, err := c.store.CreateReservation(ctx, input)
	if err != nil {
		return model.Reservation{}, err
	}

	c.mu.Lock()
	next := make([]model.Reservation, len(c.reservations), len(c.reservations)+1)
	copy(next, c.reservations)
	c.reservations = append(next, created)
	c.mu.Unlock()

	metrics.IncReservationCreated()
	return created, nil
}

// Update validates and persists changes to a reservation, then
// patches the cache in place.
func (c *Controller) Update(ctx context.Context, id string, input model.ReservationInput) (model.Reservation, error) {
	if !input.HasCustomer() {
		return model.Reservation{}, ErrEmptyCustomer
	}

	updated, err := c.store.UpdateReservation(ctx, id, input)
	if err != nil {
		return model.Reservation{}, err
	}

	c.mu.Lock()
	next := make([]model.Reservation, len(c.reservations))
	copy(next, c.reservations)
	for i := range next {
		if next[i].ID == id {
			next[i] = updated
			break
		}
	}
	c.reservations = next
	c.mu.Unlock()

	metrics.IncReservationUpdated()
	return updated, nil
}

// Delete removes a reservation and patches the cache.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.store.DeleteReservation(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	next := make([]model.Reservation, 0, len(c.reservations))
	for _, r := range c.reservations {
		if r.ID != id {
			next = append(next, r)
		}
	}
	c.reservations = next
	c.mu.Unlock()

	metrics.IncReservationDeleted()
	return nil
}

// ServiceOptions returns the normalized service type catalog.
func (c *Controller) ServiceOptions(ctx context.Context) ([]string, error) {
	return c.store.ListServiceOptions(ctx)
}

// TimeSlots returns the bookable times for a date. On today, slots
// already in the past are dropped, except a slot explicitly kept
// (the one an existing reservation being edited sits on).
func (c *Controller) TimeSlots(dateStr, keep string) []string {
	now := c.Now()
	todayStr, nowTime := view.DateOf(now), view.TimeOf(now)

	if dateStr != todayStr {
		out := make([]string, len(c.slots))
		copy(out, c.slots)
		return out
	}

	out := make([]string, 0, len(c.slots))
	for _, s := range c.slots {
		if s >= nowTime || s == keep {
			out = append(out, s)
		}
	}
	return out
}

// Reservations returns a snapshot of the cached collection.
func (c *Controller) Reservations() []model.Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Reservation, len(c.reservations))
	copy(out, c.reservations)
	return out
}
