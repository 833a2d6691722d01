package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salonmate/internal/app"
	"salonmate/internal/export"
	"salonmate/internal/metrics"
	"salonmate/internal/model"
	"salonmate/internal/session"
	"salonmate/internal/store"
)

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// handleLogin checks the operator password and opens the session.
// POST /api/login
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("login")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	var req LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := s.ctrl.Login(r.Context(), req.Password)
	switch {
	case errors.Is(err, session.ErrTooManyAttempts):
		writeError(w, http.StatusTooManyRequests, "시도 횟수가 너무 많습니다. 잠시 후 다시 시도해주세요.")
	case errors.Is(err, session.ErrBadPassword):
		writeError(w, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다.")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "로그인 처리에 실패했습니다.")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// CalendarNavRequest is the request body for POST /api/calendar.
// Either an action or an explicit year/month pair.
type CalendarNavRequest struct {
	Action string `json:"action,omitempty"` // "prev", "next" or "today"
	Year   *int   `json:"year,omitempty"`
	Month  *int   `json:"month,omitempty"` // zero-based
}

// CalendarResponse is the month grid with its coordinates.
type CalendarResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Cells []app.CalendarCell `json:"cells"`
}

// handleCalendar serves the month grid.
// GET /api/calendar, POST /api/calendar to navigate
func (s *HTTPServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("calendar")

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		var req CalendarNavRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		switch {
		case req.Action == "prev":
			s.ctrl.NavigateMonth(-1)
		case req.Action == "next":
			s.ctrl.NavigateMonth(1)
		case req.Action == "today":
			s.ctrl.GoToToday()
		case req.Year != nil && req.Month != nil:
			s.ctrl.SetMonth(*req.Year, *req.Month)
		default:
			writeError(w, http.StatusBadRequest, "action or year/month required")
			return
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month := s.ctrl.VisibleMonth()
	writeJSON(w, http.StatusOK, CalendarResponse{
		Year:  year,
		Month: month,
		Cells: s.ctrl.CalendarMonth(),
	})
}

// SelectDateRequest is the request body for POST /api/day.
type SelectDateRequest struct {
	Date string `json:"date"`
}

// handleDay serves the full panel for one date. GET reads without
// touching the selection; POST moves the selection, the gesture of
// clicking a calendar cell.
// GET /api/day?date=YYYY-MM-DD, POST /api/day
func (s *HTTPServer) handleDay(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("day")

	var dateStr string
	switch r.Method {
	case http.MethodGet:
		dateStr = r.URL.Query().Get("date")
		if dateStr == "" {
			dateStr = s.ctrl.SelectedDate()
		}
	case http.MethodPost:
		var req SelectDateRequest
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		dateStr = req.Date
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}
	if r.Method == http.MethodPost {
		s.ctrl.SelectDate(dateStr)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":         dateStr,
		"reservations": s.ctrl.DayViewFor(dateStr),
	})
}

// handleUpcoming serves the grouped future reservations and the
// today-remaining badge count.
// GET /api/upcoming
func (s *HTTPServer) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("upcoming")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups":         s.ctrl.Upcoming(),
		"todayRemaining": s.ctrl.TodayRemaining(),
	})
}

// handleSearch serves customer search results.
// GET /api/search?q=query
func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("search")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.ctrl.Search(r.URL.Query().Get("q")))
}

// handleReservations creates a reservation.
// POST /api/reservations
func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("reservations")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	input, ok := decodeReservationInput(w, r)
	if !ok {
		return
	}

	created, err := s.ctrl.Create(r.Context(), input)
	switch {
	case errors.Is(err, app.ErrEmptyCustomer):
		writeError(w, http.StatusBadRequest, "고객명 또는 전화번호 중 하나는 반드시 입력해야 합니다.")
	case err != nil:
		s.logger.Error().Err(err).Msg("create reservation failed")
		writeError(w, http.StatusInternalServerError, "저장 실패")
	default:
		writeJSON(w, http.StatusCreated, created)
	}
}

// handleReservationByID updates or deletes one reservation.
// PUT /api/reservations/{id}, DELETE /api/reservations/{id}
func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("reservation_by_id")

	id := strings.TrimPrefix(r.URL.Path, "/api/reservations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}

	switch r.Method {
	case http.MethodPut:
		input, ok := decodeReservationInput(w, r)
		if !ok {
			return
		}
		updated, err := s.ctrl.Update(r.Context(), id, input)
		switch {
		case errors.Is(err, app.ErrEmptyCustomer):
			writeError(w, http.StatusBadRequest, "고객명 또는 전화번호 중 하나는 반드시 입력해야 합니다.")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusInternalServerError, "저장 실패")
		case err != nil:
			s.logger.Error().Err(err).Str("id", id).Msg("update reservation failed")
			writeError(w, http.StatusInternalServerError, "저장 실패")
		default:
			writeJSON(w, http.StatusOK, updated)
		}

	case http.MethodDelete:
		if err := s.ctrl.Delete(r.Context(), id); err != nil {
			s.logger.Error().Err(err).Str("id", id).Msg("delete reservation failed")
			writeError(w, http.StatusInternalServerError, "삭제 실패")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleRefresh reloads reservations and the ledger.
// POST /api/refresh
func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("refresh")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}
	if err := s.ctrl.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "데이터를 불러오지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleOptions serves the service type catalog.
// GET /api/options
func (s *HTTPServer) handleOptions(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("options")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	options, err := s.ctrl.ServiceOptions(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("list service options failed")
		writeError(w, http.StatusInternalServerError, "옵션을 불러오지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"options": options})
}

// handleSlots serves the bookable time slots for a date.
// GET /api/slots?date=YYYY-MM-DD&keep=HH:MM
func (s *HTTPServer) handleSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("slots")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = s.ctrl.SelectedDate()
	}
	slots := s.ctrl.TimeSlots(dateStr, r.URL.Query().Get("keep"))
	writeJSON(w, http.StatusOK, map[string]any{"date": dateStr, "slots": slots})
}

// handleExport streams the reservation book as an Excel workbook.
// GET /api/export
func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTPRequest("export")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writer := export.NewExcelWriter()
	data, err := writer.WriteReservations(s.ctrl.Reservations())
	if err != nil {
		s.logger.Error().Err(err).Msg("export failed")
		writeError(w, http.StatusInternalServerError, "내보내기에 실패했습니다.")
		return
	}

	filename := fmt.Sprintf("reservations_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func decodeReservationInput(w http.ResponseWriter, r *http.Request) (model.ReservationInput, bool) {
	var input model.ReservationInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return model.ReservationInput{}, false
	}
	return input, true
}
