package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/holiday"
	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByYear(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayRepo holiday.Repository
	loc         *time.Location
}

func NewHolidayHandler(holidayRepo holiday.Repository, loc *time.Location) HolidayHandler {
	return &holidayHandlerImpl{holidayRepo: holidayRepo, loc: loc}
}

type createHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req createHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	parsed, valid := validator.IsValidDate(req.Date)
	if !valid {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}
	if validator.IsEmpty(req.Name) {
		response.BadRequest(w, "name is required", nil)
		return
	}

	date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.loc)

	entry, err := h.holidayRepo.Create(r.Context(), date, req.Name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday saved", entry)
}

// ListByYear implements HolidayHandler.
func (h *holidayHandlerImpl) ListByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1970 {
		year = time.Now().In(h.loc).Year()
	}

	entries, err := h.holidayRepo.ListByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
