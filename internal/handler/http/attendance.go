package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/auth"
	"github.com/timegrid-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetTodayStatus(w http.ResponseWriter, r *http.Request)
	GetDayStatus(w http.ResponseWriter, r *http.Request)
	GetUserDayStatus(w http.ResponseWriter, r *http.Request)
	ListMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.Service, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req attendance.CheckOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTodayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTodayStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.attendanceService.GetTodayStatus(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDayStatus implements AttendanceHandler. The date query parameter selects
// the day to resolve, today when absent.
func (h *attendanceHandlerImpl) GetDayStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		result, err := h.attendanceService.GetTodayStatus(r.Context(), userID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, result)
		return
	}

	parsed, valid := validator.IsValidDate(dateParam)
	if !valid {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.loc)

	status, err := h.attendanceService.ResolveDayStatus(r.Context(), userID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.DayStatusResponse{
		UserID: userID,
		Date:   day.Format("2006-01-02"),
		Status: status,
	})
}

// GetUserDayStatus implements AttendanceHandler. Admin-only lookup of any
// user's resolved status for a day.
func (h *attendanceHandlerImpl) GetUserDayStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID := q.Get("user_id")
	if userID == "" {
		response.BadRequest(w, "user_id is required", nil)
		return
	}

	day := time.Now().In(h.loc)
	if dateParam := q.Get("date"); dateParam != "" {
		parsed, valid := validator.IsValidDate(dateParam)
		if !valid {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		day = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, h.loc)
	}

	status, err := h.attendanceService.ResolveDayStatus(r.Context(), userID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.DayStatusResponse{
		UserID: userID,
		Date:   day.In(h.loc).Format("2006-01-02"),
		Status: status,
	})
}

// ListMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMyAttendance(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	filter := attendance.MyAttendanceFilter{}
	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	result, err := h.attendanceService.ListMyAttendance(r.Context(), userID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
