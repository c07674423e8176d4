package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/holiday"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/leave"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/notification"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/geo"
)

// Cutoff is a wall-clock time of day ("HH:MM") evaluated in the office
// timezone.
type Cutoff struct {
	Hour   int
	Minute int
}

// ParseCutoff parses an "HH:MM" string.
func ParseCutoff(s string) (Cutoff, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Cutoff{}, fmt.Errorf("invalid cutoff %q: %w", s, err)
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On returns the cutoff instant on the same calendar day as t, in t's
// location.
func (c Cutoff) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	remoteWorkRepo remotework.Repository
	leaveRepo      leave.Repository
	officeService  office.Service
	calendar       holiday.Calendar
	sink           notification.Sink

	loc                *time.Location
	lateCutoff         Cutoff
	autoCheckoutCutoff Cutoff

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	remoteWorkRepo remotework.Repository,
	leaveRepo leave.Repository,
	officeService office.Service,
	calendar holiday.Calendar,
	sink notification.Sink,
	loc *time.Location,
	lateCutoff Cutoff,
	autoCheckoutCutoff Cutoff,
) attendance.Service {
	return &ServiceImpl{
		attendanceRepo:     attendanceRepo,
		remoteWorkRepo:     remoteWorkRepo,
		leaveRepo:          leaveRepo,
		officeService:      officeService,
		calendar:           calendar,
		sink:               sink,
		loc:                loc,
		lateCutoff:         lateCutoff,
		autoCheckoutCutoff: autoCheckoutCutoff,
		now:                time.Now,
	}
}

// startOfDay normalizes t to midnight of its calendar day in the office
// timezone. Every (user, day) lookup goes through this.
func (s *ServiceImpl) startOfDay(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// classifyCheckIn labels a check-in PRESENT or LATE against the late cutoff.
// Exactly at the cutoff is PRESENT (non-strict).
func (s *ServiceImpl) classifyCheckIn(t time.Time) attendance.Status {
	local := t.In(s.loc)
	if local.After(s.lateCutoff.On(local)) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := s.startOfDay(now)

	h, err := s.calendar.IsHoliday(ctx, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check holiday calendar: %w", err)
	}
	if h.IsHoliday {
		return attendance.AttendanceResponse{}, attendance.ErrHoliday
	}

	existing, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	activeLog, err := s.remoteWorkRepo.GetActiveByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check remote work logs: %w", err)
	}
	if activeLog != nil {
		return attendance.AttendanceResponse{}, attendance.ErrConflictingRemoteWork
	}

	loc, err := s.officeService.GetActive(ctx)
	if err != nil {
		if errors.Is(err, office.ErrLocationNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoOfficeConfigured
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get office location: %w", err)
	}

	check, err := geo.Check(req.Latitude, req.Longitude, loc.Latitude, loc.Longitude, loc.RadiusMeters)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !check.WithinRadius {
		return attendance.AttendanceResponse{}, attendance.ErrOutOfGeofence
	}

	status := s.classifyCheckIn(now)
	notes := req.Notes
	if status == attendance.StatusLate {
		notes = appendNote(notes, "late check-in")
	}

	data := attendance.Attendance{
		UserID:           req.UserID,
		Date:             today,
		CheckInTime:      &now,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		Status:           status,
		Notes:            notes,
	}

	created, err := s.attendanceRepo.Create(ctx, data)
	if err != nil {
		// A concurrent check-in may have won the unique-constraint race.
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: req.UserID,
		Type:        notification.TypeAttendanceCheckedIn,
		Title:       "Checked in",
		Message:     fmt.Sprintf("Checked in at %s (%s)", now.In(s.loc).Format("15:04"), status),
		Data: map[string]interface{}{
			"attendance_id": created.ID,
			"date":          today.Format("2006-01-02"),
			"status":        string(status),
		},
	})

	return s.toResponse(created), nil
}

// CheckOut implements attendance.Service.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := s.startOfDay(now)

	att, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if att == nil || att.CheckInTime == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if att.CheckOutTime != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	att.CheckOutTime = &now
	if req.Latitude != nil {
		att.CheckOutLatitude = req.Latitude
	}
	if req.Longitude != nil {
		att.CheckOutLongitude = req.Longitude
	}

	if err := s.attendanceRepo.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	_ = s.sink.Emit(ctx, notification.Event{
		RecipientID: req.UserID,
		Type:        notification.TypeAttendanceCheckedOut,
		Title:       "Checked out",
		Message:     fmt.Sprintf("Checked out at %s", now.In(s.loc).Format("15:04")),
		Data: map[string]interface{}{
			"attendance_id": att.ID,
			"date":          today.Format("2006-01-02"),
		},
	})

	return s.toResponse(*att), nil
}

// GetTodayStatus implements attendance.Service.
func (s *ServiceImpl) GetTodayStatus(ctx context.Context, userID string) (attendance.DayStatusResponse, error) {
	now := s.now()
	status, err := s.ResolveDayStatus(ctx, userID, now)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}
	return attendance.DayStatusResponse{
		UserID: userID,
		Date:   s.startOfDay(now).Format("2006-01-02"),
		Status: status,
	}, nil
}

// ListMyAttendance implements attendance.Service.
func (s *ServiceImpl) ListMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	rows, total, err := s.attendanceRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, att := range rows {
		responses = append(responses, s.toResponse(att))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}, nil
}

func (s *ServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		UserID:            att.UserID,
		UserName:          att.UserName,
		Date:              att.Date.Format("2006-01-02"),
		CheckInTime:       timePtrToString(att.CheckInTime, s.loc),
		CheckOutTime:      timePtrToString(att.CheckOutTime, s.loc),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		Status:            att.Status,
		Notes:             att.Notes,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format("2006-01-02 15:04:05")
	return &format
}

func appendNote(existing *string, note string) *string {
	if existing == nil || *existing == "" {
		return &note
	}
	combined := *existing + "; " + note
	return &combined
}
