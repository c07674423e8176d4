package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/holiday"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/leave"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/notification"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
)

const (
	testUserID = "user-1"

	// Office center used by every geofence test.
	testOfficeLat = -6.200000
	testOfficeLon = 106.816666
)

func dayKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

// fakeAttendanceRepo is an in-memory attendance.Repository keyed by
// (user, day), mirroring the unique constraint the real table enforces.
type fakeAttendanceRepo struct {
	rows      map[string]*attendance.Attendance
	nextID    int
	updateErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey(att.UserID, att.Date)
	if _, exists := f.rows[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	stored := att
	f.rows[key] = &stored
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, row := range f.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	row, ok := f.rows[dayKey(userID, date)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for key, row := range f.rows {
		if row.ID == att.ID {
			stored := att
			f.rows[key] = &stored
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	var result []attendance.Attendance
	for _, row := range f.rows {
		if row.UserID == userID {
			result = append(result, *row)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceRepo) ListOpenSessions(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for _, row := range f.rows {
		if row.Date.Equal(date) && row.CheckInTime != nil && row.CheckOutTime == nil {
			result = append(result, *row)
		}
	}
	return result, nil
}

// fakeRemoteWorkRepo covers only the lookup the attendance engine performs.
type fakeRemoteWorkRepo struct {
	active map[string]*remotework.Log
}

func newFakeRemoteWorkRepo() *fakeRemoteWorkRepo {
	return &fakeRemoteWorkRepo{active: make(map[string]*remotework.Log)}
}

func (f *fakeRemoteWorkRepo) setActive(userID string, date time.Time, status remotework.Status) {
	f.active[dayKey(userID, date)] = &remotework.Log{
		ID:      "log-" + dayKey(userID, date),
		UserID:  userID,
		LogDate: date,
		Status:  status,
	}
}

func (f *fakeRemoteWorkRepo) Create(ctx context.Context, log remotework.Log) (remotework.Log, error) {
	return log, nil
}

func (f *fakeRemoteWorkRepo) GetByID(ctx context.Context, id string) (remotework.Log, error) {
	return remotework.Log{}, remotework.ErrLogNotFound
}

func (f *fakeRemoteWorkRepo) GetActiveByUserAndDate(ctx context.Context, userID string, date time.Time) (*remotework.Log, error) {
	log, ok := f.active[dayKey(userID, date)]
	if !ok {
		return nil, nil
	}
	copied := *log
	return &copied, nil
}

func (f *fakeRemoteWorkRepo) Update(ctx context.Context, log remotework.Log) error { return nil }

func (f *fakeRemoteWorkRepo) ListByUser(ctx context.Context, userID string) ([]remotework.Log, error) {
	return nil, nil
}

func (f *fakeRemoteWorkRepo) ListPending(ctx context.Context) ([]remotework.Log, error) {
	return nil, nil
}

func (f *fakeRemoteWorkRepo) ListExpiredPending(ctx context.Context, startOfDay time.Time) ([]remotework.Log, error) {
	return nil, nil
}

func (f *fakeRemoteWorkRepo) CountStats(ctx context.Context, startOfDay, recentSince time.Time) (remotework.PendingStats, error) {
	return remotework.PendingStats{}, nil
}

// fakeLeaveRepo covers only GetApprovedCovering.
type fakeLeaveRepo struct {
	requests []leave.Request
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	return leave.Request{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) Update(ctx context.Context, req leave.Request) error { return nil }

func (f *fakeLeaveRepo) GetApprovedCovering(ctx context.Context, userID string, day time.Time) (*leave.Request, error) {
	for _, req := range f.requests {
		if req.UserID == userID && req.Status == leave.StatusApproved && req.Covers(day) {
			copied := req
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) HasOverlapping(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	return false, nil
}

func (f *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListPending(ctx context.Context) ([]leave.Request, error) {
	return nil, nil
}

type fakeOfficeService struct {
	loc office.Location
	err error
}

func (f *fakeOfficeService) GetActive(ctx context.Context) (office.Location, error) {
	if f.err != nil {
		return office.Location{}, f.err
	}
	return f.loc, nil
}

func (f *fakeOfficeService) Upsert(ctx context.Context, req office.UpsertLocationRequest) (office.LocationResponse, error) {
	return office.LocationResponse{}, nil
}

type fakeCalendar struct {
	holidays map[string]string
}

func (f *fakeCalendar) IsHoliday(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	name, ok := f.holidays[date.Format("2006-01-02")]
	if !ok {
		return holiday.Holiday{}, nil
	}
	return holiday.Holiday{IsHoliday: true, Name: &name}, nil
}

type recordingSink struct {
	events []notification.Event
}

func (r *recordingSink) Emit(ctx context.Context, event notification.Event) error {
	r.events = append(r.events, event)
	return nil
}

type attendanceFixture struct {
	svc       *ServiceImpl
	attRepo   *fakeAttendanceRepo
	rwRepo    *fakeRemoteWorkRepo
	leaveRepo *fakeLeaveRepo
	office    *fakeOfficeService
	calendar  *fakeCalendar
	sink      *recordingSink
	loc       *time.Location
}

func newAttendanceFixture(t *testing.T, now time.Time) *attendanceFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	f := &attendanceFixture{
		attRepo:   newFakeAttendanceRepo(),
		rwRepo:    newFakeRemoteWorkRepo(),
		leaveRepo: &fakeLeaveRepo{},
		office: &fakeOfficeService{loc: office.Location{
			ID:           "office-1",
			Name:         "HQ",
			Latitude:     testOfficeLat,
			Longitude:    testOfficeLon,
			RadiusMeters: 100,
			IsActive:     true,
		}},
		calendar: &fakeCalendar{holidays: make(map[string]string)},
		sink:     &recordingSink{},
		loc:      loc,
	}

	lateCutoff, err := ParseCutoff("10:00")
	require.NoError(t, err)
	autoCutoff, err := ParseCutoff("17:00")
	require.NoError(t, err)

	f.svc = &ServiceImpl{
		attendanceRepo:     f.attRepo,
		remoteWorkRepo:     f.rwRepo,
		leaveRepo:          f.leaveRepo,
		officeService:      f.office,
		calendar:           f.calendar,
		sink:               f.sink,
		loc:                loc,
		lateCutoff:         lateCutoff,
		autoCheckoutCutoff: autoCutoff,
		now:                func() time.Time { return now },
	}
	return f
}

func (f *attendanceFixture) at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, hour, minute, 0, 0, f.loc)
}

func (f *attendanceFixture) today(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, 0, 0, 0, 0, f.loc)
}

func checkInAtOffice() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		UserID:    testUserID,
		Latitude:  testOfficeLat,
		Longitude: testOfficeLon,
	}
}

func TestCheckIn_BeforeCutoffIsPresent(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	now := f.at(t, 9, 0)
	f.svc.now = func() time.Time { return now }

	resp, err := f.svc.CheckIn(ctx, checkInAtOffice())

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	require.NotNil(t, resp.CheckInTime)

	row, err := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, attendance.StatusPresent, row.Status)
	require.NotNil(t, row.CheckInTime)
	assert.True(t, row.CheckInTime.Equal(now))

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, notification.TypeAttendanceCheckedIn, f.sink.events[0].Type)
	assert.Equal(t, testUserID, f.sink.events[0].RecipientID)
}

func TestCheckIn_ExactlyAtCutoffIsPresent(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 10, 0) }

	resp, err := f.svc.CheckIn(ctx, checkInAtOffice())

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
}

func TestCheckIn_AfterCutoffIsLate(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 10, 1) }

	resp, err := f.svc.CheckIn(ctx, checkInAtOffice())

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "late check-in")
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, checkInAtOffice())
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_BlockedByActiveRemoteWork(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }
	f.rwRepo.setActive(testUserID, f.today(t), remotework.StatusPending)

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())

	assert.ErrorIs(t, err, attendance.ErrConflictingRemoteWork)
	row, _ := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	assert.Nil(t, row)
}

func TestCheckIn_Holiday(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }
	f.calendar.holidays["2026-03-02"] = "Company Anniversary"

	// Guard order: the holiday verdict wins even from outside the geofence.
	req := checkInAtOffice()
	req.Latitude = testOfficeLat + 0.01

	_, err := f.svc.CheckIn(ctx, req)

	assert.ErrorIs(t, err, attendance.ErrHoliday)
}

func TestCheckIn_NoOfficeConfigured(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }
	f.office.err = office.ErrLocationNotFound

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())

	assert.ErrorIs(t, err, attendance.ErrNoOfficeConfigured)
}

func TestCheckIn_OutOfGeofence(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	req := checkInAtOffice()
	// Roughly 1.1 km north of the office center, far outside the 100 m radius.
	req.Latitude = testOfficeLat + 0.01

	_, err := f.svc.CheckIn(ctx, req)

	assert.ErrorIs(t, err, attendance.ErrOutOfGeofence)
	row, _ := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	assert.Nil(t, row)
}

func TestCheckIn_InvalidCoordinates(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	req := checkInAtOffice()
	req.Latitude = 120

	_, err := f.svc.CheckIn(ctx, req)
	assert.Error(t, err)
}

func TestCheckOut_Success(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	checkoutAt := f.at(t, 17, 30)
	f.svc.now = func() time.Time { return checkoutAt }

	resp, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{UserID: testUserID})

	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)

	row, err := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	require.NoError(t, err)
	require.NotNil(t, row)
	require.NotNil(t, row.CheckOutTime)
	assert.True(t, row.CheckOutTime.Equal(checkoutAt))
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 17, 0) }

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{UserID: testUserID})

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	f.svc.now = func() time.Time { return f.at(t, 17, 0) }
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{UserID: testUserID})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{UserID: testUserID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestResolveDayStatus_AttendanceRowWins(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }
	today := f.today(t)

	// Approved leave and an approved remote log both cover today, but the
	// attendance row takes precedence over either.
	f.leaveRepo.requests = append(f.leaveRepo.requests, leave.Request{
		ID: "leave-1", UserID: testUserID, Status: leave.StatusApproved,
		StartDate: today, EndDate: today,
	})
	f.rwRepo.setActive(testUserID, today, remotework.StatusApproved)

	checkIn := f.at(t, 9, 0)
	_, err := f.attRepo.Create(ctx, attendance.Attendance{
		UserID:      testUserID,
		Date:        today,
		CheckInTime: &checkIn,
		Status:      attendance.StatusPresent,
	})
	require.NoError(t, err)

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusPresent, status)
}

func TestResolveDayStatus_ApprovedLeaveBeatsRemoteWork(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }
	today := f.today(t)

	f.leaveRepo.requests = append(f.leaveRepo.requests, leave.Request{
		ID: "leave-1", UserID: testUserID, Status: leave.StatusApproved,
		StartDate: today.AddDate(0, 0, -1), EndDate: today.AddDate(0, 0, 1),
	})
	f.rwRepo.setActive(testUserID, today, remotework.StatusApproved)

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusLeave, status)
}

func TestResolveDayStatus_ApprovedRemoteWork(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }
	today := f.today(t)

	f.rwRepo.setActive(testUserID, today, remotework.StatusApproved)

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, today)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusWFH, status)
}

func TestResolveDayStatus_PendingRemoteWorkDoesNotCount(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }
	yesterday := f.today(t).AddDate(0, 0, -1)

	f.rwRepo.setActive(testUserID, yesterday, remotework.StatusPending)

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, yesterday)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusAbsent, status)
}

func TestResolveDayStatus_UnrecordedPastDayIsAbsent(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, f.today(t).AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusAbsent, status)
}

func TestResolveDayStatus_UnrecordedTodayIsNone(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, f.today(t))
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusNone, status)
}

func TestResolveDayStatus_UnrecordedFutureDayIsNone(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 12, 0) }

	status, err := f.svc.ResolveDayStatus(ctx, testUserID, f.today(t).AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStatusNone, status)
}

func TestRunAutoCheckout_BeforeCutoffIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	result, err := f.svc.RunAutoCheckout(ctx, f.at(t, 16, 59))

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.AffectedIDs)

	row, _ := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	require.NotNil(t, row)
	assert.Nil(t, row.CheckOutTime)
}

func TestRunAutoCheckout_ClosesOpenSessionsAtCutoff(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	// A second user already checked out manually; the job must leave them
	// alone.
	other := f.at(t, 8, 30)
	otherOut := f.at(t, 16, 0)
	_, err = f.attRepo.Create(ctx, attendance.Attendance{
		UserID:       "user-2",
		Date:         f.today(t),
		CheckInTime:  &other,
		CheckOutTime: &otherOut,
		Status:       attendance.StatusPresent,
	})
	require.NoError(t, err)

	result, err := f.svc.RunAutoCheckout(ctx, f.at(t, 17, 5))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	require.Len(t, result.AffectedIDs, 1)

	row, _ := f.attRepo.GetByUserAndDate(ctx, testUserID, f.today(t))
	require.NotNil(t, row)
	require.NotNil(t, row.CheckOutTime)
	assert.Equal(t, "17:00", row.CheckOutTime.In(f.loc).Format("15:04"))
	require.NotNil(t, row.Notes)
	assert.Contains(t, *row.Notes, "auto check-out")
}

func TestRunAutoCheckout_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newAttendanceFixture(t, time.Time{})
	f.svc.now = func() time.Time { return f.at(t, 9, 0) }

	_, err := f.svc.CheckIn(ctx, checkInAtOffice())
	require.NoError(t, err)

	first, err := f.svc.RunAutoCheckout(ctx, f.at(t, 17, 5))
	require.NoError(t, err)
	require.Equal(t, 1, first.Count)

	second, err := f.svc.RunAutoCheckout(ctx, f.at(t, 17, 20))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Count)
}

func TestParseCutoff(t *testing.T) {
	c, err := ParseCutoff("10:30")
	require.NoError(t, err)
	assert.Equal(t, 10, c.Hour)
	assert.Equal(t, 30, c.Minute)

	_, err = ParseCutoff("25:00")
	assert.Error(t, err)

	_, err = ParseCutoff("not-a-time")
	assert.Error(t, err)
}
