package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/attendance"
)

// fakeAttendanceService returns canned results so the tests exercise only the
// HTTP surface: decoding, identity extraction and error mapping.
type fakeAttendanceService struct {
	checkInResult attendance.AttendanceResponse
	checkInErr    error
	lastCheckIn   attendance.CheckInRequest
	dayStatus     attendance.DayStatus
}

func (f *fakeAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	f.lastCheckIn = req
	if f.checkInErr != nil {
		return attendance.AttendanceResponse{}, f.checkInErr
	}
	return f.checkInResult, nil
}

func (f *fakeAttendanceService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) GetTodayStatus(ctx context.Context, userID string) (attendance.DayStatusResponse, error) {
	return attendance.DayStatusResponse{UserID: userID, Date: "2026-03-02", Status: f.dayStatus}, nil
}

func (f *fakeAttendanceService) ResolveDayStatus(ctx context.Context, userID string, day time.Time) (attendance.DayStatus, error) {
	return f.dayStatus, nil
}

func (f *fakeAttendanceService) ListMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{Page: filter.Page, Limit: filter.Limit, Attendances: []attendance.AttendanceResponse{}}, nil
}

func (f *fakeAttendanceService) RunAutoCheckout(ctx context.Context, now time.Time) (attendance.AutoCheckoutResult, error) {
	return attendance.AutoCheckoutResult{AffectedIDs: []string{}}, nil
}

func authedRequest(t *testing.T, method, target string, body []byte, userID string) *http.Request {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestCheckInHandler_Created(t *testing.T) {
	svc := &fakeAttendanceService{
		checkInResult: attendance.AttendanceResponse{
			ID:     "att-1",
			UserID: "user-1",
			Date:   "2026-03-02",
			Status: attendance.StatusPresent,
		},
	}
	handler := NewAttendanceHandler(svc, time.UTC)

	body := []byte(`{"latitude":-6.2,"longitude":106.816666}`)
	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body, "user-1")
	rec := httptest.NewRecorder()

	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	// The user id must come from the token, never from the body.
	assert.Equal(t, "user-1", svc.lastCheckIn.UserID)
	assert.Equal(t, -6.2, svc.lastCheckIn.Latitude)
}

func TestCheckInHandler_MapsDomainErrorToStableCode(t *testing.T) {
	svc := &fakeAttendanceService{checkInErr: attendance.ErrAlreadyCheckedIn}
	handler := NewAttendanceHandler(svc, time.UTC)

	body := []byte(`{"latitude":-6.2,"longitude":106.816666}`)
	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body, "user-1")
	rec := httptest.NewRecorder()

	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	errDetail, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ALREADY_CHECKED_IN", errDetail["code"])
}

func TestCheckInHandler_OutOfGeofenceCode(t *testing.T) {
	svc := &fakeAttendanceService{checkInErr: attendance.ErrOutOfGeofence}
	handler := NewAttendanceHandler(svc, time.UTC)

	body := []byte(`{"latitude":0,"longitude":0}`)
	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", body, "user-1")
	rec := httptest.NewRecorder()

	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	errDetail, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "OUT_OF_GEOFENCE", errDetail["code"])
}

func TestCheckInHandler_MalformedBody(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := authedRequest(t, http.MethodPost, "/api/v1/attendance/check-in", []byte(`{not json`), "user-1")
	rec := httptest.NewRecorder()

	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckInHandler_MissingIdentity(t *testing.T) {
	svc := &fakeAttendanceService{}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-in", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetTodayStatusHandler(t *testing.T) {
	svc := &fakeAttendanceService{dayStatus: attendance.DayStatusWFH}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := authedRequest(t, http.MethodGet, "/api/v1/attendance/today", nil, "user-1")
	rec := httptest.NewRecorder()

	handler.GetTodayStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "WFH", data["status"])
}

func TestGetUserDayStatusHandler_RequiresUserID(t *testing.T) {
	svc := &fakeAttendanceService{dayStatus: attendance.DayStatusAbsent}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := authedRequest(t, http.MethodGet, "/api/v1/attendance/day-status?date=2026-03-01", nil, "admin-1")
	rec := httptest.NewRecorder()

	handler.GetUserDayStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserDayStatusHandler_ResolvesRequestedUser(t *testing.T) {
	svc := &fakeAttendanceService{dayStatus: attendance.DayStatusAbsent}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := authedRequest(t, http.MethodGet, "/api/v1/attendance/day-status?user_id=user-9&date=2026-03-01", nil, "admin-1")
	rec := httptest.NewRecorder()

	handler.GetUserDayStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user-9", data["user_id"])
	assert.Equal(t, "ABSENT", data["status"])
}

func TestGetDayStatusHandler_RejectsBadDate(t *testing.T) {
	svc := &fakeAttendanceService{dayStatus: attendance.DayStatusNone}
	handler := NewAttendanceHandler(svc, time.UTC)

	req := authedRequest(t, http.MethodGet, "/api/v1/attendance/status?date=02-03-2026", nil, "user-1")
	rec := httptest.NewRecorder()

	handler.GetDayStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
