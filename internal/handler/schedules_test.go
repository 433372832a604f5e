package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/stretchr/testify/require"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

type fakeWeeklyRepo struct {
	nextID    int64
	schedules []*domain.WeeklySchedule
}

func (f *fakeWeeklyRepo) InsertWeeklySchedule(ws *domain.WeeklySchedule) error {
	f.nextID++
	ws.ID = f.nextID
	f.schedules = append(f.schedules, ws)
	return nil
}

func (f *fakeWeeklyRepo) UpdateWeeklySchedule(ws *domain.WeeklySchedule) error {
	for i, existing := range f.schedules {
		if existing.ID == ws.ID {
			f.schedules[i] = ws
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeWeeklyRepo) DeleteWeeklySchedule(id int64) (int64, error) {
	for i, existing := range f.schedules {
		if existing.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeWeeklyRepo) GetWeeklyScheduleByID(id int64) (*domain.WeeklySchedule, error) {
	for _, existing := range f.schedules {
		if existing.ID == id {
			return existing, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeWeeklyRepo) GetWeeklySchedulesByStaff(staffID int64) ([]*domain.WeeklySchedule, error) {
	result := make([]*domain.WeeklySchedule, 0)
	for _, existing := range f.schedules {
		if existing.StaffID == staffID {
			result = append(result, existing)
		}
	}
	return result, nil
}

func (f *fakeWeeklyRepo) GetWeeklySchedulesByStaffAndDay(staffID int64, dayOfWeek int32) ([]*domain.WeeklySchedule, error) {
	result := make([]*domain.WeeklySchedule, 0)
	for _, existing := range f.schedules {
		if existing.StaffID == staffID && existing.DayOfWeek == dayOfWeek {
			result = append(result, existing)
		}
	}
	return result, nil
}

func newTestHandler(t *testing.T, repo schedule.WeeklyScheduleRepository) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	trans, _ := uni.GetTranslator("zh")
	require.NoError(t, zh_translations.RegisterDefaultTranslations(validate, trans))

	return &Handler{
		validate:    validate,
		translator:  trans,
		weeklyStore: schedule.NewWeeklyScheduleStore(repo),
	}
}

func newStaffScheduleRequest(method string, body string, staff *domain.Staff, scheduleID string) *http.Request {
	req := httptest.NewRequest(method, "/staff/2/schedule/"+scheduleID, strings.NewReader(body))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("scheduleID", scheduleID)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, StaffInfoCtx, staff)
	return req.WithContext(ctx)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// 店长通过 /staff/{id}/schedule 更新时不能把别的员工的记录改挂到该员工名下
func TestUpdateStaffScheduleRejectsOtherStaffRecord(t *testing.T) {
	repo := &fakeWeeklyRepo{}
	h := newTestHandler(t, repo)

	owner, err := h.weeklyStore.Create(1, 0, mustTestInterval(t, "09:00", "10:00"))
	require.NoError(t, err)

	body := `{"dayOfWeek": 2, "startTime": "14:00", "endTime": "16:00"}`
	req := newStaffScheduleRequest(http.MethodPatch, body, &domain.Staff{ID: 2}, "1")
	rec := httptest.NewRecorder()

	h.UpdateStaffSchedule(rec, req)

	resp := decodeResponse(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "班表记录不存在", resp.Message)

	// 记录保持原样，没有被改到员工 2 名下
	unchanged, err := repo.GetWeeklyScheduleByID(owner.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unchanged.StaffID)
	require.Equal(t, "09:00", unchanged.StartTime)
}

func TestDeleteStaffScheduleRejectsOtherStaffRecord(t *testing.T) {
	repo := &fakeWeeklyRepo{}
	h := newTestHandler(t, repo)

	owner, err := h.weeklyStore.Create(1, 0, mustTestInterval(t, "09:00", "10:00"))
	require.NoError(t, err)

	req := newStaffScheduleRequest(http.MethodDelete, "", &domain.Staff{ID: 2}, "1")
	rec := httptest.NewRecorder()

	h.DeleteStaffSchedule(rec, req)

	resp := decodeResponse(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "班表记录不存在", resp.Message)

	_, err = repo.GetWeeklyScheduleByID(owner.ID)
	require.NoError(t, err)
}

func TestUpdateStaffScheduleOwnRecord(t *testing.T) {
	repo := &fakeWeeklyRepo{}
	h := newTestHandler(t, repo)

	owner, err := h.weeklyStore.Create(2, 0, mustTestInterval(t, "09:00", "10:00"))
	require.NoError(t, err)

	body := `{"dayOfWeek": 2, "startTime": "14:00", "endTime": "16:00"}`
	req := newStaffScheduleRequest(http.MethodPatch, body, &domain.Staff{ID: 2}, "1")
	rec := httptest.NewRecorder()

	h.UpdateStaffSchedule(rec, req)

	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)

	updated, err := repo.GetWeeklyScheduleByID(owner.ID)
	require.NoError(t, err)
	require.Equal(t, int32(2), updated.DayOfWeek)
	require.Equal(t, "14:00", updated.StartTime)
	require.Equal(t, "16:00", updated.EndTime)
}

func mustTestInterval(t *testing.T, start, end string) schedule.Interval {
	t.Helper()
	interval, err := schedule.ParseInterval(start, end)
	require.NoError(t, err)
	return interval
}
