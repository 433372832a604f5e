package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

func intervalPtr(t *testing.T, start, end string) *schedule.Interval {
	t.Helper()

	interval := mustInterval(t, start, end)
	return &interval
}

func TestExceptionStoreCreate(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	e, err := store.Create(1, "2024-03-04", false, intervalPtr(t, "12:00", "13:00"), domain.CauseBreak, "午休")
	require.NoError(t, err)
	require.NotZero(t, e.ID)
	require.Equal(t, "2024-03-04", e.Date)
	require.False(t, e.AllDay)
	require.Equal(t, "12:00", *e.StartTime)
	require.Equal(t, "13:00", *e.EndTime)
	require.Equal(t, domain.CauseBreak, e.Cause)

	allDay, err := store.Create(1, "2024-03-05", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)
	require.True(t, allDay.AllDay)
	require.Nil(t, allDay.StartTime)
	require.Nil(t, allDay.EndTime)
}

func TestExceptionStoreCreateValidation(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	// 非全天例外必须带时间段
	_, err := store.Create(1, "2024-03-04", false, nil, domain.CauseBreak, "")
	require.ErrorIs(t, err, schedule.ErrIntervalRequired)

	_, err = store.Create(1, "2024/03/04", false, intervalPtr(t, "12:00", "13:00"), domain.CauseBreak, "")
	require.ErrorIs(t, err, schedule.ErrInvalidFormat)

	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "12:00", "13:00"), domain.ExceptionCause("度假"), "")
	require.ErrorIs(t, err, schedule.ErrInvalidCause)
}

func TestExceptionStoreConflicts(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	_, err := store.Create(1, "2024-03-04", false, intervalPtr(t, "10:00", "11:00"), domain.CauseBreak, "")
	require.NoError(t, err)

	// 端点相接不冲突
	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "11:00", "12:00"), domain.CauseBreak, "")
	require.NoError(t, err)

	// 时间段相交冲突
	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "10:30", "11:30"), domain.CauseOther, "")
	var conflictErr *schedule.OverlapConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, []string{"10:00-11:00", "11:00-12:00"}, conflictErr.Conflicts)

	// 全天例外与当日任何例外冲突
	_, err = store.Create(1, "2024-03-04", true, nil, domain.CauseOffSite, "")
	require.ErrorAs(t, err, &conflictErr)

	// 其他日期或其他员工不受影响
	_, err = store.Create(1, "2024-03-05", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)
	_, err = store.Create(2, "2024-03-04", false, intervalPtr(t, "10:30", "11:30"), domain.CauseBreak, "")
	require.NoError(t, err)

	// 已有全天例外时，任何新例外都冲突
	_, err = store.Create(1, "2024-03-05", false, intervalPtr(t, "09:00", "09:30"), domain.CauseBreak, "")
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, []string{"全天"}, conflictErr.Conflicts)
}

func TestExceptionStoreUpdate(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	e, err := store.Create(1, "2024-03-04", false, intervalPtr(t, "10:00", "11:00"), domain.CauseBreak, "")
	require.NoError(t, err)

	// 更新成和自己一样的时间段不应当和自己冲突
	updated, err := store.Update(e.ID, 1, "2024-03-04", false, intervalPtr(t, "10:00", "11:00"), domain.CauseBreak, "改了备注")
	require.NoError(t, err)
	require.Equal(t, e.ID, updated.ID)
	require.Equal(t, "改了备注", updated.Description)

	// 更新成全天后仍然保持约束
	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "14:00", "15:00"), domain.CauseOther, "")
	require.NoError(t, err)
	_, err = store.Update(e.ID, 1, "2024-03-04", true, nil, domain.CauseBreak, "")
	var conflictErr *schedule.OverlapConflictError
	require.ErrorAs(t, err, &conflictErr)

	_, err = store.Update(999, 1, "2024-03-04", true, nil, domain.CauseBreak, "")
	require.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestExceptionStoreDelete(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	e, err := store.Create(1, "2024-03-04", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)

	require.NoError(t, store.Delete(e.ID))
	require.ErrorIs(t, store.Delete(e.ID), schedule.ErrNotFound)
}

func TestExceptionStoreGetByID(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	e, err := store.Create(1, "2024-03-04", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)

	got, err := store.GetByID(e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	_, err = store.GetByID(999)
	require.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestExceptionStoreListByStaffInRange(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	_, err := store.Create(1, "2024-03-06", false, intervalPtr(t, "09:00", "10:00"), domain.CauseBreak, "")
	require.NoError(t, err)
	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "14:00", "15:00"), domain.CauseOther, "")
	require.NoError(t, err)
	_, err = store.Create(1, "2024-03-04", false, intervalPtr(t, "09:00", "10:00"), domain.CauseBreak, "")
	require.NoError(t, err)
	_, err = store.Create(1, "2024-03-05", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)
	_, err = store.Create(2, "2024-03-04", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)

	all, err := store.ListByStaffInRange(1, "", "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	// 按日期升序，同一天内按开始时间升序，全天例外排在最前
	require.Equal(t, "2024-03-04", all[0].Date)
	require.Equal(t, "09:00", *all[0].StartTime)
	require.Equal(t, "14:00", *all[1].StartTime)
	require.True(t, all[2].AllDay)
	require.Equal(t, "2024-03-06", all[3].Date)

	bounded, err := store.ListByStaffInRange(1, "2024-03-05", "2024-03-06")
	require.NoError(t, err)
	require.Len(t, bounded, 2)
	require.Equal(t, "2024-03-05", bounded[0].Date)

	_, err = store.ListByStaffInRange(1, "2024-03-06", "2024-03-05")
	require.ErrorIs(t, err, schedule.ErrInvalidRange)
	_, err = store.ListByStaffInRange(1, "bad-date", "")
	require.ErrorIs(t, err, schedule.ErrInvalidFormat)
}

func TestExceptionStoreEnsureOwnedBy(t *testing.T) {
	store := schedule.NewExceptionStore(&fakeExceptionRepo{})

	e, err := store.Create(1, "2024-03-04", true, nil, domain.CauseOffSite, "")
	require.NoError(t, err)

	got, err := store.EnsureOwnedBy(e.ID, 1)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	_, err = store.EnsureOwnedBy(e.ID, 2)
	require.ErrorIs(t, err, schedule.ErrForbidden)

	_, err = store.EnsureOwnedBy(999, 1)
	require.ErrorIs(t, err, schedule.ErrNotFound)
}
