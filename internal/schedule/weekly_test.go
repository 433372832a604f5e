package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

func TestWeeklyScheduleStoreCreate(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	ws, err := store.Create(1, 0, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)
	require.NotZero(t, ws.ID)
	require.Equal(t, int64(1), ws.StaffID)
	require.Equal(t, int32(0), ws.DayOfWeek)
	require.Equal(t, "09:00", ws.StartTime)
	require.Equal(t, "17:00", ws.EndTime)

	_, err = store.Create(1, 7, mustInterval(t, "09:00", "17:00"))
	require.ErrorIs(t, err, schedule.ErrInvalidDayOfWeek)
	_, err = store.Create(1, -1, mustInterval(t, "09:00", "17:00"))
	require.ErrorIs(t, err, schedule.ErrInvalidDayOfWeek)
}

func TestWeeklyScheduleStoreCreateTouchingIntervals(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	// 端点相接的两个班次不算冲突
	_, err := store.Create(1, 2, mustInterval(t, "10:00", "11:00"))
	require.NoError(t, err)
	_, err = store.Create(1, 2, mustInterval(t, "11:00", "12:00"))
	require.NoError(t, err)
}

func TestWeeklyScheduleStoreCreateOverlapConflict(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Create(1, 2, mustInterval(t, "10:00", "11:00"))
	require.NoError(t, err)

	_, err = store.Create(1, 2, mustInterval(t, "10:30", "11:30"))
	var conflictErr *schedule.OverlapConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, []string{"10:00-11:00"}, conflictErr.Conflicts)

	// 其他员工或其他天不受影响
	_, err = store.Create(2, 2, mustInterval(t, "10:30", "11:30"))
	require.NoError(t, err)
	_, err = store.Create(1, 3, mustInterval(t, "10:30", "11:30"))
	require.NoError(t, err)
}

func TestWeeklyScheduleStoreUpdateSelfExclusion(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	ws, err := store.Create(1, 4, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)

	// 更新成和自己一样的时间段不应当和自己冲突
	updated, err := store.Update(ws.ID, 1, 4, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)
	require.Equal(t, ws.ID, updated.ID)
	require.Equal(t, "09:00", updated.StartTime)
}

func TestWeeklyScheduleStoreUpdateConflict(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Create(1, 4, mustInterval(t, "09:00", "12:00"))
	require.NoError(t, err)
	ws, err := store.Create(1, 4, mustInterval(t, "13:00", "17:00"))
	require.NoError(t, err)

	_, err = store.Update(ws.ID, 1, 4, mustInterval(t, "11:00", "15:00"))
	var conflictErr *schedule.OverlapConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, []string{"09:00-12:00"}, conflictErr.Conflicts)
}

func TestWeeklyScheduleStoreUpdateNotFound(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Update(42, 1, 0, mustInterval(t, "09:00", "17:00"))
	require.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestWeeklyScheduleStoreDelete(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	ws, err := store.Create(1, 0, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ws.ID))
	// 重复删除返回记录不存在
	require.ErrorIs(t, store.Delete(ws.ID), schedule.ErrNotFound)
	require.ErrorIs(t, store.Delete(999), schedule.ErrNotFound)
}

func TestWeeklyScheduleStoreListByStaff(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Create(1, 3, mustInterval(t, "09:00", "12:00"))
	require.NoError(t, err)
	_, err = store.Create(1, 0, mustInterval(t, "13:00", "17:00"))
	require.NoError(t, err)
	_, err = store.Create(1, 0, mustInterval(t, "09:00", "12:00"))
	require.NoError(t, err)
	_, err = store.Create(2, 0, mustInterval(t, "09:00", "12:00"))
	require.NoError(t, err)

	schedules, err := store.ListByStaff(1)
	require.NoError(t, err)
	require.Len(t, schedules, 3)

	// 按 (星期, 开始时间) 升序
	require.Equal(t, int32(0), schedules[0].DayOfWeek)
	require.Equal(t, "09:00", schedules[0].StartTime)
	require.Equal(t, int32(0), schedules[1].DayOfWeek)
	require.Equal(t, "13:00", schedules[1].StartTime)
	require.Equal(t, int32(3), schedules[2].DayOfWeek)

	daySchedules, err := store.ListByStaffAndDay(1, 0)
	require.NoError(t, err)
	require.Len(t, daySchedules, 2)
	require.Equal(t, "09:00", daySchedules[0].StartTime)
	require.Equal(t, "13:00", daySchedules[1].StartTime)
}

func TestWeeklyScheduleStoreIsAvailable(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Create(1, 1, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)

	available, err := store.IsAvailable(1, 1, mustInterval(t, "09:00", "09:30"))
	require.NoError(t, err)
	require.True(t, available)

	available, err = store.IsAvailable(1, 1, mustInterval(t, "16:30", "17:30"))
	require.NoError(t, err)
	require.False(t, available)

	available, err = store.IsAvailable(1, 2, mustInterval(t, "09:00", "09:30"))
	require.NoError(t, err)
	require.False(t, available)
}

func TestWeeklyScheduleStoreIsAvailableAdjacentBlocksNotMerged(t *testing.T) {
	store := schedule.NewWeeklyScheduleStore(&fakeWeeklyRepo{})

	_, err := store.Create(1, 1, mustInterval(t, "09:00", "12:00"))
	require.NoError(t, err)
	_, err = store.Create(1, 1, mustInterval(t, "12:00", "17:00"))
	require.NoError(t, err)

	// 两个相邻班次的并集覆盖了请求的时间段，但没有单个班次完整包含它
	available, err := store.IsAvailable(1, 1, mustInterval(t, "11:00", "13:00"))
	require.NoError(t, err)
	require.False(t, available)

	available, err = store.IsAvailable(1, 1, mustInterval(t, "09:00", "17:00"))
	require.NoError(t, err)
	require.False(t, available)

	available, err = store.IsAvailable(1, 1, mustInterval(t, "10:00", "11:00"))
	require.NoError(t, err)
	require.True(t, available)
}
