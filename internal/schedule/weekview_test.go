package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

func TestGroupByDayOfWeek(t *testing.T) {
	schedules := []*domain.WeeklySchedule{
		{ID: 1, StaffID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"},
		{ID: 2, StaffID: 1, DayOfWeek: 0, StartTime: "13:00", EndTime: "17:00"},
		{ID: 3, StaffID: 1, DayOfWeek: 4, StartTime: "10:00", EndTime: "18:00"},
	}

	grouped := schedule.GroupByDayOfWeek(schedules)
	require.Len(t, grouped, 2)

	// 每一天内保持输入顺序
	require.Len(t, grouped[0], 2)
	require.Equal(t, int64(1), grouped[0][0].ID)
	require.Equal(t, int64(2), grouped[0][1].ID)
	require.Equal(t, int64(3), grouped[4][0].ID)

	// 没有班次的天不出现在结果中
	_, exists := grouped[1]
	require.False(t, exists)
}

func TestGroupByDayOfWeekEmpty(t *testing.T) {
	grouped := schedule.GroupByDayOfWeek(nil)
	require.NotNil(t, grouped)
	require.Empty(t, grouped)
}
