package schedule

import (
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

// GroupByDayOfWeek 把平铺的周班表记录按星期分组，保持每一天内的输入顺序。
// 没有班次的天不会出现在结果中，调用方应把缺失的键当作“当天没有班次”处理。
func GroupByDayOfWeek(schedules []*domain.WeeklySchedule) map[int32][]*domain.WeeklySchedule {
	grouped := make(map[int32][]*domain.WeeklySchedule)
	for _, ws := range schedules {
		grouped[ws.DayOfWeek] = append(grouped[ws.DayOfWeek], ws)
	}

	return grouped
}
