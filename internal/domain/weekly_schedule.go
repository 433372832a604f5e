package domain

import "time"

// WeeklySchedule 表示员工每周固定的一段工作时间。
// DayOfWeek 采用 0 = 周一 ... 6 = 周日 的编号，与日历库的编号体系无关。
type WeeklySchedule struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staffID"`
	DayOfWeek int32     `json:"dayOfWeek"`
	StartTime string    `json:"startTime"` // "HH:MM"
	EndTime   string    `json:"endTime"`   // "HH:MM"，区间为左闭右开
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
