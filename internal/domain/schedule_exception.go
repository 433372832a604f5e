package domain

import "time"

type ExceptionCause string

const (
	CauseBreak   ExceptionCause = "休息"
	CauseOffSite ExceptionCause = "外出"
	CauseOther   ExceptionCause = "其他"
)

func (c ExceptionCause) Valid() bool {
	switch c {
	case CauseBreak, CauseOffSite, CauseOther:
		return true
	default:
		return false
	}
}

// ScheduleException 表示某个员工在特定日期的一段不可用时间。
// AllDay 为 true 时 StartTime 和 EndTime 为 nil，否则两者都不为 nil。
type ScheduleException struct {
	ID          int64          `json:"id"`
	StaffID     int64          `json:"staffID"`
	Date        string         `json:"date"` // "YYYY-MM-DD"
	AllDay      bool           `json:"allDay"`
	StartTime   *string        `json:"startTime"`
	EndTime     *string        `json:"endTime"`
	Cause       ExceptionCause `json:"cause"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	Version     int32          `json:"-"`
}
