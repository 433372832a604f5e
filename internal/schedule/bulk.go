package schedule

import (
	"fmt"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

// ExpandDateRange 把一个日期范围展开成按升序排列的具体日期列表（两端都包含）。
// includeWeekends 为 false 时跳过周六和周日；周末的判定用日历本身的星期，
// 与周班表 0 = 周一 的编号体系无关。
func ExpandDateRange(startDate, endDate string, includeWeekends bool) ([]string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: 日期 %q 不符合 YYYY-MM-DD 格式", ErrInvalidFormat, startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: 日期 %q 不符合 YYYY-MM-DD 格式", ErrInvalidFormat, endDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: 起始日期 %s 晚于结束日期 %s", ErrInvalidRange, startDate, endDate)
	}

	dates := make([]string, 0)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !includeWeekends && (day.Weekday() == time.Saturday || day.Weekday() == time.Sunday) {
			continue
		}
		dates = append(dates, day.Format(dateLayout))
	}

	return dates, nil
}

type BulkFailure struct {
	Date string
	Err  error
}

type BulkResult struct {
	Created []*domain.ScheduleException
	Failed  []BulkFailure
}

// CreateBulk 对每个日期独立地尝试创建例外，单个日期失败不会回滚之前的成功，
// 部分成功的结果原样返回给调用方；只有所有日期都失败时才整体报错，
// 并附带第一个失败的原因。
func (s *ExceptionStore) CreateBulk(staffID int64, dates []string, allDay bool, interval *Interval, cause domain.ExceptionCause, description string) (*BulkResult, error) {
	result := &BulkResult{
		Created: make([]*domain.ScheduleException, 0, len(dates)),
		Failed:  make([]BulkFailure, 0),
	}

	for _, date := range dates {
		e, err := s.Create(staffID, date, allDay, interval, cause, description)
		if err != nil {
			result.Failed = append(result.Failed, BulkFailure{Date: date, Err: err})
			continue
		}
		result.Created = append(result.Created, e)
	}

	if len(dates) > 0 && len(result.Created) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrBulkCreateFailed, result.Failed[0].Err)
	}

	return result, nil
}
