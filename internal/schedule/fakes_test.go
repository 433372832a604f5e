package schedule_test

import (
	"database/sql"
	"sort"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

// 内存版的持久化协作方，行为和 SQL 实现保持一致：
// 查不到单条记录时返回 sql.ErrNoRows，列表查询按约定的顺序返回副本。

type fakeWeeklyRepo struct {
	nextID  int64
	records []*domain.WeeklySchedule
}

func (f *fakeWeeklyRepo) InsertWeeklySchedule(ws *domain.WeeklySchedule) error {
	f.nextID++
	ws.ID = f.nextID
	ws.CreatedAt = time.Now()
	ws.Version = 1

	clone := *ws
	f.records = append(f.records, &clone)
	return nil
}

func (f *fakeWeeklyRepo) UpdateWeeklySchedule(ws *domain.WeeklySchedule) error {
	for i, record := range f.records {
		if record.ID == ws.ID {
			ws.Version = record.Version + 1
			clone := *ws
			f.records[i] = &clone
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeWeeklyRepo) DeleteWeeklySchedule(id int64) (int64, error) {
	for i, record := range f.records {
		if record.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeWeeklyRepo) GetWeeklyScheduleByID(id int64) (*domain.WeeklySchedule, error) {
	for _, record := range f.records {
		if record.ID == id {
			clone := *record
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeWeeklyRepo) GetWeeklySchedulesByStaff(staffID int64) ([]*domain.WeeklySchedule, error) {
	result := make([]*domain.WeeklySchedule, 0)
	for _, record := range f.records {
		if record.StaffID == staffID {
			clone := *record
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (f *fakeWeeklyRepo) GetWeeklySchedulesByStaffAndDay(staffID int64, dayOfWeek int32) ([]*domain.WeeklySchedule, error) {
	result := make([]*domain.WeeklySchedule, 0)
	for _, record := range f.records {
		if record.StaffID == staffID && record.DayOfWeek == dayOfWeek {
			clone := *record
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

type fakeExceptionRepo struct {
	nextID  int64
	records []*domain.ScheduleException
}

func (f *fakeExceptionRepo) InsertException(e *domain.ScheduleException) error {
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now()
	e.Version = 1

	clone := *e
	f.records = append(f.records, &clone)
	return nil
}

func (f *fakeExceptionRepo) UpdateException(e *domain.ScheduleException) error {
	for i, record := range f.records {
		if record.ID == e.ID {
			e.Version = record.Version + 1
			clone := *e
			f.records[i] = &clone
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeExceptionRepo) DeleteException(id int64) (int64, error) {
	for i, record := range f.records {
		if record.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeExceptionRepo) GetExceptionByID(id int64) (*domain.ScheduleException, error) {
	for _, record := range f.records {
		if record.ID == id {
			clone := *record
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeExceptionRepo) GetExceptionsByStaffAndDate(staffID int64, date string) ([]*domain.ScheduleException, error) {
	result := make([]*domain.ScheduleException, 0)
	for _, record := range f.records {
		if record.StaffID == staffID && record.Date == date {
			clone := *record
			result = append(result, &clone)
		}
	}
	sortExceptions(result)
	return result, nil
}

func (f *fakeExceptionRepo) GetExceptionsByStaffInRange(staffID int64, dateFrom, dateTo string) ([]*domain.ScheduleException, error) {
	result := make([]*domain.ScheduleException, 0)
	for _, record := range f.records {
		if record.StaffID != staffID {
			continue
		}
		if dateFrom != "" && record.Date < dateFrom {
			continue
		}
		if dateTo != "" && record.Date > dateTo {
			continue
		}
		clone := *record
		result = append(result, &clone)
	}
	sortExceptions(result)
	return result, nil
}

// 和 SQL 的 ORDER BY date, all_day DESC, start_time 一致：同一天内全天例外排在前面
func sortExceptions(exceptions []*domain.ScheduleException) {
	sort.Slice(exceptions, func(i, j int) bool {
		a, b := exceptions[i], exceptions[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		if a.AllDay {
			return a.ID < b.ID
		}
		return *a.StartTime < *b.StartTime
	})
}
