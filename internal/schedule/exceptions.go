package schedule

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

const dateLayout = "2006-01-02"

// ExceptionRepository 是日期例外的持久化协作方。
// 范围查询按 (date, 全天在前, start_time) 升序返回；dateFrom / dateTo 为空串表示不限。
// 隔离级别的要求与 WeeklyScheduleRepository 相同。
type ExceptionRepository interface {
	InsertException(e *domain.ScheduleException) error
	UpdateException(e *domain.ScheduleException) error
	DeleteException(id int64) (int64, error)
	GetExceptionByID(id int64) (*domain.ScheduleException, error)
	GetExceptionsByStaffAndDate(staffID int64, date string) ([]*domain.ScheduleException, error)
	GetExceptionsByStaffInRange(staffID int64, dateFrom, dateTo string) ([]*domain.ScheduleException, error)
}

// ExceptionStore 管理员工在特定日期的不可用时间，
// 维护同一员工同一天的例外互不冲突这一约束：
// 全天例外与当日任何例外都冲突，两个非全天例外仅在时间段相交时冲突。
type ExceptionStore struct {
	repo ExceptionRepository
}

func NewExceptionStore(repo ExceptionRepository) *ExceptionStore {
	return &ExceptionStore{repo: repo}
}

func (s *ExceptionStore) Create(staffID int64, date string, allDay bool, interval *Interval, cause domain.ExceptionCause, description string) (*domain.ScheduleException, error) {
	e, err := s.buildException(staffID, date, allDay, interval, cause, description)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflict(staffID, e.Date, allDay, interval, 0); err != nil {
		return nil, err
	}

	if err := s.repo.InsertException(e); err != nil {
		return nil, fmt.Errorf("插入例外记录失败 (staffID=%d, date=%s): %w", staffID, date, err)
	}

	return e, nil
}

func (s *ExceptionStore) Update(id int64, staffID int64, date string, allDay bool, interval *Interval, cause domain.ExceptionCause, description string) (*domain.ScheduleException, error) {
	updated, err := s.buildException(staffID, date, allDay, interval, cause, description)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.GetExceptionByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: 例外记录 %d", ErrNotFound, id)
		default:
			return nil, fmt.Errorf("查询例外记录 %d 失败: %w", id, err)
		}
	}

	// 冲突校验需要把正在更新的记录自身排除在外
	if err := s.checkConflict(staffID, updated.Date, allDay, interval, id); err != nil {
		return nil, err
	}

	e.StaffID = updated.StaffID
	e.Date = updated.Date
	e.AllDay = updated.AllDay
	e.StartTime = updated.StartTime
	e.EndTime = updated.EndTime
	e.Cause = updated.Cause
	e.Description = updated.Description

	if err := s.repo.UpdateException(e); err != nil {
		return nil, fmt.Errorf("更新例外记录 %d 失败: %w", id, err)
	}

	return e, nil
}

func (s *ExceptionStore) Delete(id int64) error {
	affected, err := s.repo.DeleteException(id)
	if err != nil {
		return fmt.Errorf("删除例外记录 %d 失败: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: 例外记录 %d", ErrNotFound, id)
	}

	return nil
}

func (s *ExceptionStore) GetByID(id int64) (*domain.ScheduleException, error) {
	e, err := s.repo.GetExceptionByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: 例外记录 %d", ErrNotFound, id)
		default:
			return nil, fmt.Errorf("查询例外记录 %d 失败: %w", id, err)
		}
	}

	return e, nil
}

// ListByStaffInRange 查询员工在日期范围内的例外，dateFrom / dateTo 为空串表示不限。
func (s *ExceptionStore) ListByStaffInRange(staffID int64, dateFrom, dateTo string) ([]*domain.ScheduleException, error) {
	var from, to time.Time

	if dateFrom != "" {
		t, err := time.Parse(dateLayout, dateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: 日期 %q 不符合 YYYY-MM-DD 格式", ErrInvalidFormat, dateFrom)
		}
		from = t
	}
	if dateTo != "" {
		t, err := time.Parse(dateLayout, dateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: 日期 %q 不符合 YYYY-MM-DD 格式", ErrInvalidFormat, dateTo)
		}
		to = t
	}
	if dateFrom != "" && dateTo != "" && from.After(to) {
		return nil, fmt.Errorf("%w: 起始日期 %s 晚于结束日期 %s", ErrInvalidRange, dateFrom, dateTo)
	}

	exceptions, err := s.repo.GetExceptionsByStaffInRange(staffID, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("查询员工 %d 的例外记录失败: %w", staffID, err)
	}

	return exceptions, nil
}

// EnsureOwnedBy 检查例外记录是否属于指定员工，是则返回该记录。
// 它只是归属判定，权限策略本身由调用方决定。
func (s *ExceptionStore) EnsureOwnedBy(id int64, staffID int64) (*domain.ScheduleException, error) {
	e, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e.StaffID != staffID {
		return nil, fmt.Errorf("%w: 例外记录 %d 不属于员工 %d", ErrForbidden, id, staffID)
	}

	return e, nil
}

func (s *ExceptionStore) buildException(staffID int64, date string, allDay bool, interval *Interval, cause domain.ExceptionCause, description string) (*domain.ScheduleException, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: 日期 %q 不符合 YYYY-MM-DD 格式", ErrInvalidFormat, date)
	}
	if !allDay && interval == nil {
		return nil, fmt.Errorf("%w: 非全天例外必须指定时间段", ErrIntervalRequired)
	}
	if !cause.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCause, cause)
	}

	e := &domain.ScheduleException{
		StaffID:     staffID,
		Date:        day.Format(dateLayout),
		AllDay:      allDay,
		Cause:       cause,
		Description: description,
	}
	if !allDay {
		start := interval.Start.String()
		end := interval.End.String()
		e.StartTime = &start
		e.EndTime = &end
	}

	return e, nil
}

func (s *ExceptionStore) checkConflict(staffID int64, date string, allDay bool, interval *Interval, excludeID int64) error {
	siblings, err := s.repo.GetExceptionsByStaffAndDate(staffID, date)
	if err != nil {
		return fmt.Errorf("查询员工 %d 在 %s 的例外记录失败: %w", staffID, date, err)
	}

	conflicts := make([]string, 0)
	for _, sibling := range siblings {
		if sibling.ID == excludeID {
			continue
		}

		if allDay || sibling.AllDay {
			conflicts = append(conflicts, renderException(sibling))
			continue
		}

		existing, err := ParseInterval(*sibling.StartTime, *sibling.EndTime)
		if err != nil {
			return fmt.Errorf("解析例外记录 %d 失败: %w", sibling.ID, err)
		}
		if existing.Overlaps(*interval) {
			conflicts = append(conflicts, renderException(sibling))
		}
	}

	if len(conflicts) > 0 {
		return &OverlapConflictError{Conflicts: conflicts}
	}

	return nil
}

func renderException(e *domain.ScheduleException) string {
	if e.AllDay {
		return "全天"
	}
	return *e.StartTime + "-" + *e.EndTime
}
