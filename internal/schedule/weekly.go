package schedule

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

// WeeklyScheduleRepository 是周班表的持久化协作方。
// 列表查询需要按注释中标注的顺序返回；查不到单条记录时返回 sql.ErrNoRows。
// 每次写操作对应的“读同日记录 -> 校验 -> 写入”序列需要由部署方保证
// 以不低于可串行化的隔离级别执行，否则并发写入可能绕过重叠校验。
type WeeklyScheduleRepository interface {
	InsertWeeklySchedule(ws *domain.WeeklySchedule) error
	UpdateWeeklySchedule(ws *domain.WeeklySchedule) error
	DeleteWeeklySchedule(id int64) (int64, error)
	GetWeeklyScheduleByID(id int64) (*domain.WeeklySchedule, error)
	// 按 (day_of_week, start_time) 升序
	GetWeeklySchedulesByStaff(staffID int64) ([]*domain.WeeklySchedule, error)
	// 按 start_time 升序
	GetWeeklySchedulesByStaffAndDay(staffID int64, dayOfWeek int32) ([]*domain.WeeklySchedule, error)
}

// WeeklyScheduleStore 管理员工每周的固定工作时间，
// 维护同一员工同一天的时间段互不重叠这一约束。
type WeeklyScheduleStore struct {
	repo WeeklyScheduleRepository
}

func NewWeeklyScheduleStore(repo WeeklyScheduleRepository) *WeeklyScheduleStore {
	return &WeeklyScheduleStore{repo: repo}
}

func (s *WeeklyScheduleStore) Create(staffID int64, dayOfWeek int32, interval Interval) (*domain.WeeklySchedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, dayOfWeek)
	}

	if err := s.checkOverlap(staffID, dayOfWeek, interval, 0); err != nil {
		return nil, err
	}

	ws := &domain.WeeklySchedule{
		StaffID:   staffID,
		DayOfWeek: dayOfWeek,
		StartTime: interval.Start.String(),
		EndTime:   interval.End.String(),
	}
	if err := s.repo.InsertWeeklySchedule(ws); err != nil {
		return nil, fmt.Errorf("插入周班表记录失败 (staffID=%d, dayOfWeek=%d): %w", staffID, dayOfWeek, err)
	}

	return ws, nil
}

func (s *WeeklyScheduleStore) Update(id int64, staffID int64, dayOfWeek int32, interval Interval) (*domain.WeeklySchedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, dayOfWeek)
	}

	ws, err := s.repo.GetWeeklyScheduleByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("%w: 周班表记录 %d", ErrNotFound, id)
		default:
			return nil, fmt.Errorf("查询周班表记录 %d 失败: %w", id, err)
		}
	}

	// 重叠校验需要把正在更新的记录自身排除在外
	if err := s.checkOverlap(staffID, dayOfWeek, interval, id); err != nil {
		return nil, err
	}

	ws.StaffID = staffID
	ws.DayOfWeek = dayOfWeek
	ws.StartTime = interval.Start.String()
	ws.EndTime = interval.End.String()

	if err := s.repo.UpdateWeeklySchedule(ws); err != nil {
		return nil, fmt.Errorf("更新周班表记录 %d 失败: %w", id, err)
	}

	return ws, nil
}

func (s *WeeklyScheduleStore) Delete(id int64) error {
	affected, err := s.repo.DeleteWeeklySchedule(id)
	if err != nil {
		return fmt.Errorf("删除周班表记录 %d 失败: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: 周班表记录 %d", ErrNotFound, id)
	}

	return nil
}

func (s *WeeklyScheduleStore) ListByStaff(staffID int64) ([]*domain.WeeklySchedule, error) {
	schedules, err := s.repo.GetWeeklySchedulesByStaff(staffID)
	if err != nil {
		return nil, fmt.Errorf("查询员工 %d 的周班表失败: %w", staffID, err)
	}

	return schedules, nil
}

func (s *WeeklyScheduleStore) ListByStaffAndDay(staffID int64, dayOfWeek int32) ([]*domain.WeeklySchedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, dayOfWeek)
	}

	schedules, err := s.repo.GetWeeklySchedulesByStaffAndDay(staffID, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("查询员工 %d 星期 %d 的周班表失败: %w", staffID, dayOfWeek, err)
	}

	return schedules, nil
}

// IsAvailable 判断请求的时间段是否完整地落在该员工当天的某一个班次之内。
// 这是包含判定而不是重叠判定：即使两个相邻班次的并集覆盖了请求的时间段，
// 只要没有单个班次完整包含它，结果也是不可用。
func (s *WeeklyScheduleStore) IsAvailable(staffID int64, dayOfWeek int32, requested Interval) (bool, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return false, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, dayOfWeek)
	}

	schedules, err := s.repo.GetWeeklySchedulesByStaffAndDay(staffID, dayOfWeek)
	if err != nil {
		return false, fmt.Errorf("查询员工 %d 星期 %d 的周班表失败: %w", staffID, dayOfWeek, err)
	}

	for _, ws := range schedules {
		block, err := ParseInterval(ws.StartTime, ws.EndTime)
		if err != nil {
			return false, fmt.Errorf("解析周班表记录 %d 失败: %w", ws.ID, err)
		}
		if block.Contains(requested) {
			return true, nil
		}
	}

	return false, nil
}

func (s *WeeklyScheduleStore) checkOverlap(staffID int64, dayOfWeek int32, interval Interval, excludeID int64) error {
	siblings, err := s.repo.GetWeeklySchedulesByStaffAndDay(staffID, dayOfWeek)
	if err != nil {
		return fmt.Errorf("查询员工 %d 星期 %d 的周班表失败: %w", staffID, dayOfWeek, err)
	}

	conflicts := make([]string, 0)
	for _, sibling := range siblings {
		if sibling.ID == excludeID {
			continue
		}
		existing, err := ParseInterval(sibling.StartTime, sibling.EndTime)
		if err != nil {
			return fmt.Errorf("解析周班表记录 %d 失败: %w", sibling.ID, err)
		}
		if existing.Overlaps(interval) {
			conflicts = append(conflicts, existing.String())
		}
	}

	if len(conflicts) > 0 {
		return &OverlapConflictError{Conflicts: conflicts}
	}

	return nil
}
