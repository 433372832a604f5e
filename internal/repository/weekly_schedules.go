package repository

import (
	"context"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

func (r *Repository) InsertWeeklySchedule(ws *domain.WeeklySchedule) error {
	query := `
		INSERT INTO weekly_schedules (staff_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ws.StaffID, ws.DayOfWeek, ws.StartTime, ws.EndTime}
	dst := []any{&ws.ID, &ws.CreatedAt, &ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateWeeklySchedule(ws *domain.WeeklySchedule) error {
	query := `
		UPDATE weekly_schedules
		SET
			staff_id = $1,
			day_of_week = $2,
			start_time = $3,
			end_time = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{ws.StaffID, ws.DayOfWeek, ws.StartTime, ws.EndTime, ws.ID, ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&ws.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWeeklySchedule(id int64) (int64, error) {
	query := `
		DELETE FROM weekly_schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) GetWeeklyScheduleByID(id int64) (*domain.WeeklySchedule, error) {
	query := `
		SELECT staff_id, day_of_week, start_time, end_time, created_at, version
		FROM weekly_schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	ws := &domain.WeeklySchedule{
		ID: id,
	}

	dst := []any{&ws.StaffID, &ws.DayOfWeek, &ws.StartTime, &ws.EndTime, &ws.CreatedAt, &ws.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return ws, nil
}

func (r *Repository) GetWeeklySchedulesByStaff(staffID int64) ([]*domain.WeeklySchedule, error) {
	query := `
		SELECT id, staff_id, day_of_week, start_time, end_time, created_at, version
		FROM weekly_schedules
		WHERE staff_id = $1
		ORDER BY day_of_week, start_time
	`

	return r.queryWeeklySchedules(query, staffID)
}

func (r *Repository) GetWeeklySchedulesByStaffAndDay(staffID int64, dayOfWeek int32) ([]*domain.WeeklySchedule, error) {
	query := `
		SELECT id, staff_id, day_of_week, start_time, end_time, created_at, version
		FROM weekly_schedules
		WHERE staff_id = $1 AND day_of_week = $2
		ORDER BY start_time
	`

	return r.queryWeeklySchedules(query, staffID, dayOfWeek)
}

func (r *Repository) queryWeeklySchedules(query string, args ...any) ([]*domain.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0)

	for rows.Next() {
		ws := &domain.WeeklySchedule{}
		dst := []any{&ws.ID, &ws.StaffID, &ws.DayOfWeek, &ws.StartTime, &ws.EndTime, &ws.CreatedAt, &ws.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}
