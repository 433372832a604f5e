package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

func (r *Repository) InsertException(e *domain.ScheduleException) error {
	query := `
		INSERT INTO schedule_exceptions (staff_id, date, all_day, start_time, end_time, cause, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{e.StaffID, e.Date, e.AllDay, e.StartTime, e.EndTime, e.Cause, e.Description}
	dst := []any{&e.ID, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateException(e *domain.ScheduleException) error {
	query := `
		UPDATE schedule_exceptions
		SET
			staff_id = $1,
			date = $2,
			all_day = $3,
			start_time = $4,
			end_time = $5,
			cause = $6,
			description = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{e.StaffID, e.Date, e.AllDay, e.StartTime, e.EndTime, e.Cause, e.Description, e.ID, e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&e.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteException(id int64) (int64, error) {
	query := `
		DELETE FROM schedule_exceptions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) GetExceptionByID(id int64) (*domain.ScheduleException, error) {
	query := `
		SELECT staff_id, date::text, all_day, start_time, end_time, cause, description, created_at, version
		FROM schedule_exceptions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	e := &domain.ScheduleException{
		ID: id,
	}

	var startTime, endTime sql.NullString
	dst := []any{&e.StaffID, &e.Date, &e.AllDay, &startTime, &endTime, &e.Cause, &e.Description, &e.CreatedAt, &e.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if startTime.Valid {
		e.StartTime = &startTime.String
	}
	if endTime.Valid {
		e.EndTime = &endTime.String
	}

	return e, nil
}

func (r *Repository) GetExceptionsByStaffAndDate(staffID int64, date string) ([]*domain.ScheduleException, error) {
	query := `
		SELECT id, staff_id, date::text, all_day, start_time, end_time, cause, description, created_at, version
		FROM schedule_exceptions
		WHERE staff_id = $1 AND date = $2
		ORDER BY all_day DESC, start_time
	`

	return r.queryExceptions(query, staffID, date)
}

func (r *Repository) GetExceptionsByStaffInRange(staffID int64, dateFrom, dateTo string) ([]*domain.ScheduleException, error) {
	query := `
		SELECT id, staff_id, date::text, all_day, start_time, end_time, cause, description, created_at, version
		FROM schedule_exceptions
		WHERE staff_id = $1
	`
	args := []any{staffID}

	// 空串表示不限，拼接时占位符编号跟着参数个数走
	if dateFrom != "" {
		args = append(args, dateFrom)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if dateTo != "" {
		args = append(args, dateTo)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query += " ORDER BY date, all_day DESC, start_time"

	return r.queryExceptions(query, args...)
}

func (r *Repository) queryExceptions(query string, args ...any) ([]*domain.ScheduleException, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exceptions := make([]*domain.ScheduleException, 0)

	for rows.Next() {
		e := &domain.ScheduleException{}
		var startTime, endTime sql.NullString
		dst := []any{&e.ID, &e.StaffID, &e.Date, &e.AllDay, &startTime, &endTime, &e.Cause, &e.Description, &e.CreatedAt, &e.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if startTime.Valid {
			e.StartTime = &startTime.String
		}
		if endTime.Valid {
			e.EndTime = &endTime.String
		}
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}
