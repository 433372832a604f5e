package repository

import (
	"context"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

func (r *Repository) CreateSalonService(service *domain.SalonService) error {
	query := `
		INSERT INTO salon_services (name, description, duration_minutes, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{service.Name, service.Description, service.DurationMinutes, service.PriceCents}
	dst := []any{&service.ID, &service.IsActive, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSalonServiceByID(id int64) (*domain.SalonService, error) {
	query := `
		SELECT name, description, duration_minutes, price_cents, is_active, created_at, version
		FROM salon_services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	service := &domain.SalonService{
		ID: id,
	}

	dst := []any{&service.Name, &service.Description, &service.DurationMinutes, &service.PriceCents, &service.IsActive, &service.CreatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return service, nil
}

func (r *Repository) GetAllSalonServices() ([]*domain.SalonService, error) {
	query := `
		SELECT id, name, description, duration_minutes, price_cents, is_active, created_at, version
		FROM salon_services
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.SalonService, 0)

	for rows.Next() {
		service := &domain.SalonService{}
		dst := []any{&service.ID, &service.Name, &service.Description, &service.DurationMinutes, &service.PriceCents, &service.IsActive, &service.CreatedAt, &service.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) UpdateSalonService(service *domain.SalonService) error {
	query := `
		UPDATE salon_services
		SET
			name = $1,
			description = $2,
			duration_minutes = $3,
			price_cents = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{service.Name, service.Description, service.DurationMinutes, service.PriceCents, service.IsActive, service.ID, service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSalonService(id int64) error {
	query := `
		DELETE FROM salon_services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
