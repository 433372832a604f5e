package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
)

func (h *Handler) GetAllSalonServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllSalonServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取服务项目列表成功", services)
}

func (h *Handler) CreateSalonService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name" validate:"required"`
		Description     string `json:"description"`
		DurationMinutes int32  `json:"durationMinutes" validate:"required,gte=5,lte=480"`
		PriceCents      int64  `json:"priceCents" validate:"required,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.SalonService{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
	}

	if err := h.repository.CreateSalonService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "salon_services_name_key":
				h.errorResponse(w, r, "服务项目名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建服务项目成功", service)
}

func (h *Handler) GetSalonService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SalonServiceCtx).(*domain.SalonService)

	h.successResponse(w, r, "获取服务项目成功", service)
}

func (h *Handler) UpdateSalonService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SalonServiceCtx).(*domain.SalonService)

	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		DurationMinutes *int32  `json:"durationMinutes" validate:"omitempty,gte=5,lte=480"`
		PriceCents      *int64  `json:"priceCents" validate:"omitempty,gte=0"`
		IsActive        *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		service.PriceCents = *req.PriceCents
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateSalonService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "salon_services_name_key":
				h.errorResponse(w, r, "服务项目名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新服务项目成功", service)
}

func (h *Handler) DeleteSalonService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SalonServiceCtx).(*domain.SalonService)

	if err := h.repository.DeleteSalonService(service.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除服务项目成功", nil)
}
