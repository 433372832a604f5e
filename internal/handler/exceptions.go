package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

type exceptionRequest struct {
	Date        string  `json:"date" validate:"required"`
	AllDay      bool    `json:"allDay"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Cause       string  `json:"cause" validate:"required"`
	Description string  `json:"description"`
}

type bulkExceptionRequest struct {
	StartDate       string  `json:"startDate" validate:"required"`
	EndDate         string  `json:"endDate" validate:"required"`
	IncludeWeekends bool    `json:"includeWeekends"`
	AllDay          bool    `json:"allDay"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Cause           string  `json:"cause" validate:"required"`
	Description     string  `json:"description"`
}

type bulkFailureResponse struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// 起止时间只有都给了才组成时间段，缺省交给引擎判断是否必填
func (h *Handler) intervalFromRequest(w http.ResponseWriter, r *http.Request, startTime, endTime *string) (*schedule.Interval, bool) {
	if startTime == nil || endTime == nil {
		return nil, true
	}

	interval, err := schedule.ParseInterval(*startTime, *endTime)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return nil, false
	}

	return &interval, true
}

func (h *Handler) getExceptionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	exceptionIDParam := chi.URLParam(r, "exceptionID")
	exceptionID, err := strconv.ParseInt(exceptionIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "例外记录ID无效")
		return 0, false
	}

	return exceptionID, true
}

func (h *Handler) listExceptions(w http.ResponseWriter, r *http.Request, staffID int64, message string) {
	exceptions, err := h.exceptionStore.ListByStaffInRange(staffID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, message, exceptions)
}

func (h *Handler) GetMyExceptions(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	h.listExceptions(w, r, myInfo.ID, "获取个人例外记录成功")
}

func (h *Handler) CreateMyException(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	var req exceptionRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	interval, ok := h.intervalFromRequest(w, r, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	exception, err := h.exceptionStore.Create(myInfo.ID, req.Date, req.AllDay, interval, domain.ExceptionCause(req.Cause), req.Description)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "创建例外记录成功", exception)
}

func (h *Handler) CreateMyExceptionsBulk(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	var req bulkExceptionRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	interval, ok := h.intervalFromRequest(w, r, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	dates, err := schedule.ExpandDateRange(req.StartDate, req.EndDate, req.IncludeWeekends)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	result, err := h.exceptionStore.CreateBulk(myInfo.ID, dates, req.AllDay, interval, domain.ExceptionCause(req.Cause), req.Description)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	failed := make([]bulkFailureResponse, 0, len(result.Failed))
	for _, failure := range result.Failed {
		failed = append(failed, bulkFailureResponse{
			Date:    failure.Date,
			Message: failure.Err.Error(),
		})
	}

	// 给员工发一封汇总邮件，邮件失败不影响已经写入的记录
	mailMessage := domain.MailMessage{
		Type: "bulk_exception_notice",
		To:   myInfo.Email,
		Data: domain.BulkExceptionMailData{
			FullName:     myInfo.FullName,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			CreatedCount: len(result.Created),
			FailedCount:  len(result.Failed),
		},
	}

	if emailData, err := json.Marshal(mailMessage); err != nil {
		slog.Error("序列化汇总邮件失败", "error", err)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		defer cancel()

		if err := h.mailChannel.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        emailData,
			},
		); err != nil {
			slog.Error("发布汇总邮件失败", "error", err)
		}
	}

	h.successResponse(w, r, "批量创建完成", map[string]any{
		"created": result.Created,
		"failed":  failed,
	})
}

func (h *Handler) UpdateMyException(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	exceptionID, ok := h.getExceptionID(w, r)
	if !ok {
		return
	}

	if _, err := h.exceptionStore.EnsureOwnedBy(exceptionID, myInfo.ID); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	var req exceptionRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	interval, ok := h.intervalFromRequest(w, r, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	exception, err := h.exceptionStore.Update(exceptionID, myInfo.ID, req.Date, req.AllDay, interval, domain.ExceptionCause(req.Cause), req.Description)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "更新例外记录成功", exception)
}

func (h *Handler) DeleteMyException(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	exceptionID, ok := h.getExceptionID(w, r)
	if !ok {
		return
	}

	if _, err := h.exceptionStore.EnsureOwnedBy(exceptionID, myInfo.ID); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	if err := h.exceptionStore.Delete(exceptionID); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "删除例外记录成功", nil)
}

func (h *Handler) GetStaffExceptions(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	h.listExceptions(w, r, staff.ID, "获取员工例外记录成功")
}
