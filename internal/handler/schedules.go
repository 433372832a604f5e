package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

type weeklyScheduleRequest struct {
	DayOfWeek *int32 `json:"dayOfWeek" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// 这里只校验请求的形状，星期范围和时间段的业务约束都由排班引擎负责
func (h *Handler) readWeeklyScheduleRequest(w http.ResponseWriter, r *http.Request) (*weeklyScheduleRequest, schedule.Interval, bool) {
	var req weeklyScheduleRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return nil, schedule.Interval{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return nil, schedule.Interval{}, false
	}

	interval, err := schedule.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return nil, schedule.Interval{}, false
	}

	return &req, interval, true
}

func (h *Handler) getScheduleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	scheduleIDParam := chi.URLParam(r, "scheduleID")
	scheduleID, err := strconv.ParseInt(scheduleIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班表记录ID无效")
		return 0, false
	}

	return scheduleID, true
}

// 检查班表记录是否属于指定员工，员工只能改自己的班表
func (h *Handler) ownsWeeklySchedule(staffID int64, scheduleID int64) (bool, error) {
	schedules, err := h.weeklyStore.ListByStaff(staffID)
	if err != nil {
		return false, err
	}
	for _, ws := range schedules {
		if ws.ID == scheduleID {
			return true, nil
		}
	}

	return false, nil
}

func (h *Handler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	schedules, err := h.weeklyStore.ListByStaff(myInfo.ID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "获取个人周班表成功", schedule.GroupByDayOfWeek(schedules))
}

func (h *Handler) CreateMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	req, interval, ok := h.readWeeklyScheduleRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.weeklyStore.Create(myInfo.ID, *req.DayOfWeek, interval)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班表记录成功", ws)
}

func (h *Handler) UpdateMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	scheduleID, ok := h.getScheduleID(w, r)
	if !ok {
		return
	}

	owns, err := h.ownsWeeklySchedule(myInfo.ID, scheduleID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}
	if !owns {
		h.errorResponse(w, r, "班表记录不存在")
		return
	}

	req, interval, ok := h.readWeeklyScheduleRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.weeklyStore.Update(scheduleID, myInfo.ID, *req.DayOfWeek, interval)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班表记录成功", ws)
}

func (h *Handler) DeleteMySchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Staff)

	scheduleID, ok := h.getScheduleID(w, r)
	if !ok {
		return
	}

	owns, err := h.ownsWeeklySchedule(myInfo.ID, scheduleID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}
	if !owns {
		h.errorResponse(w, r, "班表记录不存在")
		return
	}

	if err := h.weeklyStore.Delete(scheduleID); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班表记录成功", nil)
}

func (h *Handler) GetStaffSchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	schedules, err := h.weeklyStore.ListByStaff(staff.ID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工周班表成功", schedule.GroupByDayOfWeek(schedules))
}

func (h *Handler) CreateStaffSchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	req, interval, ok := h.readWeeklyScheduleRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.weeklyStore.Create(staff.ID, *req.DayOfWeek, interval)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "创建班表记录成功", ws)
}

func (h *Handler) UpdateStaffSchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	scheduleID, ok := h.getScheduleID(w, r)
	if !ok {
		return
	}

	// 店长也只能操作 URL 中指定员工自己的班表记录，
	// 否则更新会把别的员工的记录改挂到当前员工名下
	owns, err := h.ownsWeeklySchedule(staff.ID, scheduleID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}
	if !owns {
		h.errorResponse(w, r, "班表记录不存在")
		return
	}

	req, interval, ok := h.readWeeklyScheduleRequest(w, r)
	if !ok {
		return
	}

	ws, err := h.weeklyStore.Update(scheduleID, staff.ID, *req.DayOfWeek, interval)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班表记录成功", ws)
}

func (h *Handler) DeleteStaffSchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	scheduleID, ok := h.getScheduleID(w, r)
	if !ok {
		return
	}

	owns, err := h.ownsWeeklySchedule(staff.ID, scheduleID)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}
	if !owns {
		h.errorResponse(w, r, "班表记录不存在")
		return
	}

	if err := h.weeklyStore.Delete(scheduleID); err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班表记录成功", nil)
}

func (h *Handler) GetStaffAvailability(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	dayOfWeekParam := r.URL.Query().Get("dayOfWeek")
	dayOfWeek, err := strconv.ParseInt(dayOfWeekParam, 10, 32)
	if err != nil {
		h.errorResponse(w, r, "星期编号无效")
		return
	}

	interval, err := schedule.ParseInterval(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	available, err := h.weeklyStore.IsAvailable(staff.ID, int32(dayOfWeek), interval)
	if err != nil {
		h.scheduleErrorResponse(w, r, err)
		return
	}

	h.successResponse(w, r, "查询可用性成功", map[string]bool{"available": available})
}
