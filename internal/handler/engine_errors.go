package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

// 排班引擎返回的都是结构化的业务错误，在这里统一翻译成给用户看的提示，
// 避免每个接口重复写一遍相同的分支；不属于业务错误的一律按服务器内部错误处理。
func (h *Handler) scheduleErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *schedule.OverlapConflictError

	switch {
	case errors.As(err, &conflictErr):
		h.errorResponse(w, r, "时间段与已有记录冲突: "+strings.Join(conflictErr.Conflicts, "、"))
	case errors.Is(err, schedule.ErrInvalidFormat):
		h.errorResponse(w, r, "时间或日期格式无效")
	case errors.Is(err, schedule.ErrInvalidRange):
		h.errorResponse(w, r, "结束必须晚于开始")
	case errors.Is(err, schedule.ErrInvalidDayOfWeek):
		h.errorResponse(w, r, "星期编号必须在 0 到 6 之间")
	case errors.Is(err, schedule.ErrInvalidCause):
		h.errorResponse(w, r, "例外原因无效")
	case errors.Is(err, schedule.ErrIntervalRequired):
		h.errorResponse(w, r, "非全天例外必须指定开始和结束时间")
	case errors.Is(err, schedule.ErrNotFound):
		h.errorResponse(w, r, "记录不存在")
	case errors.Is(err, schedule.ErrForbidden):
		h.errorResponse(w, r, "只能操作自己的记录")
	case errors.Is(err, schedule.ErrBulkCreateFailed):
		h.errorResponse(w, r, "所有日期都创建失败")
	default:
		h.internalServerError(w, r, err)
	}
}
