package schedule

import (
	"errors"
	"strings"
)

// 这些错误都是可预期的业务结果，调用方应当用 errors.Is / errors.As 来区分处理。
// 持久化层的意外错误（连接失败等）不会被映射成这些错误，而是附带操作上下文原样向上传递。
var (
	ErrInvalidFormat    = errors.New("格式无效")
	ErrInvalidRange     = errors.New("时间范围无效")
	ErrInvalidDayOfWeek = errors.New("星期编号无效")
	ErrInvalidCause     = errors.New("例外原因无效")
	ErrIntervalRequired = errors.New("缺少时间段")
	ErrNotFound         = errors.New("记录不存在")
	ErrForbidden        = errors.New("无权操作该记录")
	ErrBulkCreateFailed = errors.New("批量创建全部失败")
)

// OverlapConflictError 表示写入会破坏同一员工同一天（或同一日期）的互不重叠约束。
// Conflicts 保存与之冲突的已有时间段，形式为 "start-end"，全天例外记为 "全天"。
type OverlapConflictError struct {
	Conflicts []string
}

func (e *OverlapConflictError) Error() string {
	return "时间段与现有记录冲突: " + strings.Join(e.Conflicts, ", ")
}
