package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

// TimeOfDay 表示自午夜起经过的分钟数，取值范围 0~1439。
type TimeOfDay int

var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay 解析 "HH:MM" 形式的钟点字符串。
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	matches := timeOfDayPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w: 时间 %q 不符合 HH:MM 格式", ErrInvalidFormat, s)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute, _ := strconv.Atoi(matches[2])

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Interval 表示一天内左闭右开的时间段 [Start, End)。
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("%w: 结束时间 %s 必须晚于开始时间 %s", ErrInvalidRange, end, start)
	}

	return Interval{Start: start, End: end}, nil
}

// ParseInterval 从一对 "HH:MM" 字符串构造时间段。
func ParseInterval(start, end string) (Interval, error) {
	startTime, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	endTime, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}

	return NewInterval(startTime, endTime)
}

// Overlaps 判断两个左闭右开区间是否相交，端点相接不算重叠。
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains 判断 b 是否完整地落在 a 之内。
func (a Interval) Contains(b Interval) bool {
	return a.Start <= b.Start && a.End >= b.End
}

func (a Interval) DurationMinutes() int {
	return int(a.End - a.Start)
}

func (a Interval) String() string {
	return a.Start.String() + "-" + a.End.String()
}
