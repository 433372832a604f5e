package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

func mustInterval(t *testing.T, start, end string) schedule.Interval {
	t.Helper()

	interval, err := schedule.ParseInterval(start, end)
	require.NoError(t, err)
	return interval
}

func TestParseTimeOfDay(t *testing.T) {
	valid := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"9:30", 570},
		{"12:00", 720},
		{"23:59", 1439},
	}
	for _, tc := range valid {
		tod, err := schedule.ParseTimeOfDay(tc.input)
		require.NoError(t, err, "输入 %q", tc.input)
		require.Equal(t, tc.want, int(tod), "输入 %q", tc.input)
	}

	invalid := []string{"", "24:00", "12:60", "12:5", "1200", "ab:cd", "-1:00", "12:000", "012:30", " 12:30"}
	for _, input := range invalid {
		_, err := schedule.ParseTimeOfDay(input)
		require.ErrorIs(t, err, schedule.ErrInvalidFormat, "输入 %q", input)
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	// 所有补零的 HH:MM 字符串解析后再格式化应当得到原字符串
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			input := fmt.Sprintf("%02d:%02d", hour, minute)
			tod, err := schedule.ParseTimeOfDay(input)
			require.NoError(t, err)
			require.Equal(t, input, tod.String())
		}
	}
}

func TestNewInterval(t *testing.T) {
	start, err := schedule.ParseTimeOfDay("09:00")
	require.NoError(t, err)
	end, err := schedule.ParseTimeOfDay("17:00")
	require.NoError(t, err)

	interval, err := schedule.NewInterval(start, end)
	require.NoError(t, err)
	require.Equal(t, "09:00-17:00", interval.String())
	require.Equal(t, 480, interval.DurationMinutes())

	// 零长度和倒置的区间都不允许
	_, err = schedule.NewInterval(start, start)
	require.ErrorIs(t, err, schedule.ErrInvalidRange)
	_, err = schedule.NewInterval(end, start)
	require.ErrorIs(t, err, schedule.ErrInvalidRange)
}

func TestIntervalOverlaps(t *testing.T) {
	testCases := []struct {
		name string
		a    schedule.Interval
		b    schedule.Interval
		want bool
	}{
		{"端点相接不算重叠", mustInterval(t, "09:00", "10:00"), mustInterval(t, "10:00", "11:00"), false},
		{"部分重叠", mustInterval(t, "10:00", "11:00"), mustInterval(t, "10:30", "11:30"), true},
		{"完全包含", mustInterval(t, "09:00", "17:00"), mustInterval(t, "10:00", "11:00"), true},
		{"完全相同", mustInterval(t, "09:00", "10:00"), mustInterval(t, "09:00", "10:00"), true},
		{"互不相交", mustInterval(t, "09:00", "10:00"), mustInterval(t, "14:00", "15:00"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			require.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestIntervalContains(t *testing.T) {
	block := mustInterval(t, "09:00", "17:00")

	require.True(t, block.Contains(mustInterval(t, "09:00", "09:30")))
	require.True(t, block.Contains(mustInterval(t, "09:00", "17:00")))
	require.True(t, block.Contains(mustInterval(t, "16:00", "17:00")))
	require.False(t, block.Contains(mustInterval(t, "08:30", "09:30")))
	require.False(t, block.Contains(mustInterval(t, "16:30", "17:30")))
}
