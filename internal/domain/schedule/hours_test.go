//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"escape-rooms-backend/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
)

func TestHoursFor(t *testing.T) {
	tests := []struct {
		name  string
		day   time.Weekday
		open  int
		close int
	}{
		{name: "平日は12-21", day: time.Monday, open: 12, close: 21},
		{name: "木曜も平日扱い", day: time.Thursday, open: 12, close: 21},
		{name: "金曜は1時間延長", day: time.Friday, open: 12, close: 22},
		{name: "土曜は朝から", day: time.Saturday, open: 10, close: 22},
		{name: "日曜は早めに閉店", day: time.Sunday, open: 10, close: 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := schedule.HoursFor(tt.day)
			assert.Equal(t, tt.open, h.Open)
			assert.Equal(t, tt.close, h.Close)
		})
	}
}

func TestHourlySlotTimes(t *testing.T) {
	t.Run("閉店時刻は含まない", func(t *testing.T) {
		times := schedule.HourlySlotTimes(time.Monday)
		assert.Equal(t, []int{12, 13, 14, 15, 16, 17, 18, 19, 20}, times)
	})

	t.Run("土曜は12枠", func(t *testing.T) {
		times := schedule.HourlySlotTimes(time.Saturday)
		assert.Len(t, times, 12)
		assert.Equal(t, 10, times[0])
		assert.Equal(t, 21, times[len(times)-1])
	})
}
