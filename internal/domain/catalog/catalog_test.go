//go:build unit

package catalog_test

import (
	"testing"
	"time"

	"escape-rooms-backend/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "有効な日付OK", input: "2026-09-15"},
		{name: "スラッシュ区切りNG", input: "2026/09/15", errIs: catalog.ErrInvalidDate},
		{name: "存在しない日付NG", input: "2026-02-30", errIs: catalog.ErrInvalidDate},
		{name: "空文字NG", input: "", errIs: catalog.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := catalog.ParseDate(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "有効な時刻OK", input: "15:00"},
		{name: "秒付きNG", input: "15:00:00", errIs: catalog.ErrInvalidTime},
		{name: "25時NG", input: "25:00", errIs: catalog.ErrInvalidTime},
		{name: "空文字NG", input: "", errIs: catalog.ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := catalog.ParseTimeOfDay(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, tod.String())
		})
	}
}

func TestTimeOfDayAt(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	d, err := catalog.ParseDate("2026-09-18")
	require.NoError(t, err)
	tod, err := catalog.NewTimeOfDay(14, 30)
	require.NoError(t, err)

	at := tod.At(d, madrid)
	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.September, at.Month())
	assert.Equal(t, 18, at.Day())
	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, madrid, at.Location())
}

func TestSlotsForDay(t *testing.T) {
	roomID := uuid.New()

	t.Run("平日は9枠", func(t *testing.T) {
		// 2026-09-14 is a Monday
		d, err := catalog.ParseDate("2026-09-14")
		require.NoError(t, err)

		slots := catalog.SlotsForDay(roomID, d)
		require.Len(t, slots, 9)
		assert.Equal(t, "12:00", slots[0].StartTime().String())
		assert.Equal(t, "20:00", slots[len(slots)-1].StartTime().String())
		for _, s := range slots {
			assert.Equal(t, roomID, s.RoomID())
			assert.Equal(t, catalog.SlotStatusActive, s.Status())
			assert.True(t, d.Equal(s.Date()))
		}
	})

	t.Run("土曜は12枠", func(t *testing.T) {
		// 2026-09-19 is a Saturday
		d, err := catalog.ParseDate("2026-09-19")
		require.NoError(t, err)

		slots := catalog.SlotsForDay(roomID, d)
		require.Len(t, slots, 12)
		assert.Equal(t, "10:00", slots[0].StartTime().String())
		assert.Equal(t, "21:00", slots[len(slots)-1].StartTime().String())
	})
}
