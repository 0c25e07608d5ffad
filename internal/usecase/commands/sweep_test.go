//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepFixture struct {
	state     *fakes.State
	publisher *fakes.RecordingPublisher
	cmds      commands.SweepCommands
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	state := fakes.NewState()
	publisher := fakes.NewRecordingPublisher()
	return &sweepFixture{
		state:     state,
		publisher: publisher,
		cmds:      commands.NewSweepCommands(fakes.NewUoW(state), publisher),
	}
}

func (f *sweepFixture) seedHold(t *testing.T, status reservation.Status, expiresAt time.Time) (uuid.UUID, uuid.UUID) {
	t.Helper()
	roomID := uuid.New()
	f.state.AddRoom(roomID, "The Vault", true)

	at, err := catalog.NewTimeOfDay(15, 0)
	require.NoError(t, err)
	slotID := f.state.AddSlot(roomID, catalog.NewDate(2026, time.September, 14), at, catalog.SlotStatusReserved)

	customer, err := reservation.NewCustomer("Alice Carter", "alice@example.com", "+34600111222")
	require.NoError(t, err)

	resID := uuid.New()
	f.state.AddReservation(&fakes.ReservationRow{
		ID:         resID,
		RoomID:     roomID,
		TimeSlotID: slotID,
		Customer:   customer,
		NumPeople:  3,
		TotalPrice: reservation.MustMoney(decimal.NewFromInt(90)),
		Status:     status,
		CreatedAt:  expiresAt.Add(-30 * time.Minute),
		ExpiresAt:  expiresAt,
	})
	return resID, slotID
}

func TestSweepCommands_ListExpired(t *testing.T) {
	t.Run("正常系: 期限切れのpendingのみを期限順で返す", func(t *testing.T) {
		f := newSweepFixture(t)
		older, _ := f.seedHold(t, reservation.StatusPending, testNow.Add(-10*time.Minute))
		newer, _ := f.seedHold(t, reservation.StatusPending, testNow.Add(-5*time.Minute))
		f.seedHold(t, reservation.StatusPending, testNow.Add(5*time.Minute))
		f.seedHold(t, reservation.StatusPaid, testNow.Add(-10*time.Minute))
		f.seedHold(t, reservation.StatusCancelled, testNow.Add(-10*time.Minute))

		ids, err := f.cmds.ListExpired(context.Background(), testNow)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{older, newer}, ids)
	})

	t.Run("正常系: 期限ちょうどはまだ期限切れではない", func(t *testing.T) {
		f := newSweepFixture(t)
		f.seedHold(t, reservation.StatusPending, testNow)

		ids, err := f.cmds.ListExpired(context.Background(), testNow)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestSweepCommands_CancelExpired(t *testing.T) {
	t.Run("正常系: 期限切れホールドをキャンセルしスロットを解放する", func(t *testing.T) {
		f := newSweepFixture(t)
		resID, slotID := f.seedHold(t, reservation.StatusPending, testNow.Add(-time.Minute))

		cancelled, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		require.NoError(t, err)
		assert.True(t, cancelled)

		assert.Equal(t, reservation.StatusCancelled, f.state.Reservations[resID].Status)
		assert.Equal(t, catalog.SlotStatusActive, f.state.Slots[slotID].Status)
		// historical slot reference survives cancellation
		assert.Equal(t, slotID, f.state.Reservations[resID].TimeSlotID)

		require.Len(t, f.publisher.Events, 1)
		assert.Equal(t, events.EventExpired, f.publisher.Events[0].Type)
	})

	t.Run("正常系: ロック取得後に支払済みになっていたら何もしない", func(t *testing.T) {
		f := newSweepFixture(t)
		resID, slotID := f.seedHold(t, reservation.StatusPaid, testNow.Add(-time.Minute))

		cancelled, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		require.NoError(t, err)
		assert.False(t, cancelled)
		assert.Equal(t, reservation.StatusPaid, f.state.Reservations[resID].Status)
		assert.Equal(t, catalog.SlotStatusReserved, f.state.Slots[slotID].Status)
		assert.Empty(t, f.publisher.Events)
	})

	t.Run("正常系: まだ期限内なら何もしない", func(t *testing.T) {
		f := newSweepFixture(t)
		resID, _ := f.seedHold(t, reservation.StatusPending, testNow.Add(time.Minute))

		cancelled, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		require.NoError(t, err)
		assert.False(t, cancelled)
		assert.Equal(t, reservation.StatusPending, f.state.Reservations[resID].Status)
	})

	t.Run("正常系: 予約が消えていたら成功扱いでスキップする", func(t *testing.T) {
		f := newSweepFixture(t)
		cancelled, err := f.cmds.CancelExpired(context.Background(), uuid.New(), testNow)
		require.NoError(t, err)
		assert.False(t, cancelled)
	})

	t.Run("正常系: 二重実行しても二回目は何もしない", func(t *testing.T) {
		f := newSweepFixture(t)
		resID, _ := f.seedHold(t, reservation.StatusPending, testNow.Add(-time.Minute))

		first, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		require.NoError(t, err)
		assert.True(t, first)

		second, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		require.NoError(t, err)
		assert.False(t, second)
		require.Len(t, f.publisher.Events, 1)
	})

	t.Run("異常系: ロックタイムアウトはビジーとして返す", func(t *testing.T) {
		f := newSweepFixture(t)
		resID, _ := f.seedHold(t, reservation.StatusPending, testNow.Add(-time.Minute))
		f.state.ReservationLockErr = fakes.LockTimeoutErr()

		_, err := f.cmds.CancelExpired(context.Background(), resID, testNow)
		assert.ErrorIs(t, err, commands.ErrBusy)
	})
}
