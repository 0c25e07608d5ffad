//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"escape-rooms-backend/internal/domain/catalog"
	"escape-rooms-backend/internal/domain/reservation"
	"escape-rooms-backend/internal/handler/dto/request"
	"escape-rooms-backend/internal/infra"
	"escape-rooms-backend/internal/infra/events"
	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/usecase/commands"
	"escape-rooms-backend/tests/common/fakes"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday within business hours, frozen for every test.
var testNow = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

type bookingFixture struct {
	state     *fakes.State
	clock     *clock.MockClock
	publisher *fakes.RecordingPublisher
	cache     *fakes.RecordingCache
	cmds      commands.BookingCommands
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	state := fakes.NewState()
	clk := clock.NewMockClock(testNow)
	publisher := fakes.NewRecordingPublisher()
	cache := fakes.NewRecordingCache()
	cfg := config.BookingConfig{
		HoldDuration:   30 * time.Minute,
		RescheduleLead: time.Hour,
	}
	cmds := commands.NewBookingCommands(
		fakes.NewUoW(state),
		fakes.NewViewQueries(state),
		reservation.NewTieredPriceCalculator(),
		clk,
		cfg,
		publisher,
		cache,
	)
	return &bookingFixture{
		state:     state,
		clock:     clk,
		publisher: publisher,
		cache:     cache,
		cmds:      cmds,
	}
}

func (f *bookingFixture) seedRoomAndSlot(t *testing.T, active bool, status catalog.SlotStatus) (uuid.UUID, uuid.UUID) {
	t.Helper()
	roomID := uuid.New()
	f.state.AddRoom(roomID, "The Vault", active)
	at, err := catalog.NewTimeOfDay(15, 0)
	require.NoError(t, err)
	slotID := f.state.AddSlot(roomID, catalog.NewDate(2026, time.September, 14), at, status)
	return roomID, slotID
}

func holdRequest(roomID uuid.UUID) request.CreateHoldRequest {
	return request.CreateHoldRequest{
		RoomID:    roomID,
		Date:      "2026-09-14",
		Time:      "15:00",
		Name:      "Alice Carter",
		Email:     "alice@example.com",
		Phone:     "+34600111222",
		NumPeople: 3,
	}
}

func TestBookingCommands_CreateHold(t *testing.T) {
	t.Run("正常系: ホールドが作成されスロットが予約済みになる", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, slotID := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)

		view, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		require.NoError(t, err)

		assert.Equal(t, "pending", view.Status)
		assert.Equal(t, "90.00", view.TotalPrice)
		assert.Equal(t, "alice@example.com", view.CustomerEmail)
		assert.Equal(t, testNow.Add(30*time.Minute), view.ExpiresAt)
		assert.Equal(t, catalog.SlotStatusReserved, f.state.Slots[slotID].Status)

		require.Len(t, f.publisher.Events, 1)
		assert.Equal(t, events.EventCreated, f.publisher.Events[0].Type)
		assert.Equal(t, []uuid.UUID{roomID}, f.cache.Invalidated)
	})

	t.Run("正常系: 4人以上は割引単価で計算される", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)
		req := holdRequest(roomID)
		req.NumPeople = 4

		view, err := f.cmds.CreateHold(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "100.00", view.TotalPrice)
	})

	t.Run("異常系: バリデーションエラー", func(t *testing.T) {
		testCases := []struct {
			name    string
			mutate  func(req *request.CreateHoldRequest)
			wantErr error
		}{
			{
				name:    "日付形式が不正",
				mutate:  func(req *request.CreateHoldRequest) { req.Date = "14/09/2026" },
				wantErr: commands.ErrInvalidDate,
			},
			{
				name:    "時刻形式が不正",
				mutate:  func(req *request.CreateHoldRequest) { req.Time = "3pm" },
				wantErr: commands.ErrInvalidTime,
			},
			{
				name:    "過去日",
				mutate:  func(req *request.CreateHoldRequest) { req.Date = "2026-09-13" },
				wantErr: commands.ErrPastDate,
			},
			{
				name:    "人数が下限未満",
				mutate:  func(req *request.CreateHoldRequest) { req.NumPeople = 0 },
				wantErr: commands.ErrPartySizeOutOfRange,
			},
			{
				name:    "人数が上限超過",
				mutate:  func(req *request.CreateHoldRequest) { req.NumPeople = 11 },
				wantErr: commands.ErrPartySizeOutOfRange,
			},
			{
				name:    "メールアドレスが不正",
				mutate:  func(req *request.CreateHoldRequest) { req.Email = "not-an-email" },
				wantErr: commands.ErrInvalidCustomer,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newBookingFixture(t)
				roomID, slotID := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)

				req := holdRequest(roomID)
				tc.mutate(&req)

				_, err := f.cmds.CreateHold(context.Background(), req)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, catalog.SlotStatusActive, f.state.Slots[slotID].Status)
				assert.Empty(t, f.publisher.Events)
			})
		}
	})

	t.Run("異常系: ルームが存在しない", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.cmds.CreateHold(context.Background(), holdRequest(uuid.New()))
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("異常系: ルームが非公開", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, false, catalog.SlotStatusActive)
		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrRoomInactive)
	})

	t.Run("異常系: スロットが存在しない", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID := uuid.New()
		f.state.AddRoom(roomID, "The Vault", true)
		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrSlotNotFound)
	})

	t.Run("異常系: スロットが既に予約済み", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, true, catalog.SlotStatusReserved)
		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Empty(t, f.publisher.Events)
	})

	t.Run("異常系: 一意制約違反はスロット利用不可として扱う", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)
		f.state.CreateErr = infra.WrapRepoErr("duplicate slot binding", nil, infra.KindDuplicateKey)

		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("異常系: ロックタイムアウトはリトライ可能なビジーとして返す", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)
		f.state.SlotLockErr = fakes.LockTimeoutErr()

		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrBusy)
	})

	t.Run("正常系: 同一スロットへの二重ホールドは二回目が失敗する", func(t *testing.T) {
		f := newBookingFixture(t)
		roomID, _ := f.seedRoomAndSlot(t, true, catalog.SlotStatusActive)

		_, err := f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		require.NoError(t, err)

		_, err = f.cmds.CreateHold(context.Background(), holdRequest(roomID))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Len(t, f.state.Reservations, 1)
	})
}
