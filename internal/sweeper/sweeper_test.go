//go:build unit

package sweeper

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"escape-rooms-backend/internal/pkg/clock"
	"escape-rooms-backend/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweepCommands struct {
	mu      sync.Mutex
	ids     []uuid.UUID
	listErr error
	// per-id outcomes; missing entries cancel successfully
	skip    map[uuid.UUID]bool
	fail    map[uuid.UUID]error
	cancels []uuid.UUID
}

func newFakeSweepCommands(ids ...uuid.UUID) *fakeSweepCommands {
	return &fakeSweepCommands{
		ids:  ids,
		skip: make(map[uuid.UUID]bool),
		fail: make(map[uuid.UUID]error),
	}
}

func (f *fakeSweepCommands) ListExpired(context.Context, time.Time) ([]uuid.UUID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeSweepCommands) CancelExpired(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	f.mu.Lock()
	f.cancels = append(f.cancels, id)
	f.mu.Unlock()

	if err, ok := f.fail[id]; ok {
		return false, err
	}
	if f.skip[id] {
		return false, nil
	}
	return true, nil
}

func (f *fakeSweepCommands) cancelCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cancels)
}

func newTestSweeper(cmds *fakeSweepCommands) (*Sweeper, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cmds, time.Minute, clk, logger), clk
}

func TestSweeper_RunOnce(t *testing.T) {
	t.Run("正常系: 全件キャンセルされレポートに集計される", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
		cmds := newFakeSweepCommands(ids...)
		s, _ := newTestSweeper(cmds)

		report, err := s.RunOnce(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Scanned)
		assert.Equal(t, 3, report.Cancelled)
		assert.Equal(t, 0, report.Skipped)
		assert.Equal(t, 0, report.Failed)
		assert.False(t, report.DryRun)
		assert.Equal(t, ids, cmds.cancels)
	})

	t.Run("正常系: ドライランは件数だけ数えて何も実行しない", func(t *testing.T) {
		cmds := newFakeSweepCommands(uuid.New(), uuid.New())
		s, _ := newTestSweeper(cmds)

		report, err := s.RunOnce(context.Background(), true)
		require.NoError(t, err)

		assert.True(t, report.DryRun)
		assert.Equal(t, 2, report.Scanned)
		assert.Equal(t, 2, report.Cancelled)
		assert.Zero(t, cmds.cancelCount())
	})

	t.Run("正常系: 1件の失敗が残りを止めない", func(t *testing.T) {
		good1, bad, good2 := uuid.New(), uuid.New(), uuid.New()
		cmds := newFakeSweepCommands(good1, bad, good2)
		cmds.fail[bad] = errs.New("row vanished mid-flight")
		s, _ := newTestSweeper(cmds)

		report, err := s.RunOnce(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Scanned)
		assert.Equal(t, 2, report.Cancelled)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], bad.String())
		assert.Equal(t, 3, cmds.cancelCount())
	})

	t.Run("正常系: スキップされた件はskippedに計上される", func(t *testing.T) {
		kept, expired := uuid.New(), uuid.New()
		cmds := newFakeSweepCommands(kept, expired)
		cmds.skip[kept] = true
		s, _ := newTestSweeper(cmds)

		report, err := s.RunOnce(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Cancelled)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("正常系: 記録されるエラーは上限で打ち切られる", func(t *testing.T) {
		var ids []uuid.UUID
		cmds := newFakeSweepCommands()
		for i := 0; i < maxReportedErrors+5; i++ {
			id := uuid.New()
			ids = append(ids, id)
			cmds.fail[id] = errs.New("broken")
		}
		cmds.ids = ids
		s, _ := newTestSweeper(cmds)

		report, err := s.RunOnce(context.Background(), false)
		require.NoError(t, err)

		assert.Equal(t, maxReportedErrors+5, report.Failed)
		assert.Len(t, report.Errors, maxReportedErrors)
	})

	t.Run("異常系: スキャン自体の失敗はエラーとして返る", func(t *testing.T) {
		cmds := newFakeSweepCommands()
		cmds.listErr = errs.New("connection refused")
		s, _ := newTestSweeper(cmds)

		_, err := s.RunOnce(context.Background(), false)
		assert.Error(t, err)
	})
}

func TestSweeper_Tick(t *testing.T) {
	t.Run("正常系: 実行中のティックは重複起動しない", func(t *testing.T) {
		cmds := newFakeSweepCommands(uuid.New())
		s, _ := newTestSweeper(cmds)

		s.inFlight.Store(true)
		s.tick()
		assert.Zero(t, cmds.cancelCount())

		s.inFlight.Store(false)
		s.tick()
		assert.Equal(t, 1, cmds.cancelCount())
	})

	t.Run("正常系: パニックしてもスイーパーは死なない", func(t *testing.T) {
		cmds := newFakeSweepCommands(uuid.New())
		s, _ := newTestSweeper(cmds)
		cmds.listErr = nil
		cmds.fail[cmds.ids[0]] = errs.New("boom")

		require.NotPanics(t, func() { s.tick() })
		assert.False(t, s.inFlight.Load())
	})
}
