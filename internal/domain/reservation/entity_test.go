//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"escape-rooms-backend/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow  = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	holdFor  = 30 * time.Minute
	testCalc = reservation.NewTieredPriceCalculator()
)

func newTestHold(t *testing.T, numPeople int) *reservation.Reservation {
	t.Helper()
	customer, err := reservation.NewCustomer("Ada Lovelace", "ada@example.com", "+34600111222")
	require.NoError(t, err)

	res, err := reservation.NewHold(uuid.New(), uuid.New(), customer, numPeople, testCalc, testNow, holdFor)
	require.NoError(t, err)
	return res
}

func TestNewHold(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		res := newTestHold(t, 2)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.Equal(t, testNow, res.CreatedAt())
		assert.Equal(t, testNow.Add(holdFor), res.ExpiresAt())
		assert.True(t, res.TotalPrice().Amount().Equal(decimal.NewFromInt(60)))
	})

	t.Run("人数バリデーション", func(t *testing.T) {
		tests := []struct {
			name      string
			numPeople int
			errIs     error
		}{
			{name: "1人OK", numPeople: 1},
			{name: "10人OK", numPeople: 10},
			{name: "0人NG", numPeople: 0, errIs: reservation.ErrPartySizeOutOfRange},
			{name: "11人NG", numPeople: 11, errIs: reservation.ErrPartySizeOutOfRange},
			{name: "負数NG", numPeople: -1, errIs: reservation.ErrPartySizeOutOfRange},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				customer, err := reservation.NewCustomer("Ada", "ada@example.com", "+34600111222")
				require.NoError(t, err)

				_, err = reservation.NewHold(uuid.New(), uuid.New(), customer, tt.numPeople, testCalc, testNow, holdFor)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					return
				}
				assert.NoError(t, err)
			})
		}
	})
}

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name  string
		cname string
		email string
		phone string
		errIs error
	}{
		{name: "有効な入力OK", cname: "Ada", email: "ada@example.com", phone: "+34600111222"},
		{name: "空の名前NG", cname: "  ", email: "ada@example.com", phone: "1", errIs: reservation.ErrEmptyCustomerName},
		{name: "不正なメールNG", cname: "Ada", email: "not-an-email", phone: "1", errIs: reservation.ErrInvalidEmail},
		{name: "空の電話NG", cname: "Ada", email: "ada@example.com", phone: "", errIs: reservation.ErrEmptyPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := reservation.NewCustomer(tt.cname, tt.email, tt.phone)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, c.Email())
		})
	}

	t.Run("メールは小文字に正規化", func(t *testing.T) {
		c, err := reservation.NewCustomer(" Ada ", " Ada@Example.COM ", " +34 600 ")
		require.NoError(t, err)
		assert.Equal(t, "Ada", c.Name())
		assert.Equal(t, "ada@example.com", c.Email())
		assert.Equal(t, "+34 600", c.Phone())
	})
}

func TestIsExpired(t *testing.T) {
	res := newTestHold(t, 2)
	expiry := res.ExpiresAt()

	t.Run("期限前は未失効", func(t *testing.T) {
		assert.False(t, res.IsExpired(expiry.Add(-time.Second)))
	})

	t.Run("期限ちょうどはまだ有効", func(t *testing.T) {
		assert.False(t, res.IsExpired(expiry))
	})

	t.Run("期限後は失効", func(t *testing.T) {
		assert.True(t, res.IsExpired(expiry.Add(time.Second)))
	})

	t.Run("paidは失効しない", func(t *testing.T) {
		paid := newTestHold(t, 2)
		require.NoError(t, paid.ChangeStatus(reservation.StatusPaid))
		assert.False(t, paid.IsExpired(expiry.Add(time.Hour)))
	})

	t.Run("cancelledは失効しない", func(t *testing.T) {
		cancelled := newTestHold(t, 2)
		require.NoError(t, cancelled.ChangeStatus(reservation.StatusCancelled))
		assert.False(t, cancelled.IsExpired(expiry.Add(time.Hour)))
	})
}

func TestChangeStatus(t *testing.T) {
	t.Run("同一ステータスへの遷移NG", func(t *testing.T) {
		res := newTestHold(t, 2)
		assert.ErrorIs(t, res.ChangeStatus(reservation.StatusPending), reservation.ErrAlreadyInStatus)
	})

	t.Run("不明なステータスNG", func(t *testing.T) {
		res := newTestHold(t, 2)
		assert.ErrorIs(t, res.ChangeStatus(reservation.Status("refunded")), reservation.ErrUnknownStatus)
	})

	t.Run("pendingからpaidOK", func(t *testing.T) {
		res := newTestHold(t, 2)
		require.NoError(t, res.ChangeStatus(reservation.StatusPaid))
		assert.Equal(t, reservation.StatusPaid, res.Status())
	})
}

func TestChangePartySize(t *testing.T) {
	t.Run("減員NG", func(t *testing.T) {
		res := newTestHold(t, 4)
		changed, err := res.ChangePartySize(3, testCalc)
		assert.ErrorIs(t, err, reservation.ErrCannotDecrease)
		assert.False(t, changed)
		assert.Equal(t, 4, res.NumPeople())
		assert.True(t, res.TotalPrice().Amount().Equal(decimal.NewFromInt(100)))
	})

	t.Run("同数は変更なし", func(t *testing.T) {
		res := newTestHold(t, 4)
		changed, err := res.ChangePartySize(4, testCalc)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("増員で料金再計算", func(t *testing.T) {
		res := newTestHold(t, 3)
		require.True(t, res.TotalPrice().Amount().Equal(decimal.NewFromInt(90)))

		expiry := res.ExpiresAt()
		changed, err := res.ChangePartySize(5, testCalc)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 5, res.NumPeople())
		assert.True(t, res.TotalPrice().Amount().Equal(decimal.NewFromInt(125)))
		assert.Equal(t, expiry, res.ExpiresAt())
	})

	t.Run("上限超過NG", func(t *testing.T) {
		res := newTestHold(t, 4)
		_, err := res.ChangePartySize(11, testCalc)
		assert.ErrorIs(t, err, reservation.ErrPartySizeOutOfRange)
	})
}
