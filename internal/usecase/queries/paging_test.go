//go:build unit

package queries_test

import (
	"testing"

	"escape-rooms-backend/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	testCases := []struct {
		name        string
		number      int
		perPage     int
		wantNumber  int
		wantPerPage int
		wantOffset  int
	}{
		{name: "デフォルト値", number: 0, perPage: 0, wantNumber: 1, wantPerPage: 20, wantOffset: 0},
		{name: "負のページ番号はクランプされる", number: -3, perPage: 10, wantNumber: 1, wantPerPage: 10, wantOffset: 0},
		{name: "上限超過のper_pageはクランプされる", number: 1, perPage: 500, wantNumber: 1, wantPerPage: 100, wantOffset: 0},
		{name: "オフセット計算", number: 3, perPage: 25, wantNumber: 3, wantPerPage: 25, wantOffset: 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := queries.NewPage(tc.number, tc.perPage)
			assert.Equal(t, tc.wantNumber, page.Number)
			assert.Equal(t, tc.wantPerPage, page.PerPage)
			assert.Equal(t, tc.wantOffset, page.Offset())
			assert.Equal(t, tc.wantPerPage, page.Limit())
		})
	}
}
