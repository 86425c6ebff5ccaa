// internal/srs/date_test.go
package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfLocalDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"昼間の時刻は同日の0時に切り詰める",
			time.Date(2024, 5, 10, 14, 30, 45, 123, jst),
			time.Date(2024, 5, 10, 0, 0, 0, 0, jst),
		},
		{
			"0時ちょうどはそのまま",
			time.Date(2024, 5, 10, 0, 0, 0, 0, jst),
			time.Date(2024, 5, 10, 0, 0, 0, 0, jst),
		},
		{
			"23時59分も同日扱い",
			time.Date(2024, 5, 10, 23, 59, 59, 0, jst),
			time.Date(2024, 5, 10, 0, 0, 0, 0, jst),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(StartOfLocalDay(tt.in)))
		})
	}
}

func TestAddDays(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	base := time.Date(2024, 5, 10, 18, 0, 0, 0, jst)

	assert.True(t, time.Date(2024, 5, 11, 0, 0, 0, 0, jst).Equal(AddDays(base, 1)))
	assert.True(t, time.Date(2024, 5, 13, 0, 0, 0, 0, jst).Equal(AddDays(base, 3)))
	// 月跨ぎ
	assert.True(t, time.Date(2024, 6, 9, 0, 0, 0, 0, jst).Equal(AddDays(base, 30)))
	// 0日後は日境界への切り詰めのみ
	assert.True(t, time.Date(2024, 5, 10, 0, 0, 0, 0, jst).Equal(AddDays(base, 0)))
}
