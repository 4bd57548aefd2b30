package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_InHours(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	g, err := NewGate(9, 17, loc)
	require.NoError(t, err)

	testCases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{
			name: "窗口开始时刻属于窗口内",
			t:    time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
			want: true,
		},
		{
			name: "窗口结束时刻属于窗口外",
			t:    time.Date(2025, 3, 10, 17, 0, 0, 0, loc),
			want: false,
		},
		{
			name: "午间属于窗口内",
			t:    time.Date(2025, 3, 10, 12, 30, 0, 0, loc),
			want: true,
		},
		{
			name: "凌晨属于窗口外",
			t:    time.Date(2025, 3, 10, 3, 0, 0, 0, loc),
			want: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, g.InHours(tc.t))
		})
	}
}

func TestGate_NextInHours(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	g, err := NewGate(9, 17, loc)
	require.NoError(t, err)

	testCases := []struct {
		name string
		t    time.Time
		want time.Time
	}{
		{
			name: "窗口内原样返回",
			t:    time.Date(2025, 3, 10, 10, 15, 0, 0, loc),
			want: time.Date(2025, 3, 10, 10, 15, 0, 0, loc),
		},
		{
			name: "早于窗口推迟到当天窗口开始",
			t:    time.Date(2025, 3, 10, 6, 0, 0, 0, loc),
			want: time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
		},
		{
			name: "晚于窗口推迟到次日窗口开始",
			t:    time.Date(2025, 3, 10, 20, 0, 0, 0, loc),
			want: time.Date(2025, 3, 11, 9, 0, 0, 0, loc),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tc.want.Equal(g.NextInHours(tc.t)))
		})
	}
}

// 窗口按本地时钟判定，UTC 时刻在夏令时切换前后落进不同的本地小时
func TestGate_InHours_DaylightSaving(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	g, err := NewGate(9, 17, loc)
	require.NoError(t, err)

	testCases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{
			name: "春季切换前 0830 UTC 即本地 0830 属于窗口外",
			t:    time.Date(2025, 3, 29, 8, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "春季切换后 0830 UTC 即本地 0930 属于窗口内",
			t:    time.Date(2025, 3, 30, 8, 30, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "春季切换后 1630 UTC 即本地 1730 属于窗口外",
			t:    time.Date(2025, 3, 30, 16, 30, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "秋季切换前 0830 UTC 即本地 0930 属于窗口内",
			t:    time.Date(2025, 10, 25, 8, 30, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "秋季切换后 0830 UTC 即本地 0830 属于窗口外",
			t:    time.Date(2025, 10, 26, 8, 30, 0, 0, time.UTC),
			want: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, g.InHours(tc.t))
		})
	}
}

func TestGate_NextInHours_DaylightSaving(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	g, err := NewGate(9, 17, loc)
	require.NoError(t, err)

	// 切换当天 0700 UTC 是本地 0800，顺延到本地 0900 即 0800 UTC
	got := g.NextInHours(time.Date(2025, 3, 30, 7, 0, 0, 0, time.UTC))
	assert.True(t, got.Equal(time.Date(2025, 3, 30, 8, 0, 0, 0, time.UTC)))
}

func TestNewGate_InvalidWindow(t *testing.T) {
	t.Parallel()
	_, err := NewGate(17, 9, time.UTC)
	assert.Error(t, err)
	_, err = NewGate(-1, 10, time.UTC)
	assert.Error(t, err)
}
