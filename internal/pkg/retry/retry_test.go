package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_NextDelay(t *testing.T) {
	t.Parallel()
	p, err := NewPolicy(Config{
		MaxAttempts:  4,
		Delays:       []int{60, 300},
		DefaultDelay: 900,
	})
	require.NoError(t, err)

	testCases := []struct {
		name      string
		attempt   int
		wantDelay time.Duration
		wantOK    bool
	}{
		{
			name:      "首次失败走显式间隔",
			attempt:   1,
			wantDelay: time.Minute,
			wantOK:    true,
		},
		{
			name:      "第二次失败走显式间隔",
			attempt:   2,
			wantDelay: 5 * time.Minute,
			wantOK:    true,
		},
		{
			name:      "超出显式间隔走兜底间隔",
			attempt:   3,
			wantDelay: 15 * time.Minute,
			wantOK:    true,
		},
		{
			name:    "达到最大尝试次数不再重试",
			attempt: 4,
			wantOK:  false,
		},
		{
			name:    "非法序号不重试",
			attempt: 0,
			wantOK:  false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			delay, ok := p.NextDelay(tc.attempt)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantDelay, delay)
			}
		})
	}
}

func TestNewPolicy_InvalidConfig(t *testing.T) {
	t.Parallel()
	_, err := NewPolicy(Config{MaxAttempts: 0})
	assert.Error(t, err)
	_, err = NewPolicy(Config{MaxAttempts: 3, Delays: []int{60}})
	assert.Error(t, err)
	_, err = NewPolicy(Config{MaxAttempts: 3, Delays: []int{-1}, DefaultDelay: 60})
	assert.Error(t, err)
}
