package retry

import (
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/errs"
)

// Config 重试策略配置，由配置文件反序列化而来。
// Delays 按尝试序号给出显式间隔，超出部分用 DefaultDelay 兜底。
type Config struct {
	// MaxAttempts 含首次发送在内的最大尝试次数
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
	// Delays 第 n 次尝试失败后到第 n+1 次之间的间隔，单位秒
	Delays []int `json:"delays" yaml:"delays"`
	// DefaultDelay 序号超出 Delays 时使用的间隔，单位秒
	DefaultDelay int `json:"defaultDelay" yaml:"defaultDelay"`
}

// Policy 无状态重试策略。
// 尝试序号由调用方携带，同一个 Policy 可被并发使用。
type Policy struct {
	maxAttempts  int
	delays       []time.Duration
	defaultDelay time.Duration
}

func NewPolicy(cfg Config) (*Policy, error) {
	if cfg.MaxAttempts <= 0 {
		return nil, fmt.Errorf("%w: maxAttempts = %d", errs.ErrInvalidParameter, cfg.MaxAttempts)
	}
	if cfg.DefaultDelay <= 0 && len(cfg.Delays) < cfg.MaxAttempts-1 {
		return nil, fmt.Errorf("%w: delays 不足且未配置 defaultDelay", errs.ErrInvalidParameter)
	}
	delays := make([]time.Duration, 0, len(cfg.Delays))
	for _, d := range cfg.Delays {
		if d <= 0 {
			return nil, fmt.Errorf("%w: 间隔必须为正数，得到 %d", errs.ErrInvalidParameter, d)
		}
		delays = append(delays, time.Duration(d)*time.Second)
	}
	return &Policy{
		maxAttempts:  cfg.MaxAttempts,
		delays:       delays,
		defaultDelay: time.Duration(cfg.DefaultDelay) * time.Second,
	}, nil
}

// NextDelay 第 attempt 次尝试失败后的重试间隔。
// 尝试序号从 1 开始计数。返回 false 表示重试次数耗尽。
func (p *Policy) NextDelay(attempt int) (time.Duration, bool) {
	if attempt < 1 || attempt >= p.maxAttempts {
		return 0, false
	}
	idx := attempt - 1
	if idx < len(p.delays) {
		return p.delays[idx], true
	}
	return p.defaultDelay, true
}

// MaxAttempts 含首次发送在内的最大尝试次数
func (p *Policy) MaxAttempts() int {
	return p.maxAttempts
}
