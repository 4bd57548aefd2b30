package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// 引擎对 redis 的用法很单一：快照缓存、重试去重、分布式锁。
// 按命令维度打点足够定位问题。
var (
	commandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_commands_total",
			Help: "Total number of Redis commands executed",
		},
		[]string{"command", "status"},
	)

	commandDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "redis_command_duration_seconds",
			Help:       "Redis command execution time in seconds",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"command"},
	)

	connectionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_connections_total",
			Help: "Total number of Redis connections created",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(commandCounter, commandDuration, connectionCounter)
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Hook 实现 redis.Hook，为各命令收集耗时与状态
type Hook struct{}

func NewMetricsHook() *Hook {
	return &Hook{}
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		commandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(start).Seconds())

		status := statusSuccess
		// redis.Nil 是未命中，不算错误
		if err != nil && !errors.Is(err, redis.Nil) {
			status = statusError
		}
		commandCounter.WithLabelValues(cmd.Name(), status).Inc()
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start).Seconds()
		for _, cmd := range cmds {
			commandDuration.WithLabelValues(cmd.Name()).Observe(elapsed)
			status := statusSuccess
			if cmdErr := cmd.Err(); cmdErr != nil && !errors.Is(cmdErr, redis.Nil) {
				status = statusError
			}
			commandCounter.WithLabelValues(cmd.Name(), status).Inc()
		}
		return err
	}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		status := statusSuccess
		if err != nil {
			status = statusError
		}
		connectionCounter.WithLabelValues(status).Inc()
		return conn, err
	}
}

// WithMetrics 给客户端挂上指标钩子
func WithMetrics(client *redis.Client) *redis.Client {
	client.AddHook(NewMetricsHook())
	return client
}
