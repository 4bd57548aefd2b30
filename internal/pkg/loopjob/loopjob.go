package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

// 没有分布式任务调度平台，用分布式锁保证同一时刻只有一个实例在跑轮询。

const (
	lockTimeout  = time.Second * 3
	pauseOnError = time.Minute
)

// InfiniteLoop 抢到分布式锁后循环执行 biz，锁续约失败或 ctx 取消时退出。
type InfiniteLoop struct {
	dclient dlock.Client
	key     string
	logger  *elog.Component
	biz     func(ctx context.Context) error
}

func NewInfiniteLoop(dclient dlock.Client, biz func(ctx context.Context) error, key string) *InfiniteLoop {
	return &InfiniteLoop{
		dclient: dclient,
		key:     key,
		logger:  elog.DefaultLogger.With(elog.String("key", key)),
		biz:     biz,
	}
}

// Run 阻塞运行，ctx 取消后返回
func (l *InfiniteLoop) Run(ctx context.Context) {
	for {
		lock, err := l.dclient.NewLock(ctx, l.key, pauseOnError)
		if err != nil {
			l.logger.Error("初始化分布式锁失败", elog.FieldErr(err))
			time.Sleep(pauseOnError)
			continue
		}

		lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
		err = lock.Lock(lockCtx)
		cancel()
		if err != nil {
			// 锁被别的实例持有也走这里，等一会再抢
			time.Sleep(pauseOnError)
			continue
		}

		err = l.bizLoop(ctx, lock)
		if err != nil {
			l.logger.Error("任务循环中断", elog.FieldErr(err))
		}

		// 此时 ctx 可能已被取消，解锁要用独立的 ctx
		unCtx, cancel := context.WithTimeout(context.Background(), lockTimeout)
		//nolint:contextcheck // 原始 ctx 可能已取消，解锁必须用 Background
		unErr := lock.Unlock(unCtx)
		cancel()
		if unErr != nil {
			l.logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
		}

		err = ctx.Err()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			l.logger.Info("任务被取消，退出任务循环")
			return
		}
		time.Sleep(pauseOnError)
	}
}

func (l *InfiniteLoop) bizLoop(ctx context.Context, lock dlock.Lock) error {
	for {
		err := l.biz(ctx)
		if err != nil {
			l.logger.Error("业务执行失败", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		refCtx, cancel := context.WithTimeout(ctx, lockTimeout)
		err = lock.Refresh(refCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("分布式锁续约失败 %w", err)
		}
	}
}
