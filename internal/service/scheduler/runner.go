package scheduler

import (
	"context"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/pkg/hours"
	"gitee.com/flycash/case-notification/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

// Redeliverer 重试任务触发后的再投递入口，由分发服务实现
type Redeliverer interface {
	Redeliver(ctx context.Context, attempt domain.DispatchAttempt) error
}

// Runner 轮询到期任务并触发再投递。
// 配合 loopjob 使用，同一时刻只有一个实例在跑。
type Runner struct {
	repo         repository.ScheduledJobRepository
	gate         *hours.Gate
	redeliverer  Redeliverer
	batchSize    int
	pollInterval time.Duration
	logger       *elog.Component
}

func NewRunner(repo repository.ScheduledJobRepository, gate *hours.Gate, redeliverer Redeliverer) *Runner {
	const (
		defaultBatchSize    = 20
		defaultPollInterval = 10 * time.Second
	)
	return &Runner{
		repo:         repo,
		gate:         gate,
		redeliverer:  redeliverer,
		batchSize:    defaultBatchSize,
		pollInterval: defaultPollInterval,
		logger:       elog.DefaultLogger,
	}
}

// Poll 处理一批到期任务。没有任务时小睡一个轮询间隔。
func (r *Runner) Poll(ctx context.Context) error {
	now := time.Now()
	jobs, err := r.repo.ClaimDue(ctx, now, r.batchSize)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.pollInterval):
		}
		return nil
	}
	for _, job := range jobs {
		r.process(ctx, job, now)
	}
	return nil
}

func (r *Runner) process(ctx context.Context, job domain.ScheduledJob, now time.Time) {
	attempt, err := domain.UnmarshalDispatchAttempt(job.Payload)
	if err != nil {
		r.logger.Error("任务载荷损坏",
			elog.Any("jobId", job.ID), elog.FieldErr(err))
		if merr := r.repo.MarkFailed(ctx, job.ID); merr != nil {
			r.logger.Error("标记任务失败出错", elog.Any("jobId", job.ID), elog.FieldErr(merr))
		}
		return
	}

	// 窗口外触发只顺延，不消耗尝试次数
	if !r.gate.InHours(now) {
		next := r.gate.NextInHours(now)
		if rerr := r.repo.Reschedule(ctx, job.ID, next); rerr != nil {
			r.logger.Error("任务顺延失败", elog.Any("jobId", job.ID), elog.FieldErr(rerr))
		}
		return
	}

	if err := r.redeliverer.Redeliver(ctx, attempt); err != nil {
		r.logger.Error("再投递失败",
			elog.String("caseId", attempt.CaseID),
			elog.String("event", attempt.EventType.String()),
			elog.FieldErr(err))
		if merr := r.repo.MarkFailed(ctx, job.ID); merr != nil {
			r.logger.Error("标记任务失败出错", elog.Any("jobId", job.ID), elog.FieldErr(merr))
		}
		return
	}
	if merr := r.repo.MarkDone(ctx, job.ID); merr != nil {
		r.logger.Error("标记任务完成出错", elog.Any("jobId", job.ID), elog.FieldErr(merr))
	}
}
