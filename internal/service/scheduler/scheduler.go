package scheduler

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/pkg/hours"
	"gitee.com/flycash/case-notification/internal/pkg/idempotent"
	"gitee.com/flycash/case-notification/internal/pkg/retry"
	"gitee.com/flycash/case-notification/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

const jobName = "dispatch-retry"

// Scheduler 失败后的重试编排。
// 任务入库后不可取消，触发时由执行方重新判定是否还需要发送。
type Scheduler interface {
	// ScheduleRetry 为失败的发送安排下一次尝试。
	// 返回计划触发时间；重试次数耗尽时 ok 为 false，不再安排。
	ScheduleRetry(ctx context.Context, attempt domain.DispatchAttempt, now time.Time) (triggerAt time.Time, ok bool, err error)
	// ScheduleDeferred 把分发原样顺延到指定时刻，不消耗尝试次数
	ScheduleDeferred(ctx context.Context, attempt domain.DispatchAttempt, triggerAt time.Time) error
}

type scheduler struct {
	policy *retry.Policy
	gate   *hours.Gate
	repo   repository.ScheduledJobRepository
	guard  idempotent.Service
	logger *elog.Component
}

func NewScheduler(policy *retry.Policy, gate *hours.Gate, repo repository.ScheduledJobRepository, guard idempotent.Service) Scheduler {
	return &scheduler{
		policy: policy,
		gate:   gate,
		repo:   repo,
		guard:  guard,
		logger: elog.DefaultLogger,
	}
}

func (s *scheduler) ScheduleRetry(ctx context.Context, attempt domain.DispatchAttempt, now time.Time) (time.Time, bool, error) {
	if err := attempt.Validate(); err != nil {
		return time.Time{}, false, err
	}
	delay, ok := s.policy.NextDelay(attempt.AttemptNumber)
	if !ok {
		return time.Time{}, false, nil
	}
	// 触发时间落到窗口外就顺延到下一个窗口开放
	triggerAt := s.gate.NextInHours(now.Add(delay))

	// 同一发送单元同一轮次只允许一个任务
	dupKey := fmt.Sprintf("%s:%s:%s:%s:%s:%d",
		attempt.CaseID, attempt.EventType, attempt.Role, attempt.PartyID, attempt.Channel, attempt.AttemptNumber)
	seen, err := s.guard.Exists(ctx, dupKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}
	if seen {
		s.logger.Info("重试任务已存在，跳过调度",
			elog.String("caseId", attempt.CaseID),
			elog.String("event", attempt.EventType.String()))
		return triggerAt, true, nil
	}

	next := attempt
	next.AttemptNumber++
	payload, err := next.Marshal()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}

	_, err = s.repo.Create(ctx, domain.ScheduledJob{
		GroupKey:  GroupKey(attempt.CaseID, attempt.EventType),
		Name:      jobName,
		Payload:   payload,
		TriggerAt: triggerAt,
	})
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}

	s.logger.Info("已调度重试任务",
		elog.String("caseId", attempt.CaseID),
		elog.String("event", attempt.EventType.String()),
		elog.String("channel", string(attempt.Channel)),
		elog.Int("nextAttempt", next.AttemptNumber),
		elog.Any("triggerAt", triggerAt))
	return triggerAt, true, nil
}

func (s *scheduler) ScheduleDeferred(ctx context.Context, attempt domain.DispatchAttempt, triggerAt time.Time) error {
	if err := attempt.Validate(); err != nil {
		return err
	}
	// 同一案件同一事件窗口外只顺延一次
	seen, err := s.guard.Exists(ctx, GroupKey(attempt.CaseID, attempt.EventType))
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}
	if seen {
		s.logger.Info("顺延任务已存在，跳过调度",
			elog.String("caseId", attempt.CaseID),
			elog.String("event", attempt.EventType.String()))
		return nil
	}
	payload, err := attempt.Marshal()
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}
	_, err = s.repo.Create(ctx, domain.ScheduledJob{
		GroupKey:  GroupKey(attempt.CaseID, attempt.EventType),
		Name:      jobName,
		Payload:   payload,
		TriggerAt: triggerAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrScheduling, err)
	}
	s.logger.Info("分发已顺延",
		elog.String("caseId", attempt.CaseID),
		elog.String("event", attempt.EventType.String()),
		elog.Any("triggerAt", triggerAt))
	return nil
}

// GroupKey 同一案件同一事件的任务组键
func GroupKey(caseID string, event domain.EventType) string {
	return caseID + ":" + string(event)
}
