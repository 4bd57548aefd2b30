package repository

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/sony/sonyflake"
)

// ScheduledJobRepository 延迟任务仓库
type ScheduledJobRepository interface {
	Create(ctx context.Context, job domain.ScheduledJob) (domain.ScheduledJob, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledJob, error)
	MarkDone(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
	Reschedule(ctx context.Context, id uint64, triggerAt time.Time) error
}

type scheduledJobRepository struct {
	dao   dao.ScheduledJobDAO
	idGen *sonyflake.Sonyflake
}

func NewScheduledJobRepository(d dao.ScheduledJobDAO, idGen *sonyflake.Sonyflake) ScheduledJobRepository {
	return &scheduledJobRepository{dao: d, idGen: idGen}
}

func (r *scheduledJobRepository) Create(ctx context.Context, job domain.ScheduledJob) (domain.ScheduledJob, error) {
	id, err := r.idGen.NextID()
	if err != nil {
		return domain.ScheduledJob{}, fmt.Errorf("生成任务ID失败: %w", err)
	}
	saved, err := r.dao.Insert(ctx, dao.ScheduledJob{
		ID:        id,
		GroupKey:  job.GroupKey,
		Name:      job.Name,
		Payload:   job.Payload,
		TriggerAt: job.TriggerAt.UnixMilli(),
		Status:    string(domain.JobStatusPending),
	})
	if err != nil {
		return domain.ScheduledJob{}, err
	}
	return r.toDomain(saved), nil
}

func (r *scheduledJobRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]domain.ScheduledJob, error) {
	rows, err := r.dao.ClaimDue(ctx, now, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, row dao.ScheduledJob) domain.ScheduledJob {
		return r.toDomain(row)
	}), nil
}

func (r *scheduledJobRepository) MarkDone(ctx context.Context, id uint64) error {
	return r.dao.MarkDone(ctx, id)
}

func (r *scheduledJobRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.dao.MarkFailed(ctx, id)
}

func (r *scheduledJobRepository) Reschedule(ctx context.Context, id uint64, triggerAt time.Time) error {
	return r.dao.Reschedule(ctx, id, triggerAt)
}

func (r *scheduledJobRepository) toDomain(j dao.ScheduledJob) domain.ScheduledJob {
	return domain.ScheduledJob{
		ID:        j.ID,
		GroupKey:  j.GroupKey,
		Name:      j.Name,
		Payload:   j.Payload,
		TriggerAt: time.UnixMilli(j.TriggerAt),
		Status:    domain.JobStatus(j.Status),
	}
}
