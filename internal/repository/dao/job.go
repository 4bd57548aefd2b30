package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// ScheduledJob 延迟任务表
type ScheduledJob struct {
	ID       uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	GroupKey string `gorm:"type:VARCHAR(128);NOT NULL;index:idx_group_key;comment:'任务组键，案件ID+事件类型'"`
	Name     string `gorm:"type:VARCHAR(64);NOT NULL;comment:'任务名'"`
	Payload  []byte `gorm:"type:BLOB;comment:'任务载荷'"`
	// 毫秒时间戳，轮询按它捞取到期任务
	TriggerAt int64  `gorm:"type:BIGINT;NOT NULL;index:idx_status_trigger,priority:2;comment:'计划触发时间'"`
	Status    string `gorm:"type:ENUM('PENDING','RUNNING','DONE','FAILED');NOT NULL;DEFAULT:'PENDING';index:idx_status_trigger,priority:1;comment:'任务状态'"`
	Ctime     int64
	Utime     int64
}

func (ScheduledJob) TableName() string {
	return "scheduled_jobs"
}

type ScheduledJobDAO interface {
	Insert(ctx context.Context, job ScheduledJob) (ScheduledJob, error)
	// ClaimDue 把到期的 PENDING 任务置为 RUNNING 并返回，limit 控制批大小
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]ScheduledJob, error)
	MarkDone(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
	// Reschedule 把任务改回 PENDING 并更新触发时间，用于窗口外顺延
	Reschedule(ctx context.Context, id uint64, triggerAt time.Time) error
}

type scheduledJobDAO struct {
	db *egorm.Component
}

func NewScheduledJobDAO(db *egorm.Component) ScheduledJobDAO {
	return &scheduledJobDAO{db: db}
}

func (d *scheduledJobDAO) Insert(ctx context.Context, job ScheduledJob) (ScheduledJob, error) {
	now := time.Now().UnixMilli()
	job.Ctime = now
	job.Utime = now
	if job.Status == "" {
		job.Status = "PENDING"
	}
	err := d.db.WithContext(ctx).Create(&job).Error
	if err != nil {
		return ScheduledJob{}, err
	}
	return job, nil
}

func (d *scheduledJobDAO) ClaimDue(ctx context.Context, now time.Time, limit int) ([]ScheduledJob, error) {
	var jobs []ScheduledJob
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("status = ? AND trigger_at <= ?", "PENDING", now.UnixMilli()).
			Order("trigger_at ASC").
			Limit(limit).
			Find(&jobs).Error
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}
		ids := make([]uint64, 0, len(jobs))
		for i := range jobs {
			ids = append(ids, jobs[i].ID)
		}
		return tx.Model(&ScheduledJob{}).
			Where("id IN (?)", ids).
			Updates(map[string]any{
				"status": "RUNNING",
				"utime":  now.UnixMilli(),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (d *scheduledJobDAO) MarkDone(ctx context.Context, id uint64) error {
	return d.setStatus(ctx, id, "DONE")
}

func (d *scheduledJobDAO) MarkFailed(ctx context.Context, id uint64) error {
	return d.setStatus(ctx, id, "FAILED")
}

func (d *scheduledJobDAO) Reschedule(ctx context.Context, id uint64, triggerAt time.Time) error {
	return d.db.WithContext(ctx).Model(&ScheduledJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     "PENDING",
			"trigger_at": triggerAt.UnixMilli(),
			"utime":      time.Now().UnixMilli(),
		}).Error
}

func (d *scheduledJobDAO) setStatus(ctx context.Context, id uint64, status string) error {
	return d.db.WithContext(ctx).Model(&ScheduledJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}
