package domain

import "time"

// JobStatus 重试任务状态
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusDone    JobStatus = "DONE"
	JobStatusFailed  JobStatus = "FAILED"
)

// ScheduledJob 延迟触发的重试任务。
// 入库后不可取消，触发时由执行方重新判定是否还需要发送。
type ScheduledJob struct {
	ID uint64
	// GroupKey 同一案件同一事件的任务归为一组，用于组级幂等
	GroupKey string
	Name     string
	Payload  []byte
	// TriggerAt 计划触发时间
	TriggerAt time.Time
	Status    JobStatus
}
