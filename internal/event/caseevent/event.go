package caseevent

import "gitee.com/flycash/case-notification/internal/domain"

const (
	// EventName 案件事件主题
	EventName = "case_events"
)

// Event 入站消息体：事件标识 + 案件事件本体。
// EventID 由上游生成，消费侧用它做去重。
type Event struct {
	EventID string           `json:"eventId"`
	Event   domain.CaseEvent `json:"event"`
}
