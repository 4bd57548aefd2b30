package template

import (
	"context"

	"gitee.com/flycash/case-notification/internal/domain"
)

// Factory 按事件、收件人和语言偏好产出通知包。
// 产出后的包不可变，渠道激活与否由模板和目的地共同决定。
//
//go:generate mockgen -source=./types.go -destination=./mocks/factory.mock.go -package=templatemocks -typed Factory
type Factory interface {
	Build(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, event domain.EventType) (domain.ChannelNotification, error)
}

// ChannelTemplates 单个事件单种语言下三个渠道的模板ID
type ChannelTemplates struct {
	Email  string   `json:"email" yaml:"email"`
	SMS    []string `json:"sms" yaml:"sms"`
	Letter string   `json:"letter" yaml:"letter"`
}

// Config 模板表：事件类型 -> 语言 -> 渠道模板
type Config struct {
	Templates map[string]map[string]ChannelTemplates `json:"templates" yaml:"templates"`
}
