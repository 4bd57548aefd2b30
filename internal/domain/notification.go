package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/case-notification/internal/errs"
)

// Channel 通知渠道
type Channel string

const (
	ChannelEmail  Channel = "EMAIL"
	ChannelSMS    Channel = "SMS"
	ChannelLetter Channel = "LETTER"
)

// Role 收件人角色
type Role string

const (
	RoleAppellant      Role = "APPELLANT"
	RoleAppointee      Role = "APPOINTEE"
	RoleRepresentative Role = "REPRESENTATIVE"
	RoleJointParty     Role = "JOINT_PARTY"
	RoleOtherParty     Role = "OTHER_PARTY"
)

// RecipientRef 解析出的收件人：角色 + 身份 + 订阅。
// 每次分发调用内生成，用完即弃。
type RecipientRef struct {
	Role Role
	// PartyID 其他当事人场景下用于在多住户实体中定位具体收件人
	PartyID      string
	Name         Name
	Subscription *Subscription
}

// Key 同一次分发内的去重键
func (r RecipientRef) Key() string {
	return string(r.Role) + ":" + r.PartyID
}

// Destination 渠道目的地
type Destination struct {
	Email   string  `json:"email"`
	Mobile  string  `json:"mobile"`
	Address Address `json:"address"`
}

// ChannelNotification 模板工厂产出的不可变通知包。
// 某渠道的模板ID与目的地都非空，该渠道才算激活。
type ChannelNotification struct {
	EmailTemplateID string `json:"emailTemplateId"`
	// SMSTemplateIDs 有序：先基准语言，后本地化语言
	SMSTemplateIDs   []string          `json:"smsTemplateIds"`
	LetterTemplateID string            `json:"letterTemplateId"`
	Destination      Destination       `json:"destination"`
	Placeholders     map[string]string `json:"placeholders"`
}

func (n ChannelNotification) HasEmail() bool {
	return strings.TrimSpace(n.EmailTemplateID) != "" && strings.TrimSpace(n.Destination.Email) != ""
}

func (n ChannelNotification) HasSMS() bool {
	return len(n.SMSTemplateIDs) > 0 && strings.TrimSpace(n.Destination.Mobile) != ""
}

func (n ChannelNotification) HasLetter() bool {
	return strings.TrimSpace(n.LetterTemplateID) != "" && n.Destination.Address.IsValidForLetter()
}

// HasAnyChannel 是否存在至少一个激活渠道
func (n ChannelNotification) HasAnyChannel() bool {
	return n.HasEmail() || n.HasSMS() || n.HasLetter()
}

// DispatchAttempt 一次具体发送与其重试计划条目的关联。
// 重试任务的载荷就是它的序列化结果，任务触发后重新进入分发入口。
type DispatchAttempt struct {
	CaseID        string    `json:"caseId"`
	EventType     EventType `json:"eventType"`
	Role          Role      `json:"role"`
	PartyID       string    `json:"partyId"`
	Channel       Channel   `json:"channel"`
	AttemptNumber int       `json:"attemptNumber"`
}

func (a DispatchAttempt) Validate() error {
	if a.CaseID == "" {
		return fmt.Errorf("%w: CaseID 为空", errs.ErrInvalidParameter)
	}
	if a.EventType == "" {
		return fmt.Errorf("%w: EventType 为空", errs.ErrInvalidParameter)
	}
	if a.AttemptNumber < 0 {
		return fmt.Errorf("%w: AttemptNumber = %d", errs.ErrInvalidParameter, a.AttemptNumber)
	}
	return nil
}

func (a DispatchAttempt) Marshal() ([]byte, error) {
	return json.Marshal(a)
}

func UnmarshalDispatchAttempt(data []byte) (DispatchAttempt, error) {
	var a DispatchAttempt
	if err := json.Unmarshal(data, &a); err != nil {
		return DispatchAttempt{}, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	return a, a.Validate()
}

// OutcomeStatus 单个收件人渠道的分发结果状态
type OutcomeStatus string

const (
	OutcomeSent      OutcomeStatus = "SENT"
	OutcomeSkipped   OutcomeStatus = "SKIPPED"
	OutcomeScheduled OutcomeStatus = "SCHEDULED"
	OutcomeFailed    OutcomeStatus = "FAILED"
)

// RecipientOutcome 按收件人渠道枚举的分发结果
type RecipientOutcome struct {
	Role    Role
	PartyID string
	Channel Channel
	Status  OutcomeStatus
	// Reason 跳过原因，仅 SKIPPED 有值
	Reason string
	// TriggerAt 计划触发时间，仅 SCHEDULED 有值
	TriggerAt time.Time
	// Fatal 失败是否不可重试，仅 FAILED 有意义
	Fatal bool
	// ProviderID 供应商返回的通知标识，仅 SENT 有值
	ProviderID string
}

// DispatchResult 一次分发调用的完整结果
type DispatchResult struct {
	CaseID    string
	EventType EventType
	Outcomes  []RecipientOutcome
}

func (r *DispatchResult) Add(o RecipientOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// SentCount 按渠道统计成功发送数
func (r *DispatchResult) SentCount(ch Channel) int {
	cnt := 0
	for _, o := range r.Outcomes {
		if o.Channel == ch && o.Status == OutcomeSent {
			cnt++
		}
	}
	return cnt
}

// HasFatalFailure 是否存在不可重试失败
func (r *DispatchResult) HasFatalFailure() bool {
	for _, o := range r.Outcomes {
		if o.Status == OutcomeFailed && o.Fatal {
			return true
		}
	}
	return false
}

// Correspondence 归档的通信记录
type Correspondence struct {
	ID        uint64
	CaseID    string
	EventType EventType
	Channel   Channel
	To        string
	From      string
	// Body 信件归档原始字节，邮件/短信归档渲染后的正文
	Body   []byte
	SentAt time.Time
}
