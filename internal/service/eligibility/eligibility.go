package eligibility

import (
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
)

// Service 分发资格判定。
// 案件层面判定事件是否还值得发送，收件人层面判定该角色是否应当收到。
type Service interface {
	// EventValid 返回 false 时附带跳过原因
	EventValid(snapshot *domain.CaseSnapshot, event domain.EventType, now time.Time) (bool, string)
	RecipientEligible(ref domain.RecipientRef, event domain.EventType) (bool, string)
	// ReissueAllowed 文书重发时按界面选择过滤收件人
	ReissueAllowed(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) (bool, string)
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) EventValid(snapshot *domain.CaseSnapshot, event domain.EventType, now time.Time) (bool, string) {
	if event.IsHearingLinked() {
		h := snapshot.LatestHearing()
		if h == nil {
			return false, "没有听证记录"
		}
		// 听证已过期或已休庭，这条通知已经没有意义
		if !h.Start.After(now) {
			return false, "听证已过期"
		}
		if h.Adjourned.IsYes() {
			return false, "听证已休庭"
		}
	}
	if event.IsOralCaseOnly() && !snapshot.IsOral() {
		return false, "书面审理案件不发送口头审理事件"
	}
	if event.IsPaperCaseOnly() && snapshot.IsOral() {
		return false, "口头审理案件不发送书面审理事件"
	}
	return true, ""
}

// RecipientEligible 强制信件事件绕过订阅检查，其余事件要求至少订阅一个渠道
func (s *service) RecipientEligible(ref domain.RecipientRef, event domain.EventType) (bool, string) {
	if event.IsMandatoryLetterEvent() {
		return true, ""
	}
	if !ref.Subscription.HasAnySubscription() {
		return false, "收件人未订阅任何渠道"
	}
	return true, ""
}

func (s *service) ReissueAllowed(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) (bool, string) {
	reissue := snapshot.Reissue
	if reissue == nil {
		return false, "缺少重发选择"
	}
	switch ref.Role {
	case domain.RoleAppellant, domain.RoleAppointee:
		if !reissue.ResendToAppellant.IsYes() {
			return false, "重发选择未包含上诉人"
		}
	case domain.RoleRepresentative:
		if !reissue.ResendToRepresentative.IsYes() {
			return false, "重发选择未包含代理人"
		}
	case domain.RoleJointParty:
		return false, "文书重发不面向共同当事人"
	case domain.RoleOtherParty:
		if !otherPartyResend(reissue, snapshot, ref.PartyID) {
			return false, "重发选择未包含该当事人"
		}
	}
	return true, ""
}

// otherPartyResend 重发选项按当事人主体记录，受托人和代理人跟随本体的选择
func otherPartyResend(reissue *domain.ReissueArtifact, snapshot *domain.CaseSnapshot, partyID string) bool {
	op := snapshot.OtherParty(partyID)
	if op == nil {
		return false
	}
	for _, opt := range reissue.OtherPartyOptions {
		if opt.PartyID == op.ID {
			return opt.Resend.IsYes()
		}
	}
	return false
}

// NewlySubscribedChannels 从旧订阅到新订阅之间新开通的渠道。
// 旧记录缺失或显式 "No" 都视为未订阅，只有发生翻转才算新开通。
func NewlySubscribedChannels(oldSub, newSub *domain.Subscription) []domain.Channel {
	var channels []domain.Channel
	if !oldSub.IsEmailSubscribed() && newSub.IsEmailSubscribed() {
		channels = append(channels, domain.ChannelEmail)
	}
	if !oldSub.IsSmsSubscribed() && newSub.IsSmsSubscribed() {
		channels = append(channels, domain.ChannelSMS)
	}
	return channels
}
