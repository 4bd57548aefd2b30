package eligibility

import (
	"testing"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestService_EventValid(t *testing.T) {
	t.Parallel()
	svc := NewService()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		snapshot   *domain.CaseSnapshot
		event      domain.EventType
		wantValid  bool
		wantReason string
	}{
		{
			name: "听证在未来可以发送",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypeOral,
				Hearings: []domain.Hearing{
					{ID: "h1", Start: now.Add(48 * time.Hour)},
				},
			},
			event:     domain.EventHearingBooked,
			wantValid: true,
		},
		{
			name: "听证已过期不再发送",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypeOral,
				Hearings: []domain.Hearing{
					{ID: "h1", Start: now.Add(-time.Hour)},
				},
			},
			event:      domain.EventHearingReminder,
			wantValid:  false,
			wantReason: "听证已过期",
		},
		{
			name: "听证已休庭不再发送",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypeOral,
				Hearings: []domain.Hearing{
					{ID: "h1", Start: now.Add(48 * time.Hour), Adjourned: "Yes"},
				},
			},
			event:      domain.EventHearingBooked,
			wantValid:  false,
			wantReason: "听证已休庭",
		},
		{
			name: "书面审理案件不发口头审理事件",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypePaper,
				Hearings: []domain.Hearing{
					{ID: "h1", Start: now.Add(48 * time.Hour)},
				},
			},
			event:     domain.EventHearingBooked,
			wantValid: false,
		},
		{
			name: "口头审理案件不发书面审理事件",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypeOral,
			},
			event:     domain.EventResponseReceived,
			wantValid: false,
		},
		{
			name: "普通事件不受听证影响",
			snapshot: &domain.CaseSnapshot{
				HearingType: domain.HearingTypeOral,
			},
			event:     domain.EventAppealReceived,
			wantValid: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			valid, reason := svc.EventValid(tc.snapshot, tc.event, now)
			assert.Equal(t, tc.wantValid, valid)
			if tc.wantReason != "" {
				assert.Equal(t, tc.wantReason, reason)
			}
		})
	}
}

func TestService_RecipientEligible(t *testing.T) {
	t.Parallel()
	svc := NewService()

	testCases := []struct {
		name  string
		ref   domain.RecipientRef
		event domain.EventType
		want  bool
	}{
		{
			name: "订阅了邮件渠道可以发送",
			ref: domain.RecipientRef{
				Role:         domain.RoleAppellant,
				Subscription: &domain.Subscription{Email: "a@b.com", SubscribeEmail: "Yes"},
			},
			event: domain.EventEvidenceReceived,
			want:  true,
		},
		{
			name:  "未订阅普通事件不发送",
			ref:   domain.RecipientRef{Role: domain.RoleAppellant},
			event: domain.EventEvidenceReceived,
			want:  false,
		},
		{
			name:  "强制信件事件绕过订阅检查",
			ref:   domain.RecipientRef{Role: domain.RoleAppellant},
			event: domain.EventAppealReceived,
			want:  true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, _ := svc.RecipientEligible(tc.ref, tc.event)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestService_ReissueAllowed(t *testing.T) {
	t.Parallel()
	svc := NewService()
	snapshot := &domain.CaseSnapshot{
		OtherParties: []domain.OtherParty{
			{
				ID: "op-1",
				Rep: &domain.Representative{
					HasRepresentative: "Yes",
					ID:                "op-rep-1",
				},
			},
		},
		Reissue: &domain.ReissueArtifact{
			DocumentEventCode:      "directionIssued",
			ResendToAppellant:      "Yes",
			ResendToRepresentative: "No",
			OtherPartyOptions: []domain.OtherPartyOption{
				{PartyID: "op-1", Resend: "Yes"},
			},
		},
	}

	testCases := []struct {
		name string
		ref  domain.RecipientRef
		want bool
	}{
		{name: "上诉人勾选了重发", ref: domain.RecipientRef{Role: domain.RoleAppellant}, want: true},
		{name: "受托人跟随上诉人的勾选", ref: domain.RecipientRef{Role: domain.RoleAppointee}, want: true},
		{name: "代理人未勾选不重发", ref: domain.RecipientRef{Role: domain.RoleRepresentative}, want: false},
		{name: "其他当事人本体勾选了重发", ref: domain.RecipientRef{Role: domain.RoleOtherParty, PartyID: "op-1"}, want: true},
		{name: "其他当事人的代理人跟随本体", ref: domain.RecipientRef{Role: domain.RoleOtherParty, PartyID: "op-rep-1"}, want: true},
		{name: "未知当事人不重发", ref: domain.RecipientRef{Role: domain.RoleOtherParty, PartyID: "ghost"}, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, _ := svc.ReissueAllowed(snapshot, tc.ref)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewlySubscribedChannels(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		oldSub *domain.Subscription
		newSub *domain.Subscription
		want   []domain.Channel
	}{
		{
			name:   "从无到有算新开通",
			oldSub: nil,
			newSub: &domain.Subscription{Email: "a@b.com", SubscribeEmail: "Yes"},
			want:   []domain.Channel{domain.ChannelEmail},
		},
		{
			name:   "显式 No 翻转为 Yes 算新开通",
			oldSub: &domain.Subscription{SubscribeSms: "No"},
			newSub: &domain.Subscription{Mobile: "07700900000", SubscribeSms: "Yes"},
			want:   []domain.Channel{domain.ChannelSMS},
		},
		{
			name:   "保持订阅不算新开通",
			oldSub: &domain.Subscription{Email: "a@b.com", SubscribeEmail: "Yes"},
			newSub: &domain.Subscription{Email: "a@b.com", SubscribeEmail: "Yes"},
			want:   nil,
		},
		{
			name:   "取消订阅不算新开通",
			oldSub: &domain.Subscription{Email: "a@b.com", SubscribeEmail: "Yes"},
			newSub: &domain.Subscription{SubscribeEmail: "No"},
			want:   nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NewlySubscribedChannels(tc.oldSub, tc.newSub))
		})
	}
}
