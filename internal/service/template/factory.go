package template

import (
	"context"
	"fmt"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
)

const (
	languageEnglish = "en"
	languageWelsh   = "cy"
)

type configFactory struct {
	cfg Config
}

// NewConfigFactory 基于配置表的模板工厂
func NewConfigFactory(cfg Config) Factory {
	return &configFactory{cfg: cfg}
}

func (f *configFactory) Build(_ context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, event domain.EventType) (domain.ChannelNotification, error) {
	lang := languageEnglish
	if snapshot.IsWelsh() || event.IsWelsh() {
		lang = languageWelsh
	}

	byLang, ok := f.cfg.Templates[string(event)]
	if !ok {
		return domain.ChannelNotification{}, fmt.Errorf("%w: 事件 %s 没有模板配置", errs.ErrInvalidParameter, event)
	}
	tpls, ok := byLang[lang]
	if !ok {
		// 没有该语言的模板就回落英文
		tpls, ok = byLang[languageEnglish]
		if !ok {
			return domain.ChannelNotification{}, fmt.Errorf("%w: 事件 %s 语言 %s 没有模板配置", errs.ErrInvalidParameter, event, lang)
		}
	}

	n := domain.ChannelNotification{
		EmailTemplateID:  tpls.Email,
		SMSTemplateIDs:   tpls.SMS,
		LetterTemplateID: tpls.Letter,
		Destination:      DestinationFor(snapshot, ref),
		Placeholders:     placeholders(snapshot, ref),
	}
	return n, nil
}

func placeholders(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) map[string]string {
	return map[string]string{
		"case_id":        snapshot.CaseID,
		"name":           ref.Name.FullNameNoTitle(),
		"appellant_name": snapshot.Appellant.Name.FullNameNoTitle(),
	}
}

// DestinationFor 按角色决定三个渠道的目的地。
// 邮箱和手机号来自订阅记录，邮寄地址按角色取对应当事人的地址。
func DestinationFor(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) domain.Destination {
	d := domain.Destination{Address: AddressFor(snapshot, ref)}
	if ref.Subscription != nil {
		d.Email = ref.Subscription.Email
		d.Mobile = ref.Subscription.Mobile
	}
	return d
}

// AddressFor 信件地址按角色取值。
// 共同当事人标记与上诉人同址时回落到上诉人地址。
func AddressFor(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) domain.Address {
	switch ref.Role {
	case domain.RoleAppellant:
		return snapshot.Appellant.Address
	case domain.RoleAppointee:
		if snapshot.Appellant.Appointee != nil {
			return snapshot.Appellant.Appointee.Address
		}
	case domain.RoleRepresentative:
		if snapshot.Rep != nil {
			return snapshot.Rep.Address
		}
	case domain.RoleJointParty:
		if snapshot.JointParty.AddressSameAsAppellant.IsYes() {
			return snapshot.Appellant.Address
		}
		return snapshot.JointParty.Address
	case domain.RoleOtherParty:
		return otherPartyAddress(snapshot, ref.PartyID)
	}
	return domain.Address{}
}

func otherPartyAddress(snapshot *domain.CaseSnapshot, partyID string) domain.Address {
	op := snapshot.OtherParty(partyID)
	if op == nil {
		return domain.Address{}
	}
	if op.Appointee != nil && op.Appointee.ID == partyID {
		return op.Appointee.Address
	}
	if op.Rep != nil && op.Rep.ID == partyID {
		return op.Rep.Address
	}
	return op.Address
}
