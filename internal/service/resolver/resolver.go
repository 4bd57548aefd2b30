package resolver

import (
	"gitee.com/flycash/case-notification/internal/domain"
)

// Service 从案件快照解析出本次分发的收件人列表。
// 快照本身不变，结果在一次分发调用内使用后丢弃。
type Service interface {
	Resolve(snapshot *domain.CaseSnapshot) []domain.RecipientRef
}

type service struct{}

func NewService() Service {
	return &service{}
}

// Resolve 收件人按固定顺序产出：
// 上诉人（或其受托人）、代理人、共同当事人、其他当事人。
// 上诉人与受托人互斥，有受托人时上诉人本人不再出现。
func (s *service) Resolve(snapshot *domain.CaseSnapshot) []domain.RecipientRef {
	refs := make([]domain.RecipientRef, 0, 4+3*len(snapshot.OtherParties))

	if snapshot.Appellant.HasAppointee() {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleAppointee,
			Name:         snapshot.Appellant.Appointee.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleAppointee, ""),
		})
	} else {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleAppellant,
			Name:         snapshot.Appellant.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleAppellant, ""),
		})
	}

	if snapshot.HasRepresentative() {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleRepresentative,
			Name:         snapshot.Rep.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleRepresentative, ""),
		})
	}

	if snapshot.HasJointParty() {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleJointParty,
			Name:         snapshot.JointParty.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleJointParty, ""),
		})
	}

	for i := range snapshot.OtherParties {
		refs = append(refs, s.resolveOtherParty(snapshot, &snapshot.OtherParties[i])...)
	}

	return refs
}

// resolveOtherParty 每个其他当事人最多贡献两个收件人：
// 本人与受托人互斥，代理人独立叠加。
func (s *service) resolveOtherParty(snapshot *domain.CaseSnapshot, op *domain.OtherParty) []domain.RecipientRef {
	refs := make([]domain.RecipientRef, 0, 2)

	if op.HasAppointee() {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleOtherParty,
			PartyID:      op.Appointee.ID,
			Name:         op.Appointee.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleOtherParty, op.Appointee.ID),
		})
	} else {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleOtherParty,
			PartyID:      op.ID,
			Name:         op.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleOtherParty, op.ID),
		})
	}

	if op.HasRepresentative() {
		refs = append(refs, domain.RecipientRef{
			Role:         domain.RoleOtherParty,
			PartyID:      op.Rep.ID,
			Name:         op.Rep.Name,
			Subscription: snapshot.SubscriptionFor(domain.RoleOtherParty, op.Rep.ID),
		})
	}

	return refs
}
