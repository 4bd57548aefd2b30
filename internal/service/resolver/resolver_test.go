package resolver

import (
	"testing"

	"gitee.com/flycash/case-notification/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestService_Resolve(t *testing.T) {
	t.Parallel()
	svc := NewService()

	appellant := domain.Appellant{
		ID:   "appellant-1",
		Name: domain.Name{FirstName: "Jane", LastName: "Smith"},
	}
	rep := &domain.Representative{
		HasRepresentative: "Yes",
		ID:                "rep-1",
		Name:              domain.Name{FirstName: "Ron", LastName: "Rep"},
	}

	testCases := []struct {
		name      string
		snapshot  *domain.CaseSnapshot
		wantRoles []domain.Role
		wantIDs   []string
	}{
		{
			name: "只有上诉人",
			snapshot: &domain.CaseSnapshot{
				Appellant: appellant,
			},
			wantRoles: []domain.Role{domain.RoleAppellant},
			wantIDs:   []string{""},
		},
		{
			name: "受托人替代上诉人",
			snapshot: &domain.CaseSnapshot{
				Appellant: domain.Appellant{
					ID:          "appellant-1",
					Name:        appellant.Name,
					IsAppointee: "Yes",
					Appointee: &domain.Appointee{
						ID:   "appointee-1",
						Name: domain.Name{FirstName: "Pat", LastName: "Proxy"},
					},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppointee},
			wantIDs:   []string{""},
		},
		{
			name: "受托人对象为空壳时仍通知上诉人",
			snapshot: &domain.CaseSnapshot{
				Appellant: domain.Appellant{
					ID:          "appellant-1",
					Name:        appellant.Name,
					IsAppointee: "Yes",
					Appointee:   &domain.Appointee{},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppellant},
			wantIDs:   []string{""},
		},
		{
			name: "代理人与共同当事人依次出现",
			snapshot: &domain.CaseSnapshot{
				Appellant: appellant,
				Rep:       rep,
				JointParty: domain.JointParty{
					HasJointParty: "Yes",
					Name:          domain.Name{FirstName: "Joan", LastName: "Joint"},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppellant, domain.RoleRepresentative, domain.RoleJointParty},
			wantIDs:   []string{"", "", ""},
		},
		{
			name: "代理人标记为 No 不出现",
			snapshot: &domain.CaseSnapshot{
				Appellant: appellant,
				Rep: &domain.Representative{
					HasRepresentative: "No",
					Name:              domain.Name{FirstName: "Ron", LastName: "Rep"},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppellant},
			wantIDs:   []string{""},
		},
		{
			name: "其他当事人本人与代理人都出现",
			snapshot: &domain.CaseSnapshot{
				Appellant: appellant,
				OtherParties: []domain.OtherParty{
					{
						ID:   "op-1",
						Name: domain.Name{FirstName: "Olaf", LastName: "Other"},
						Rep: &domain.Representative{
							HasRepresentative: "Yes",
							ID:                "op-rep-1",
							Name:              domain.Name{FirstName: "Rita", LastName: "OtherRep"},
						},
					},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppellant, domain.RoleOtherParty, domain.RoleOtherParty},
			wantIDs:   []string{"", "op-1", "op-rep-1"},
		},
		{
			name: "其他当事人的受托人替代本人",
			snapshot: &domain.CaseSnapshot{
				Appellant: appellant,
				OtherParties: []domain.OtherParty{
					{
						ID:          "op-1",
						Name:        domain.Name{FirstName: "Olaf", LastName: "Other"},
						IsAppointee: "Yes",
						Appointee: &domain.Appointee{
							ID:   "op-appointee-1",
							Name: domain.Name{FirstName: "Amy", LastName: "Agent"},
						},
					},
				},
			},
			wantRoles: []domain.Role{domain.RoleAppellant, domain.RoleOtherParty},
			wantIDs:   []string{"", "op-appointee-1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			refs := svc.Resolve(tc.snapshot)
			gotRoles := make([]domain.Role, 0, len(refs))
			gotIDs := make([]string, 0, len(refs))
			for _, r := range refs {
				gotRoles = append(gotRoles, r.Role)
				gotIDs = append(gotIDs, r.PartyID)
			}
			assert.Equal(t, tc.wantRoles, gotRoles)
			assert.Equal(t, tc.wantIDs, gotIDs)
		})
	}
}

func TestService_Resolve_SubscriptionAttached(t *testing.T) {
	t.Parallel()
	svc := NewService()
	sub := &domain.Subscription{Email: "jane@example.com", SubscribeEmail: "Yes"}
	snapshot := &domain.CaseSnapshot{
		Appellant: domain.Appellant{
			Name: domain.Name{FirstName: "Jane", LastName: "Smith"},
		},
		Subscriptions: domain.CaseSubscriptions{Appellant: sub},
	}
	refs := svc.Resolve(snapshot)
	assert.Len(t, refs, 1)
	assert.Equal(t, sub, refs[0].Subscription)
}
