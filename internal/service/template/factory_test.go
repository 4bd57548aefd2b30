package template

import (
	"context"
	"testing"

	"gitee.com/flycash/case-notification/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() Config {
	return Config{
		Templates: map[string]map[string]ChannelTemplates{
			"appealReceived": {
				"en": {Email: "email-en", SMS: []string{"sms-en"}, Letter: "letter-en"},
				"cy": {Email: "email-cy", SMS: []string{"sms-cy", "sms-en"}, Letter: "letter-cy"},
			},
			"evidenceReceived": {
				"en": {Email: "ev-email-en"},
			},
		},
	}
}

func TestConfigFactory_Build(t *testing.T) {
	t.Parallel()
	f := NewConfigFactory(newTestConfig())

	snapshot := &domain.CaseSnapshot{
		CaseID: "SC001/01/000001",
		Appellant: domain.Appellant{
			Name:    domain.Name{FirstName: "Jane", LastName: "Smith"},
			Address: domain.Address{Line1: "1 High St", Postcode: "AB1 2CD"},
		},
	}
	ref := domain.RecipientRef{
		Role:         domain.RoleAppellant,
		Name:         snapshot.Appellant.Name,
		Subscription: &domain.Subscription{Email: "jane@example.com", Mobile: "07700900000"},
	}

	t.Run("英文案件取英文模板", func(t *testing.T) {
		t.Parallel()
		n, err := f.Build(context.Background(), snapshot, ref, domain.EventAppealReceived)
		require.NoError(t, err)
		assert.Equal(t, "email-en", n.EmailTemplateID)
		assert.Equal(t, []string{"sms-en"}, n.SMSTemplateIDs)
		assert.Equal(t, "jane@example.com", n.Destination.Email)
		assert.Equal(t, "1 High St", n.Destination.Address.Line1)
		assert.Equal(t, "Jane Smith", n.Placeholders["name"])
	})

	t.Run("威尔士语案件取双语模板", func(t *testing.T) {
		t.Parallel()
		welsh := *snapshot
		welsh.LanguagePreferenceWelsh = "Yes"
		n, err := f.Build(context.Background(), &welsh, ref, domain.EventAppealReceived)
		require.NoError(t, err)
		assert.Equal(t, "email-cy", n.EmailTemplateID)
		assert.Equal(t, []string{"sms-cy", "sms-en"}, n.SMSTemplateIDs)
	})

	t.Run("缺语言配置回落英文", func(t *testing.T) {
		t.Parallel()
		welsh := *snapshot
		welsh.LanguagePreferenceWelsh = "Yes"
		n, err := f.Build(context.Background(), &welsh, ref, domain.EventEvidenceReceived)
		require.NoError(t, err)
		assert.Equal(t, "ev-email-en", n.EmailTemplateID)
	})

	t.Run("没有模板配置的事件报错", func(t *testing.T) {
		t.Parallel()
		_, err := f.Build(context.Background(), snapshot, ref, domain.EventStruckOut)
		assert.Error(t, err)
	})
}

func TestAddressFor(t *testing.T) {
	t.Parallel()
	appellantAddr := domain.Address{Line1: "1 High St", Postcode: "AB1 2CD"}
	jointAddr := domain.Address{Line1: "2 Low Rd", Postcode: "ZZ9 9ZZ"}

	snapshot := &domain.CaseSnapshot{
		Appellant: domain.Appellant{
			Address: appellantAddr,
			Appointee: &domain.Appointee{
				ID:      "appointee-1",
				Name:    domain.Name{FirstName: "Pat", LastName: "Proxy"},
				Address: domain.Address{Line1: "3 App Way", Postcode: "CC3 3CC"},
			},
		},
		Rep: &domain.Representative{
			HasRepresentative: "Yes",
			Address:           domain.Address{Line1: "4 Rep Ln", Postcode: "DD4 4DD"},
		},
		JointParty: domain.JointParty{
			HasJointParty:          "Yes",
			Name:                   domain.Name{FirstName: "Joan", LastName: "Joint"},
			Address:                jointAddr,
			AddressSameAsAppellant: "Yes",
		},
		OtherParties: []domain.OtherParty{
			{
				ID:      "op-1",
				Address: domain.Address{Line1: "5 Other Pl", Postcode: "EE5 5EE"},
				Rep: &domain.Representative{
					HasRepresentative: "Yes",
					ID:                "op-rep-1",
					Address:           domain.Address{Line1: "6 OpRep St", Postcode: "FF6 6FF"},
				},
			},
		},
	}

	testCases := []struct {
		name string
		ref  domain.RecipientRef
		want string
	}{
		{name: "上诉人取本人地址", ref: domain.RecipientRef{Role: domain.RoleAppellant}, want: "1 High St"},
		{name: "受托人取受托人地址", ref: domain.RecipientRef{Role: domain.RoleAppointee}, want: "3 App Way"},
		{name: "代理人取代理人地址", ref: domain.RecipientRef{Role: domain.RoleRepresentative}, want: "4 Rep Ln"},
		{name: "共同当事人同址回落上诉人", ref: domain.RecipientRef{Role: domain.RoleJointParty}, want: "1 High St"},
		{name: "其他当事人取本人地址", ref: domain.RecipientRef{Role: domain.RoleOtherParty, PartyID: "op-1"}, want: "5 Other Pl"},
		{name: "其他当事人代理人取代理人地址", ref: domain.RecipientRef{Role: domain.RoleOtherParty, PartyID: "op-rep-1"}, want: "6 OpRep St"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, AddressFor(snapshot, tc.ref).Line1)
		})
	}

	t.Run("共同当事人不同址取本人地址", func(t *testing.T) {
		t.Parallel()
		other := *snapshot
		other.JointParty.AddressSameAsAppellant = "No"
		got := AddressFor(&other, domain.RecipientRef{Role: domain.RoleJointParty})
		assert.Equal(t, "2 Low Rd", got.Line1)
	})
}
