package domain

import (
	"strings"
	"time"
)

// YesNo CCD 风格的三态标记："Yes"、"No" 或空（未填写）
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

func (y YesNo) IsYes() bool {
	return strings.EqualFold(string(y), string(Yes))
}

func (y YesNo) IsNo() bool {
	return strings.EqualFold(string(y), string(No))
}

// Name 当事人姓名
type Name struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullNameNoTitle 不带称谓的全名
func (n Name) FullNameNoTitle() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

func (n Name) IsBlank() bool {
	return strings.TrimSpace(n.FirstName) == "" || strings.TrimSpace(n.LastName) == ""
}

// Address 邮寄地址
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2"`
	Town     string `json:"town"`
	County   string `json:"county"`
	Postcode string `json:"postcode"`
}

// IsValidForLetter 信件地址必须至少有第一行和邮编
func (a Address) IsValidForLetter() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.Postcode) != ""
}

func (a Address) IsBlank() bool {
	return strings.TrimSpace(a.Line1) == "" &&
		strings.TrimSpace(a.Postcode) == ""
}

// Subscription 单个当事人的订阅记录：渠道地址 + 选择开关
type Subscription struct {
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	SubscribeEmail YesNo `json:"subscribeEmail"`
	SubscribeSms   YesNo `json:"subscribeSms"`
}

// IsEmailSubscribed 空值与 "No" 均视为未订阅
func (s *Subscription) IsEmailSubscribed() bool {
	return s != nil && s.SubscribeEmail.IsYes()
}

func (s *Subscription) IsSmsSubscribed() bool {
	return s != nil && s.SubscribeSms.IsYes()
}

// HasAnySubscription 是否存在至少一个已开启的渠道
func (s *Subscription) HasAnySubscription() bool {
	return s.IsEmailSubscribed() || s.IsSmsSubscribed()
}

// IsPopulated 来源数据可能填充出整块空对象，等价于没有订阅记录
func (s *Subscription) IsPopulated() bool {
	if s == nil {
		return false
	}
	return s.Email != "" || s.Mobile != "" || s.SubscribeEmail != "" || s.SubscribeSms != ""
}

// Appointee 受托人
type Appointee struct {
	ID      string  `json:"id"`
	Name    Name    `json:"name"`
	Address Address `json:"address"`
}

// Representative 代理人。HasRepresentative 为 "Yes" 时才参与分发
type Representative struct {
	HasRepresentative YesNo   `json:"hasRepresentative"`
	ID                string  `json:"id"`
	Name              Name    `json:"name"`
	Organisation      string  `json:"organisation"`
	Address           Address `json:"address"`
}

// Appellant 上诉人，可能携带受托人
type Appellant struct {
	ID          string     `json:"id"`
	Name        Name       `json:"name"`
	Address     Address    `json:"address"`
	IsAppointee YesNo      `json:"isAppointee"`
	Appointee   *Appointee `json:"appointee"`
}

// HasAppointee 受托人数据有时以空对象形式出现，必须校验姓名非空。
// isAppointee 未填写时按宽松默认处理，只有显式 "No" 才排除。
func (a Appellant) HasAppointee() bool {
	return !a.IsAppointee.IsNo() &&
		a.Appointee != nil &&
		!a.Appointee.Name.IsBlank()
}

// JointParty 共同当事人
type JointParty struct {
	HasJointParty          YesNo   `json:"hasJointParty"`
	Name                   Name    `json:"name"`
	Address                Address `json:"address"`
	AddressSameAsAppellant YesNo   `json:"addressSameAsAppellant"`
}

// OtherParty 其他当事人：自身可各自携带受托人与代理人，形成一个多住户实体
type OtherParty struct {
	ID          string          `json:"id"`
	Name        Name            `json:"name"`
	Address     Address         `json:"address"`
	IsAppointee YesNo           `json:"isAppointee"`
	Appointee   *Appointee      `json:"appointee"`
	Rep         *Representative `json:"rep"`

	Subscription          *Subscription `json:"subscription"`
	AppointeeSubscription *Subscription `json:"appointeeSubscription"`
	RepSubscription       *Subscription `json:"repSubscription"`

	WantsReasonableAdjustment          YesNo `json:"wantsReasonableAdjustment"`
	AppointeeWantsReasonableAdjustment YesNo `json:"appointeeWantsReasonableAdjustment"`
	RepWantsReasonableAdjustment       YesNo `json:"repWantsReasonableAdjustment"`
}

func (o OtherParty) HasAppointee() bool {
	return !o.IsAppointee.IsNo() && o.Appointee != nil && !o.Appointee.Name.IsBlank()
}

func (o OtherParty) HasRepresentative() bool {
	return o.Rep != nil && o.Rep.HasRepresentative.IsYes()
}

// Hearing 听证记录
type Hearing struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	Adjourned YesNo     `json:"adjourned"`
}

// CaseDocument 案件文书（由外部文书库持有，引擎只读链接）
type CaseDocument struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// HearingType 案件听证模式
type HearingType string

const (
	HearingTypeOral  HearingType = "oral"
	HearingTypePaper HearingType = "paper"
)

// Adjustments 各角色的合理调整标记
type Adjustments struct {
	Appellant      YesNo `json:"appellant"`
	Appointee      YesNo `json:"appointee"`
	Representative YesNo `json:"representative"`
	JointParty     YesNo `json:"jointParty"`
}

// OtherPartyOption 重发选项：按 party id 指定某个其他当事人是否重发
type OtherPartyOption struct {
	PartyID string `json:"partyId"`
	Resend  YesNo  `json:"resend"`
}

// ReissueArtifact 文书重发界面的选择结果
type ReissueArtifact struct {
	// DocumentEventCode 被重发文书对应的原始事件代码
	DocumentEventCode      string             `json:"documentEventCode"`
	ResendToAppellant      YesNo              `json:"resendToAppellant"`
	ResendToRepresentative YesNo              `json:"resendToRepresentative"`
	OtherPartyOptions      []OtherPartyOption `json:"otherPartyOptions"`
}

// CaseSubscriptions 按角色分组的订阅记录
type CaseSubscriptions struct {
	Appellant      *Subscription `json:"appellant"`
	Appointee      *Subscription `json:"appointee"`
	Representative *Subscription `json:"representative"`
	JointParty     *Subscription `json:"jointParty"`
}

// CaseSnapshot 事件发生时刻的案件只读视图。
// 由外部案件库持有，引擎内部绝不修改。
type CaseSnapshot struct {
	CaseID        string            `json:"caseId"`
	Appellant     Appellant         `json:"appellant"`
	Rep           *Representative   `json:"rep"`
	JointParty    JointParty        `json:"jointParty"`
	OtherParties  []OtherParty      `json:"otherParties"`
	Subscriptions CaseSubscriptions `json:"subscriptions"`
	Hearings      []Hearing         `json:"hearings"`
	Documents     []CaseDocument    `json:"documents"`
	HearingType   HearingType       `json:"hearingType"`
	LanguagePreferenceWelsh YesNo   `json:"languagePreferenceWelsh"`
	Adjustments   Adjustments       `json:"adjustments"`
	Reissue       *ReissueArtifact  `json:"reissue"`
	// LatestEventType 案件最近一次事件（订阅更新流程中要补发的那条）
	LatestEventType EventType `json:"latestEventType"`
}

func (c *CaseSnapshot) HasRepresentative() bool {
	return c.Rep != nil && c.Rep.HasRepresentative.IsYes()
}

func (c *CaseSnapshot) HasJointParty() bool {
	return c.JointParty.HasJointParty.IsYes() &&
		strings.TrimSpace(c.JointParty.Name.FullNameNoTitle()) != ""
}

func (c *CaseSnapshot) IsOral() bool {
	return c.HearingType != HearingTypePaper
}

func (c *CaseSnapshot) IsWelsh() bool {
	return c.LanguagePreferenceWelsh.IsYes()
}

// LatestHearing 取开始时间最晚的听证
func (c *CaseSnapshot) LatestHearing() *Hearing {
	var latest *Hearing
	for i := range c.Hearings {
		h := &c.Hearings[i]
		if latest == nil || h.Start.After(latest.Start) {
			latest = h
		}
	}
	return latest
}

// LatestDocumentURL 按文书类型取最新文书链接，没有则为空串
func (c *CaseSnapshot) LatestDocumentURL(docType string) string {
	for i := len(c.Documents) - 1; i >= 0; i-- {
		if c.Documents[i].Type == docType {
			return c.Documents[i].URL
		}
	}
	return ""
}

// OtherParty 按 party id 查找其他当事人记录
func (c *CaseSnapshot) OtherParty(partyID string) *OtherParty {
	for i := range c.OtherParties {
		op := &c.OtherParties[i]
		if op.ID == partyID {
			return op
		}
		if op.Appointee != nil && op.Appointee.ID == partyID {
			return op
		}
		if op.Rep != nil && op.Rep.ID == partyID {
			return op
		}
	}
	return nil
}

// SubscriptionFor 取某个角色的订阅记录，空对象视为缺失
func (c *CaseSnapshot) SubscriptionFor(role Role, partyID string) *Subscription {
	switch role {
	case RoleAppellant:
		return populatedOrNil(c.Subscriptions.Appellant)
	case RoleAppointee:
		return populatedOrNil(c.Subscriptions.Appointee)
	case RoleRepresentative:
		return populatedOrNil(c.Subscriptions.Representative)
	case RoleJointParty:
		return populatedOrNil(c.Subscriptions.JointParty)
	case RoleOtherParty:
		op := c.OtherParty(partyID)
		if op == nil {
			return nil
		}
		if op.Appointee != nil && op.Appointee.ID == partyID {
			return populatedOrNil(op.AppointeeSubscription)
		}
		if op.Rep != nil && op.Rep.ID == partyID {
			return populatedOrNil(op.RepSubscription)
		}
		return populatedOrNil(op.Subscription)
	}
	return nil
}

func populatedOrNil(s *Subscription) *Subscription {
	if !s.IsPopulated() {
		return nil
	}
	return s
}

// CaseEvent 入站案件事件：事件类型 + 新旧案件快照
type CaseEvent struct {
	CaseID string        `json:"caseId"`
	Type   EventType     `json:"type"`
	New    *CaseSnapshot `json:"new"`
	Old    *CaseSnapshot `json:"old"`
}
