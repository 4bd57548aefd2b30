package domain

// EventType 案件事件类型
type EventType string

const (
	EventAppealReceived        EventType = "appealReceived"
	EventEvidenceReceived      EventType = "evidenceReceived"
	EventResponseReceived      EventType = "responseReceived"
	EventAppealLapsed          EventType = "appealLapsed"
	EventAppealWithdrawn       EventType = "appealWithdrawn"
	EventHearingBooked         EventType = "hearingBooked"
	EventHearingReminder       EventType = "hearingReminder"
	EventSubscriptionUpdated   EventType = "subscriptionUpdated"
	EventDecisionIssued        EventType = "decisionIssued"
	EventDecisionIssuedWelsh   EventType = "decisionIssuedWelsh"
	EventDirectionIssued       EventType = "directionIssued"
	EventDirectionIssuedWelsh  EventType = "directionIssuedWelsh"
	EventIssueFinalDecision    EventType = "issueFinalDecision"
	EventIssueFinalDecisionWelsh EventType = "issueFinalDecisionWelsh"
	EventIssueAdjournmentNotice EventType = "issueAdjournmentNotice"
	EventIssueAdjournmentNoticeWelsh EventType = "issueAdjournmentNoticeWelsh"
	EventStruckOut             EventType = "struckOut"
	EventReissueDocument       EventType = "reissueDocument"
)

func (e EventType) String() string { return string(e) }

type eventSet map[EventType]struct{}

func newEventSet(events ...EventType) eventSet {
	s := make(eventSet, len(events))
	for _, e := range events {
		s[e] = struct{}{}
	}
	return s
}

func (s eventSet) Contains(e EventType) bool {
	_, ok := s[e]
	return ok
}

// mandatoryLetterEvents 即便没有任何订阅也必须出信的事件
var mandatoryLetterEvents = newEventSet(
	EventAppealReceived,
	EventDecisionIssued,
	EventDecisionIssuedWelsh,
	EventDirectionIssued,
	EventDirectionIssuedWelsh,
	EventIssueFinalDecision,
	EventIssueFinalDecisionWelsh,
	EventIssueAdjournmentNotice,
	EventIssueAdjournmentNoticeWelsh,
	EventStruckOut,
)

// bundledLetterEvents 需要把文书和封面合订成信件的事件
var bundledLetterEvents = newEventSet(
	EventDecisionIssued,
	EventDecisionIssuedWelsh,
	EventDirectionIssued,
	EventDirectionIssuedWelsh,
	EventIssueFinalDecision,
	EventIssueFinalDecisionWelsh,
	EventIssueAdjournmentNotice,
	EventIssueAdjournmentNoticeWelsh,
)

// hearingLinkedEvents 与具体听证绑定的事件，听证过期或改期即作废
var hearingLinkedEvents = newEventSet(
	EventHearingBooked,
	EventHearingReminder,
)

// oralCaseOnlyEvents 只对口头听证（wants-to-attend）案件有效的事件
var oralCaseOnlyEvents = newEventSet(
	EventHearingBooked,
	EventHearingReminder,
)

// paperCaseOnlyEvents 只对书面案件有效的事件
var paperCaseOnlyEvents = newEventSet(
	EventResponseReceived,
)

// welshEnglishCounterpart 双语事件对应的英文事件。
// 双语合订信件超限时拆成两封，分别走英文/威尔士文事件。
var welshEnglishCounterpart = map[EventType]EventType{
	EventDecisionIssuedWelsh:         EventDecisionIssued,
	EventDirectionIssuedWelsh:        EventDirectionIssued,
	EventIssueFinalDecisionWelsh:     EventIssueFinalDecision,
	EventIssueAdjournmentNoticeWelsh: EventIssueAdjournmentNotice,
}

// reissueTargets 重发事件按文书代码改写成的具体事件
var reissueTargets = map[string]EventType{
	"decisionIssued":              EventDecisionIssued,
	"decisionIssuedWelsh":         EventDecisionIssuedWelsh,
	"directionIssued":             EventDirectionIssued,
	"directionIssuedWelsh":        EventDirectionIssuedWelsh,
	"issueFinalDecision":          EventIssueFinalDecision,
	"issueFinalDecisionWelsh":     EventIssueFinalDecisionWelsh,
	"issueAdjournmentNotice":      EventIssueAdjournmentNotice,
	"issueAdjournmentNoticeWelsh": EventIssueAdjournmentNoticeWelsh,
}

// bundledLetterDocType 合订信件事件对应的案件文书类型
var bundledLetterDocType = map[EventType]string{
	EventDecisionIssued:              "decisionNotice",
	EventDecisionIssuedWelsh:         "decisionNotice",
	EventDirectionIssued:             "directionNotice",
	EventDirectionIssuedWelsh:        "directionNotice",
	EventIssueFinalDecision:          "finalDecisionNotice",
	EventIssueFinalDecisionWelsh:     "finalDecisionNotice",
	EventIssueAdjournmentNotice:      "adjournmentNotice",
	EventIssueAdjournmentNoticeWelsh: "adjournmentNotice",
}

// IsMandatoryLetterEvent 是否强制出信事件
func (e EventType) IsMandatoryLetterEvent() bool {
	return mandatoryLetterEvents.Contains(e)
}

// IsBundledLetterEvent 是否合订信件事件
func (e EventType) IsBundledLetterEvent() bool {
	return bundledLetterEvents.Contains(e)
}

// IsHearingLinked 是否听证绑定事件
func (e EventType) IsHearingLinked() bool {
	return hearingLinkedEvents.Contains(e)
}

// IsOralCaseOnly 是否仅口头听证案件有效
func (e EventType) IsOralCaseOnly() bool {
	return oralCaseOnlyEvents.Contains(e)
}

// IsPaperCaseOnly 是否仅书面案件有效
func (e EventType) IsPaperCaseOnly() bool {
	return paperCaseOnlyEvents.Contains(e)
}

// IsWelsh 是否双语事件
func (e EventType) IsWelsh() bool {
	_, ok := welshEnglishCounterpart[e]
	return ok
}

// EnglishCounterpart 双语事件对应的英文事件；非双语事件返回自身和 false
func (e EventType) EnglishCounterpart() (EventType, bool) {
	en, ok := welshEnglishCounterpart[e]
	if !ok {
		return e, false
	}
	return en, true
}

// ReissueTarget 按文书代码解析重发改写目标
func ReissueTarget(documentEventCode string) (EventType, bool) {
	t, ok := reissueTargets[documentEventCode]
	return t, ok
}

// BundledLetterDocType 合订信件事件引用的文书类型
func (e EventType) BundledLetterDocType() (string, bool) {
	t, ok := bundledLetterDocType[e]
	return t, ok
}
