package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/pkg/hours"
	"gitee.com/flycash/case-notification/internal/repository"
	"gitee.com/flycash/case-notification/internal/service/casedata"
	"gitee.com/flycash/case-notification/internal/service/eligibility"
	"gitee.com/flycash/case-notification/internal/service/letter"
	"gitee.com/flycash/case-notification/internal/service/provider"
	"gitee.com/flycash/case-notification/internal/service/resolver"
	"gitee.com/flycash/case-notification/internal/service/template"
	"github.com/gotomicro/ego/core/elog"
)

// Config 分发配置
type Config struct {
	// SaveCorrespondence 成功发送后是否归档通信记录
	SaveCorrespondence bool `json:"saveCorrespondence" yaml:"saveCorrespondence"`
	// SenderName 归档记录里的发件标识
	SenderName string `json:"senderName" yaml:"senderName"`
}

// RetryScheduler 失败重试与窗口顺延的编排入口
type RetryScheduler interface {
	ScheduleRetry(ctx context.Context, attempt domain.DispatchAttempt, now time.Time) (time.Time, bool, error)
	ScheduleDeferred(ctx context.Context, attempt domain.DispatchAttempt, triggerAt time.Time) error
}

// Service 事件分发编排：一次事件进来，解析收件人、过滤资格、
// 逐收件人逐渠道发送，失败的交给重试调度。
type Service interface {
	HandleEvent(ctx context.Context, event domain.CaseEvent) (domain.DispatchResult, error)
	// Redeliver 重试任务触发后的再投递入口
	Redeliver(ctx context.Context, attempt domain.DispatchAttempt) error
}

type service struct {
	store       casedata.Store
	resolver    resolver.Service
	eligibility eligibility.Service
	factory     template.Factory
	exec        *executor
	sched       RetryScheduler
	gate        *hours.Gate
	logger      *elog.Component
	now         func() time.Time
}

func NewService(
	store casedata.Store,
	resolverSvc resolver.Service,
	eligibilitySvc eligibility.Service,
	factory template.Factory,
	client provider.Client,
	assembler letter.Assembler,
	correspondence repository.CorrespondenceRepository,
	sched RetryScheduler,
	gate *hours.Gate,
	cfg Config,
) Service {
	return &service{
		store:       store,
		resolver:    resolverSvc,
		eligibility: eligibilitySvc,
		factory:     factory,
		exec:        newExecutor(client, assembler, correspondence, cfg),
		sched:       sched,
		gate:        gate,
		logger:      elog.DefaultLogger,
		now:         time.Now,
	}
}

func (s *service) HandleEvent(ctx context.Context, event domain.CaseEvent) (domain.DispatchResult, error) {
	snapshot := event.New
	if snapshot == nil {
		var err error
		snapshot, err = s.store.Retrieve(ctx, event.CaseID)
		if err != nil {
			return domain.DispatchResult{}, err
		}
	}
	result := domain.DispatchResult{CaseID: snapshot.CaseID, EventType: event.Type}

	// 订阅更新要对比新旧快照，顺延会丢掉旧快照，这类事件不走窗口门
	if event.Type == domain.EventSubscriptionUpdated {
		s.handleSubscriptionUpdated(ctx, event, snapshot, &result)
		return result, nil
	}

	now := s.now()
	if !s.gate.InHours(now) {
		return s.deferDispatch(ctx, snapshot, event.Type, result, now)
	}

	if event.Type == domain.EventReissueDocument {
		return s.handleReissue(ctx, snapshot, result)
	}

	if valid, reason := s.eligibility.EventValid(snapshot, event.Type, now); !valid {
		s.logger.Info("事件已失效，跳过分发",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.Type.String()),
			elog.String("reason", reason))
		return result, nil
	}

	s.dispatchToAll(ctx, snapshot, event.Type, nil, &result, 1)
	return result, nil
}

// deferDispatch 窗口外整次顺延到下一个窗口开放，不消耗尝试次数
func (s *service) deferDispatch(ctx context.Context, snapshot *domain.CaseSnapshot, event domain.EventType, result domain.DispatchResult, now time.Time) (domain.DispatchResult, error) {
	triggerAt := s.gate.NextInHours(now)
	attempt := domain.DispatchAttempt{
		CaseID:        snapshot.CaseID,
		EventType:     event,
		AttemptNumber: 1,
	}
	if err := s.sched.ScheduleDeferred(ctx, attempt, triggerAt); err != nil {
		return result, err
	}
	result.Add(domain.RecipientOutcome{
		Status:    domain.OutcomeScheduled,
		TriggerAt: triggerAt,
	})
	return result, nil
}

func (s *service) handleReissue(ctx context.Context, snapshot *domain.CaseSnapshot, result domain.DispatchResult) (domain.DispatchResult, error) {
	if snapshot.Reissue == nil {
		return result, fmt.Errorf("%w: 案件 %s 缺少重发选择", errs.ErrInvalidParameter, snapshot.CaseID)
	}
	target, ok := domain.ReissueTarget(snapshot.Reissue.DocumentEventCode)
	if !ok {
		return result, fmt.Errorf("%w: 未知文书代码 %s", errs.ErrInvalidParameter, snapshot.Reissue.DocumentEventCode)
	}
	// 重发事件改写成具体的文书事件
	result.EventType = target

	for _, ref := range s.resolver.Resolve(snapshot) {
		allowed, reason := s.eligibility.ReissueAllowed(snapshot, ref)
		if !allowed {
			result.Add(domain.RecipientOutcome{
				Role: ref.Role, PartyID: ref.PartyID,
				Status: domain.OutcomeSkipped, Reason: reason,
			})
			continue
		}
		s.dispatchRecipient(ctx, snapshot, ref, target, nil, &result, 1)
	}
	return result, nil
}

// handleSubscriptionUpdated 订阅更新的两个分支：
// 新开通渠道补发最近事件（只发新渠道），邮箱变更给旧地址发确认。
func (s *service) handleSubscriptionUpdated(ctx context.Context, event domain.CaseEvent, snapshot *domain.CaseSnapshot, result *domain.DispatchResult) {
	for _, ref := range s.resolver.Resolve(snapshot) {
		oldSub := s.oldSubscriptionFor(event.Old, ref)

		// 最近事件本身是订阅更新时没有可补发的内容
		newly := eligibility.NewlySubscribedChannels(oldSub, ref.Subscription)
		if len(newly) > 0 && snapshot.LatestEventType != "" &&
			snapshot.LatestEventType != domain.EventSubscriptionUpdated {
			s.dispatchRecipient(ctx, snapshot, ref, snapshot.LatestEventType, newly, result, 1)
		}

		s.notifyOldAddress(ctx, snapshot, ref, oldSub, result)
	}
}

func (s *service) oldSubscriptionFor(old *domain.CaseSnapshot, ref domain.RecipientRef) *domain.Subscription {
	if old == nil {
		return nil
	}
	return old.SubscriptionFor(ref.Role, ref.PartyID)
}

// notifyOldAddress 邮箱或手机号变更后给旧地址发一条确认，
// 新旧地址相同时不发
func (s *service) notifyOldAddress(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, oldSub *domain.Subscription, result *domain.DispatchResult) {
	if oldSub == nil || ref.Subscription == nil {
		return
	}
	n, err := s.factory.Build(ctx, snapshot, ref, domain.EventSubscriptionUpdated)
	if err != nil {
		s.logger.Warn("订阅更新通知没有模板配置",
			elog.String("caseId", snapshot.CaseID), elog.FieldErr(err))
		return
	}
	if oldSub.IsEmailSubscribed() && ref.Subscription.IsEmailSubscribed() &&
		oldSub.Email != "" && oldSub.Email != ref.Subscription.Email {
		old := n
		old.Destination.Email = oldSub.Email
		if old.HasEmail() {
			s.sendChannel(ctx, snapshot, ref, old, domain.EventSubscriptionUpdated, domain.ChannelEmail, result, 1)
		}
	}
	if oldSub.IsSmsSubscribed() && ref.Subscription.IsSmsSubscribed() &&
		oldSub.Mobile != "" && oldSub.Mobile != ref.Subscription.Mobile {
		old := n
		old.Destination.Mobile = oldSub.Mobile
		if old.HasSMS() {
			s.sendChannel(ctx, snapshot, ref, old, domain.EventSubscriptionUpdated, domain.ChannelSMS, result, 1)
		}
	}
}

func (s *service) dispatchToAll(ctx context.Context, snapshot *domain.CaseSnapshot, event domain.EventType, onlyChannels []domain.Channel, result *domain.DispatchResult, attemptNumber int) {
	for _, ref := range s.resolver.Resolve(snapshot) {
		eligible, reason := s.eligibility.RecipientEligible(ref, event)
		if !eligible {
			result.Add(domain.RecipientOutcome{
				Role: ref.Role, PartyID: ref.PartyID,
				Status: domain.OutcomeSkipped, Reason: reason,
			})
			continue
		}
		s.dispatchRecipient(ctx, snapshot, ref, event, onlyChannels, result, attemptNumber)
	}
}

func (s *service) dispatchRecipient(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, event domain.EventType, onlyChannels []domain.Channel, result *domain.DispatchResult, attemptNumber int) {
	n, err := s.factory.Build(ctx, snapshot, ref, event)
	if err != nil {
		s.logger.Error("构建通知包失败",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.String("role", string(ref.Role)),
			elog.FieldErr(err))
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID,
			Status: domain.OutcomeFailed, Fatal: true, Reason: err.Error(),
		})
		return
	}

	channels := s.activeChannels(ref, n, event, onlyChannels)
	if len(channels) == 0 {
		s.logger.Error("没有可用渠道，未发送通知",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.String("role", string(ref.Role)),
			elog.String("partyId", ref.PartyID))
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID,
			Status: domain.OutcomeSkipped, Reason: errs.ErrNoActiveChannel.Error(),
		})
		return
	}

	for _, ch := range channels {
		s.sendChannel(ctx, snapshot, ref, n, event, ch, result, attemptNumber)
	}
}

// activeChannels 渠道激活规则：邮件和短信要求订阅且模板目的地齐全，
// 信件只在强制出信事件且地址有效时激活
func (s *service) activeChannels(ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType, only []domain.Channel) []domain.Channel {
	var channels []domain.Channel
	if ref.Subscription.IsEmailSubscribed() && n.HasEmail() {
		channels = append(channels, domain.ChannelEmail)
	}
	if ref.Subscription.IsSmsSubscribed() && n.HasSMS() {
		channels = append(channels, domain.ChannelSMS)
	}
	if event.IsMandatoryLetterEvent() && n.HasLetter() {
		channels = append(channels, domain.ChannelLetter)
	}
	if only == nil {
		return channels
	}
	allowed := make(map[domain.Channel]struct{}, len(only))
	for _, ch := range only {
		allowed[ch] = struct{}{}
	}
	filtered := channels[:0]
	for _, ch := range channels {
		if _, ok := allowed[ch]; ok {
			filtered = append(filtered, ch)
		}
	}
	return filtered
}

func (s *service) sendChannel(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType, channel domain.Channel, result *domain.DispatchResult, attemptNumber int) {
	providerID, err := s.exec.send(ctx, snapshot, ref, n, event, channel)
	if err == nil {
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID, Channel: channel,
			Status: domain.OutcomeSent, ProviderID: providerID,
		})
		return
	}

	// 拼装失败说明案件资料或模板有问题，重发不会有不同结果
	if provider.IsFatal(err) || errors.Is(err, errs.ErrLetterAssembly) {
		s.logger.Error("发送失败且不可重试",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.String("channel", string(channel)),
			elog.FieldErr(err))
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID, Channel: channel,
			Status: domain.OutcomeFailed, Fatal: true, Reason: err.Error(),
		})
		return
	}

	attempt := domain.DispatchAttempt{
		CaseID:        snapshot.CaseID,
		EventType:     event,
		Role:          ref.Role,
		PartyID:       ref.PartyID,
		Channel:       channel,
		AttemptNumber: attemptNumber,
	}
	triggerAt, ok, serr := s.sched.ScheduleRetry(ctx, attempt, s.now())
	if serr != nil {
		s.logger.Error("调度重试失败",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.FieldErr(serr))
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID, Channel: channel,
			Status: domain.OutcomeFailed, Reason: serr.Error(),
		})
		return
	}
	if !ok {
		s.logger.Error("重试次数耗尽，放弃发送",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.String("channel", string(channel)),
			elog.FieldErr(err))
		result.Add(domain.RecipientOutcome{
			Role: ref.Role, PartyID: ref.PartyID, Channel: channel,
			Status: domain.OutcomeFailed, Reason: err.Error(),
		})
		return
	}
	result.Add(domain.RecipientOutcome{
		Role: ref.Role, PartyID: ref.PartyID, Channel: channel,
		Status: domain.OutcomeScheduled, TriggerAt: triggerAt,
	})
}

// Redeliver 任务触发后重新拉取案件，重新判定资格再发送。
// 这段时间里事件失效、收件人退订或离开案件都自然落空。
func (s *service) Redeliver(ctx context.Context, attempt domain.DispatchAttempt) error {
	snapshot, err := s.store.Retrieve(ctx, attempt.CaseID)
	if err != nil {
		return err
	}
	result := domain.DispatchResult{CaseID: snapshot.CaseID, EventType: attempt.EventType}

	if attempt.EventType == domain.EventReissueDocument {
		_, rerr := s.handleReissue(ctx, snapshot, result)
		return rerr
	}

	if valid, reason := s.eligibility.EventValid(snapshot, attempt.EventType, s.now()); !valid {
		s.logger.Info("事件已失效，重试落空",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", attempt.EventType.String()),
			elog.String("reason", reason))
		return nil
	}

	// 整次顺延后的再入
	if attempt.Role == "" {
		s.dispatchToAll(ctx, snapshot, attempt.EventType, nil, &result, attempt.AttemptNumber)
		return nil
	}

	ref, found := s.findRecipient(snapshot, attempt)
	if !found {
		s.logger.Info("收件人已不在案件中，重试落空",
			elog.String("caseId", snapshot.CaseID),
			elog.String("role", string(attempt.Role)),
			elog.String("partyId", attempt.PartyID))
		return nil
	}
	if eligible, reason := s.eligibility.RecipientEligible(ref, attempt.EventType); !eligible {
		s.logger.Info("收件人已不符合条件，重试落空",
			elog.String("caseId", snapshot.CaseID),
			elog.String("reason", reason))
		return nil
	}

	s.dispatchRecipient(ctx, snapshot, ref, attempt.EventType, []domain.Channel{attempt.Channel}, &result, attempt.AttemptNumber)
	return nil
}

func (s *service) findRecipient(snapshot *domain.CaseSnapshot, attempt domain.DispatchAttempt) (domain.RecipientRef, bool) {
	for _, ref := range s.resolver.Resolve(snapshot) {
		if ref.Role == attempt.Role && ref.PartyID == attempt.PartyID {
			return ref, true
		}
	}
	return domain.RecipientRef{}, false
}
