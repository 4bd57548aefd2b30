package dispatch

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/repository"
	"gitee.com/flycash/case-notification/internal/service/letter"
	"gitee.com/flycash/case-notification/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

// executor 单个收件人单个渠道的实际发送。
// 成功后按开关归档通信记录，合理便利收件人不论开关都归档；
// 合理便利的合订信件只归档不投递。
type executor struct {
	client             provider.Client
	assembler          letter.Assembler
	correspondence     repository.CorrespondenceRepository
	saveCorrespondence bool
	senderName         string
	logger             *elog.Component
}

func newExecutor(client provider.Client, assembler letter.Assembler, correspondence repository.CorrespondenceRepository, cfg Config) *executor {
	return &executor{
		client:             client,
		assembler:          assembler,
		correspondence:     correspondence,
		saveCorrespondence: cfg.SaveCorrespondence,
		senderName:         cfg.SenderName,
		logger:             elog.DefaultLogger,
	}
}

func (e *executor) send(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType, channel domain.Channel) (string, error) {
	switch channel {
	case domain.ChannelEmail:
		return e.sendEmail(ctx, snapshot, ref, n, event)
	case domain.ChannelSMS:
		return e.sendSMS(ctx, snapshot, ref, n, event)
	case domain.ChannelLetter:
		return e.sendLetter(ctx, snapshot, ref, n, event)
	}
	return "", fmt.Errorf("%w: 未知渠道 %s", errs.ErrInvalidParameter, channel)
}

func (e *executor) sendEmail(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType) (string, error) {
	resp, err := e.client.SendEmail(ctx, n.EmailTemplateID, n.Destination.Email, n.Placeholders)
	if err != nil {
		return "", err
	}
	e.archive(ctx, snapshot, event, domain.ChannelEmail, n.Destination.Email, []byte(resp.Body), WantsReasonableAdjustment(snapshot, ref))
	return resp.NotificationID, nil
}

// sendSMS 多个模板依次发送：先基准语言，后本地化语言。
// 任何一条失败即整体失败，重试时整组重发。
func (e *executor) sendSMS(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType) (string, error) {
	var lastID string
	for _, tplID := range n.SMSTemplateIDs {
		resp, err := e.client.SendSMS(ctx, tplID, n.Destination.Mobile, n.Placeholders)
		if err != nil {
			return "", err
		}
		lastID = resp.NotificationID
		e.archive(ctx, snapshot, event, domain.ChannelSMS, n.Destination.Mobile, []byte(resp.Body), WantsReasonableAdjustment(snapshot, ref))
	}
	return lastID, nil
}

func (e *executor) sendLetter(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType) (string, error) {
	if event.IsBundledLetterEvent() {
		return e.sendBundledLetter(ctx, snapshot, ref, n, event)
	}
	resp, err := e.client.SendLetter(ctx, n.LetterTemplateID, n.Destination.Address, n.Placeholders)
	if err != nil {
		return "", err
	}
	e.archive(ctx, snapshot, event, domain.ChannelLetter, n.Destination.Address.Line1, []byte(resp.Body), WantsReasonableAdjustment(snapshot, ref))
	return resp.NotificationID, nil
}

func (e *executor) sendBundledLetter(ctx context.Context, snapshot *domain.CaseSnapshot, ref domain.RecipientRef, n domain.ChannelNotification, event domain.EventType) (string, error) {
	letters, err := e.assembler.Assemble(ctx, snapshot, n, event)
	if err != nil {
		return "", err
	}

	// 合理便利收件人的信件转线下打印，只归档不投递
	if WantsReasonableAdjustment(snapshot, ref) {
		for _, l := range letters {
			e.archive(ctx, snapshot, event, domain.ChannelLetter, n.Destination.Address.Line1, l.Document.Encode(), true)
		}
		e.logger.Info("合理便利信件已归档待线下处理",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.String("role", string(ref.Role)))
		return "", nil
	}

	var lastID string
	var errSum error
	for _, l := range letters {
		resp, serr := e.client.SendPrecompiledLetter(ctx, l.Filename, l.Document.Encode())
		if serr != nil {
			errSum = multierror.Append(errSum, serr)
			continue
		}
		lastID = resp.NotificationID
		e.archive(ctx, snapshot, event, domain.ChannelLetter, n.Destination.Address.Line1, l.Document.Encode(), false)
	}
	if errSum != nil {
		return "", errSum
	}
	return lastID, nil
}

func (e *executor) archive(ctx context.Context, snapshot *domain.CaseSnapshot, event domain.EventType, channel domain.Channel, to string, body []byte, reasonableAdjustment bool) {
	if !e.saveCorrespondence && !reasonableAdjustment {
		return
	}
	_, err := e.correspondence.Save(ctx, domain.Correspondence{
		CaseID:    snapshot.CaseID,
		EventType: event,
		Channel:   channel,
		To:        to,
		From:      e.senderName,
		Body:      body,
		SentAt:    time.Now(),
	}, reasonableAdjustment)
	if err != nil {
		// 归档失败不影响已经发出去的通知
		e.logger.Error("归档通信记录失败",
			elog.String("caseId", snapshot.CaseID),
			elog.String("event", event.String()),
			elog.FieldErr(err))
	}
}

// WantsReasonableAdjustment 收件人是否登记了合理便利需求
func WantsReasonableAdjustment(snapshot *domain.CaseSnapshot, ref domain.RecipientRef) bool {
	switch ref.Role {
	case domain.RoleAppellant:
		return snapshot.Adjustments.Appellant.IsYes()
	case domain.RoleAppointee:
		return snapshot.Adjustments.Appointee.IsYes()
	case domain.RoleRepresentative:
		return snapshot.Adjustments.Representative.IsYes()
	case domain.RoleJointParty:
		return snapshot.Adjustments.JointParty.IsYes()
	case domain.RoleOtherParty:
		op := snapshot.OtherParty(ref.PartyID)
		if op == nil {
			return false
		}
		if op.Appointee != nil && op.Appointee.ID == ref.PartyID {
			return op.AppointeeWantsReasonableAdjustment.IsYes()
		}
		if op.Rep != nil && op.Rep.ID == ref.PartyID {
			return op.RepWantsReasonableAdjustment.IsYes()
		}
		return op.WantsReasonableAdjustment.IsYes()
	}
	return false
}
