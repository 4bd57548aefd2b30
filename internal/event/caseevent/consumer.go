package caseevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/pkg/idempotent"
	"gitee.com/flycash/case-notification/internal/service/dispatch"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"
)

const defaultReadTimeout = time.Second

// EventConsumer 案件事件消费者：逐条拉取、去重、交给分发服务。
// 分发失败不提交位移，等待下一轮重新消费。
type EventConsumer struct {
	svc         dispatch.Service
	consumer    *kafka.Consumer
	guard       idempotent.Service
	readTimeout time.Duration
	logger      *elog.Component
}

func NewEventConsumer(svc dispatch.Service, consumer *kafka.Consumer, guard idempotent.Service) (*EventConsumer, error) {
	return NewEventConsumerWithTopic(svc, consumer, guard, EventName)
}

func NewEventConsumerWithTopic(svc dispatch.Service, consumer *kafka.Consumer, guard idempotent.Service, topic string) (*EventConsumer, error) {
	err := consumer.SubscribeTopics([]string{topic}, nil)
	if err != nil {
		return nil, err
	}
	return &EventConsumer{
		svc:         svc,
		consumer:    consumer,
		guard:       guard,
		readTimeout: defaultReadTimeout,
		logger:      elog.DefaultLogger,
	}, nil
}

func (c *EventConsumer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			if err := c.Consume(ctx); err != nil {
				c.logger.Error("消费案件事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *EventConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.ReadMessage(c.readTimeout)
	if err != nil {
		var kErr kafka.Error
		if errors.As(err, &kErr) && kErr.Code() == kafka.ErrTimedOut {
			return nil
		}
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt Event
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.Warn("解析消息失败，跳过本条",
			elog.FieldErr(err),
			elog.Any("msg", msg))
		// 毒消息原样重试没有意义，直接提交
		return c.commit(msg)
	}

	if evt.EventID != "" {
		seen, gerr := c.guard.Exists(ctx, evt.EventID)
		if gerr != nil {
			// 去重存储不可用时宁可重复投递也不丢事件
			c.logger.Warn("去重检查失败，按未消费处理",
				elog.String("eventId", evt.EventID),
				elog.FieldErr(gerr))
		} else if seen {
			c.logger.Info("事件已消费过，跳过",
				elog.String("eventId", evt.EventID),
				elog.String("caseId", evt.Event.CaseID))
			return c.commit(msg)
		}
	}

	result, err := c.svc.HandleEvent(ctx, evt.Event)
	if err != nil {
		return fmt.Errorf("分发案件事件失败: %w", err)
	}
	c.logger.Info("案件事件分发完成",
		elog.String("caseId", result.CaseID),
		elog.String("event", result.EventType.String()),
		elog.Int("recipients", len(result.Outcomes)))

	return c.commit(msg)
}

func (c *EventConsumer) commit(msg *kafka.Message) error {
	if _, err := c.consumer.CommitMessage(msg); err != nil {
		c.logger.Warn("提交消息失败",
			elog.FieldErr(err),
			elog.Any("partition", msg.TopicPartition.Partition),
			elog.Any("offset", msg.TopicPartition.Offset))
		return err
	}
	return nil
}
