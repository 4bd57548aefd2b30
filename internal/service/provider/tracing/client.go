package tracing

import (
	"context"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client 为供应商客户端添加链路追踪的装饰器
type Client struct {
	client provider.Client
	tracer trace.Tracer
}

// NewClient 创建一个新的带有链路追踪的供应商客户端
func NewClient(c provider.Client) *Client {
	return &Client{
		client: c,
		tracer: otel.Tracer("case-notification/provider"),
	}
}

func (c *Client) SendEmail(ctx context.Context, templateID, to string, placeholders map[string]string) (provider.SendResponse, error) {
	ctx, span := c.tracer.Start(ctx, "Client.SendEmail",
		trace.WithAttributes(
			attribute.String("notification.channel", string(domain.ChannelEmail)),
			attribute.String("notification.templateId", templateID),
		))
	defer span.End()

	response, err := c.client.SendEmail(ctx, templateID, to, placeholders)
	c.record(span, response, err)
	return response, err
}

func (c *Client) SendSMS(ctx context.Context, templateID, mobile string, placeholders map[string]string) (provider.SendResponse, error) {
	ctx, span := c.tracer.Start(ctx, "Client.SendSMS",
		trace.WithAttributes(
			attribute.String("notification.channel", string(domain.ChannelSMS)),
			attribute.String("notification.templateId", templateID),
		))
	defer span.End()

	response, err := c.client.SendSMS(ctx, templateID, mobile, placeholders)
	c.record(span, response, err)
	return response, err
}

func (c *Client) SendLetter(ctx context.Context, templateID string, address domain.Address, placeholders map[string]string) (provider.SendResponse, error) {
	ctx, span := c.tracer.Start(ctx, "Client.SendLetter",
		trace.WithAttributes(
			attribute.String("notification.channel", string(domain.ChannelLetter)),
			attribute.String("notification.templateId", templateID),
		))
	defer span.End()

	response, err := c.client.SendLetter(ctx, templateID, address, placeholders)
	c.record(span, response, err)
	return response, err
}

func (c *Client) SendPrecompiledLetter(ctx context.Context, filename string, document []byte) (provider.SendResponse, error) {
	ctx, span := c.tracer.Start(ctx, "Client.SendPrecompiledLetter",
		trace.WithAttributes(
			attribute.String("notification.channel", string(domain.ChannelLetter)),
			attribute.String("notification.filename", filename),
			attribute.Int("notification.documentSize", len(document)),
		))
	defer span.End()

	response, err := c.client.SendPrecompiledLetter(ctx, filename, document)
	c.record(span, response, err)
	return response, err
}

func (c *Client) record(span trace.Span, response provider.SendResponse, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.String("notification.providerId", response.NotificationID))
}
