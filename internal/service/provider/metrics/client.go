package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

// Client 为供应商客户端添加指标收集的装饰器
type Client struct {
	client              provider.Client
	sendDurationSummary *prometheus.SummaryVec
	sendCounter         *prometheus.CounterVec
	sendErrorCounter    *prometheus.CounterVec
	name                string
}

// NewClient 创建一个新的带有指标收集的供应商客户端
func NewClient(name string, c provider.Client) *Client {
	sendDurationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "provider_send_duration_seconds",
			Help:       "供应商发送通知耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"provider", "channel"},
	)

	sendCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_total",
			Help: "供应商发送通知总数",
		},
		[]string{"provider", "channel"},
	)

	sendErrorCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_error_total",
			Help: "供应商发送失败统计",
		},
		[]string{"provider", "channel", "fatal"},
	)

	prometheus.MustRegister(sendDurationSummary, sendCounter, sendErrorCounter)

	return &Client{
		client:              c,
		sendDurationSummary: sendDurationSummary,
		sendCounter:         sendCounter,
		sendErrorCounter:    sendErrorCounter,
		name:                name,
	}
}

func (c *Client) SendEmail(ctx context.Context, templateID, to string, placeholders map[string]string) (provider.SendResponse, error) {
	return c.observe(domain.ChannelEmail, func() (provider.SendResponse, error) {
		return c.client.SendEmail(ctx, templateID, to, placeholders)
	})
}

func (c *Client) SendSMS(ctx context.Context, templateID, mobile string, placeholders map[string]string) (provider.SendResponse, error) {
	return c.observe(domain.ChannelSMS, func() (provider.SendResponse, error) {
		return c.client.SendSMS(ctx, templateID, mobile, placeholders)
	})
}

func (c *Client) SendLetter(ctx context.Context, templateID string, address domain.Address, placeholders map[string]string) (provider.SendResponse, error) {
	return c.observe(domain.ChannelLetter, func() (provider.SendResponse, error) {
		return c.client.SendLetter(ctx, templateID, address, placeholders)
	})
}

func (c *Client) SendPrecompiledLetter(ctx context.Context, filename string, document []byte) (provider.SendResponse, error) {
	return c.observe(domain.ChannelLetter, func() (provider.SendResponse, error) {
		return c.client.SendPrecompiledLetter(ctx, filename, document)
	})
}

func (c *Client) observe(channel domain.Channel, send func() (provider.SendResponse, error)) (provider.SendResponse, error) {
	startTime := time.Now()

	c.sendCounter.WithLabelValues(c.name, string(channel)).Inc()

	response, err := send()

	duration := time.Since(startTime).Seconds()
	c.sendDurationSummary.WithLabelValues(c.name, string(channel)).Observe(duration)

	if err != nil {
		fatal := "false"
		if provider.IsFatal(err) {
			fatal = "true"
		}
		c.sendErrorCounter.WithLabelValues(c.name, string(channel), fatal).Inc()
	}

	return response, err
}
