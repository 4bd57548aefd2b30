package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
)

// Config 供应商客户端配置
type Config struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`
	// Timeout 单次请求超时，单位秒
	Timeout int `json:"timeout" yaml:"timeout"`
}

// HTTPClient 基于 HTTP API 的供应商客户端实现
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(cfg Config) *HTTPClient {
	const defaultTimeout = 30
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

func (c *HTTPClient) SendEmail(ctx context.Context, templateID, to string, placeholders map[string]string) (SendResponse, error) {
	return c.post(ctx, "/v2/notifications/email", map[string]any{
		"template_id":     templateID,
		"email_address":   to,
		"personalisation": placeholders,
	})
}

func (c *HTTPClient) SendSMS(ctx context.Context, templateID, mobile string, placeholders map[string]string) (SendResponse, error) {
	return c.post(ctx, "/v2/notifications/sms", map[string]any{
		"template_id":     templateID,
		"phone_number":    mobile,
		"personalisation": placeholders,
	})
}

func (c *HTTPClient) SendLetter(ctx context.Context, templateID string, address domain.Address, placeholders map[string]string) (SendResponse, error) {
	merged := make(map[string]string, len(placeholders)+4)
	for k, v := range placeholders {
		merged[k] = v
	}
	merged["address_line_1"] = address.Line1
	merged["address_line_2"] = address.Line2
	merged["address_line_3"] = address.Town
	merged["postcode"] = address.Postcode
	return c.post(ctx, "/v2/notifications/letter", map[string]any{
		"template_id":     templateID,
		"personalisation": merged,
	})
}

func (c *HTTPClient) SendPrecompiledLetter(ctx context.Context, filename string, document []byte) (SendResponse, error) {
	return c.post(ctx, "/v2/notifications/letter", map[string]any{
		"reference": filename,
		"content":   base64.StdEncoding.EncodeToString(document),
	})
}

func (c *HTTPClient) post(ctx context.Context, path string, body map[string]any) (SendResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return SendResponse{}, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return SendResponse{}, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		// 网络故障，交给上层重试
		return SendResponse{}, fmt.Errorf("%w: %w", errs.ErrProviderServer, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return SendResponse{}, fmt.Errorf("%w: %w", errs.ErrProviderServer, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return SendResponse{}, &ClientError{StatusCode: resp.StatusCode, Message: string(data)}
	}

	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return SendResponse{}, fmt.Errorf("%w: 响应解析失败 %w", errs.ErrProviderServer, err)
	}
	return SendResponse{NotificationID: res.ID, Body: string(data)}, nil
}
