package letter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/pkg/pagedoc"
)

type httpRenderer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRenderer 基于渲染服务 HTTP API 的实现
func NewHTTPRenderer(cfg Config) Renderer {
	const defaultTimeout = 30
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpRenderer{
		baseURL: cfg.RenderBaseURL,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (r *httpRenderer) Render(ctx context.Context, templateID, language string, placeholders map[string]string) (*pagedoc.Document, error) {
	payload, err := json.Marshal(map[string]any{
		"templateId": templateID,
		"language":   language,
		"data":       placeholders,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("渲染请求失败: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("渲染服务返回 %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取渲染结果失败: %w", err)
	}
	return pagedoc.Decode(data)
}
