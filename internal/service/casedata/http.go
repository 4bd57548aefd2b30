package casedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/pkg/pagedoc"
)

// Config 案件库客户端配置
type Config struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	// Timeout 单次请求超时，单位秒
	Timeout int `json:"timeout" yaml:"timeout"`
}

type httpStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore 基于 HTTP API 的案件库客户端
func NewHTTPStore(cfg Config) Store {
	const defaultTimeout = 30
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpStore{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (s *httpStore) Retrieve(ctx context.Context, caseID string) (*domain.CaseSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/cases/"+caseID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取案件失败: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", errs.ErrCaseNotFound, caseID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("拉取案件 %s 返回 %d", caseID, resp.StatusCode)
	}
	var snapshot domain.CaseSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("案件 %s 解析失败: %w", caseID, err)
	}
	return &snapshot, nil
}

type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher 按链接拉取文书
func NewHTTPFetcher(timeout time.Duration) DocumentFetcher {
	return &httpFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (*pagedoc.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidParameter, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("拉取文书失败: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("拉取文书 %s 返回 %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取文书失败: %w", err)
	}
	return pagedoc.Decode(data)
}
