package letter

import (
	"context"

	"gitee.com/flycash/case-notification/internal/pkg/pagedoc"
)

// Renderer 把信件模板渲染成分页文档
//
//go:generate mockgen -source=./types.go -destination=./mocks/renderer.mock.go -package=lettermocks -typed Renderer
type Renderer interface {
	Render(ctx context.Context, templateID, language string, placeholders map[string]string) (*pagedoc.Document, error)
}

// Letter 可直接投递的成品信件
type Letter struct {
	// Filename 形如 {事件类型}-{语言}.pdf
	Filename string
	Document *pagedoc.Document
}

// Config 信件拼装配置
type Config struct {
	// MaxBundlePages 双语合订信件的页数上限，超出后拆成两封单语信件
	MaxBundlePages int `json:"maxBundlePages" yaml:"maxBundlePages"`
	// RenderBaseURL 渲染服务地址
	RenderBaseURL string `json:"renderBaseUrl" yaml:"renderBaseUrl"`
	// RenderTimeout 渲染超时，单位秒
	RenderTimeout int `json:"renderTimeout" yaml:"renderTimeout"`
}
