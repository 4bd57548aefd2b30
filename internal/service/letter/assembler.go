package letter

import (
	"context"
	"fmt"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/errs"
	"gitee.com/flycash/case-notification/internal/pkg/pagedoc"
	"gitee.com/flycash/case-notification/internal/service/casedata"
)

const (
	languageEnglish = "en"
	languageWelsh   = "cy"

	defaultMaxBundlePages = 10
)

// Assembler 合订信件拼装。
// 渲染信件正文，拉取事件引用的文书，合订后补齐偶数页。
// 任何一步失败整封信都不发，按致命失败处理，不进重试。
type Assembler interface {
	Assemble(ctx context.Context, snapshot *domain.CaseSnapshot, notification domain.ChannelNotification, event domain.EventType) ([]Letter, error)
}

type assembler struct {
	renderer       Renderer
	fetcher        casedata.DocumentFetcher
	maxBundlePages int
}

func NewAssembler(renderer Renderer, fetcher casedata.DocumentFetcher, cfg Config) Assembler {
	maxPages := cfg.MaxBundlePages
	if maxPages <= 0 {
		maxPages = defaultMaxBundlePages
	}
	return &assembler{
		renderer:       renderer,
		fetcher:        fetcher,
		maxBundlePages: maxPages,
	}
}

func (a *assembler) Assemble(ctx context.Context, snapshot *domain.CaseSnapshot, notification domain.ChannelNotification, event domain.EventType) ([]Letter, error) {
	docType, ok := event.BundledLetterDocType()
	if !ok {
		return nil, fmt.Errorf("%w: 事件 %s 不是合订信件事件", errs.ErrLetterAssembly, event)
	}
	docURL := snapshot.LatestDocumentURL(docType)
	if docURL == "" {
		return nil, fmt.Errorf("%w: 案件 %s 缺少 %s 文书", errs.ErrLetterAssembly, snapshot.CaseID, docType)
	}
	attachment, err := a.fetcher.Fetch(ctx, docURL)
	if err != nil {
		return nil, fmt.Errorf("%w: 拉取文书失败: %w", errs.ErrLetterAssembly, err)
	}

	lang := languageEnglish
	if event.IsWelsh() {
		lang = languageWelsh
	}

	bundle, err := a.bundle(ctx, notification, attachment, event, lang)
	if err != nil {
		return nil, err
	}

	// 双语信件超限后拆成英文、威尔士文两封单独寄出
	if event.IsWelsh() && bundle.Document.PageCount() > a.maxBundlePages {
		return a.split(ctx, notification, attachment, event)
	}
	return []Letter{bundle}, nil
}

func (a *assembler) split(ctx context.Context, notification domain.ChannelNotification, attachment *pagedoc.Document, event domain.EventType) ([]Letter, error) {
	english, _ := event.EnglishCounterpart()
	en, err := a.bundle(ctx, notification, attachment, english, languageEnglish)
	if err != nil {
		return nil, err
	}
	cy, err := a.bundle(ctx, notification, attachment, event, languageWelsh)
	if err != nil {
		return nil, err
	}
	return []Letter{en, cy}, nil
}

// bundle 正文在前文书在后，奇数页补一张空白页，双面打印不会串页
func (a *assembler) bundle(ctx context.Context, notification domain.ChannelNotification, attachment *pagedoc.Document, event domain.EventType, lang string) (Letter, error) {
	body, err := a.renderer.Render(ctx, notification.LetterTemplateID, lang, notification.Placeholders)
	if err != nil {
		return Letter{}, fmt.Errorf("%w: 渲染信件失败: %w", errs.ErrLetterAssembly, err)
	}
	doc := pagedoc.New()
	doc.Append(body)
	doc.Append(attachment)
	if doc.PageCount()%2 != 0 {
		doc.AppendBlankPage()
	}
	return Letter{
		Filename: fmt.Sprintf("%s-%s.pdf", event, lang),
		Document: doc,
	}, nil
}
