package casedata

import (
	"context"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/pkg/pagedoc"
)

// Store 外部案件库。重试任务触发时会重新拉取最新快照。
//
//go:generate mockgen -source=./types.go -destination=./mocks/store.mock.go -package=casedatamocks -typed Store
type Store interface {
	Retrieve(ctx context.Context, caseID string) (*domain.CaseSnapshot, error)
}

// DocumentFetcher 按链接拉取案件文书
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*pagedoc.Document, error)
}
