package repository

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"gitee.com/flycash/case-notification/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/sony/sonyflake"
)

// CorrespondenceRepository 通信归档仓库
type CorrespondenceRepository interface {
	Save(ctx context.Context, c domain.Correspondence, reasonableAdjustment bool) (domain.Correspondence, error)
	FindByCaseID(ctx context.Context, caseID string) ([]domain.Correspondence, error)
}

type correspondenceRepository struct {
	dao   dao.CorrespondenceDAO
	idGen *sonyflake.Sonyflake
}

func NewCorrespondenceRepository(d dao.CorrespondenceDAO, idGen *sonyflake.Sonyflake) CorrespondenceRepository {
	return &correspondenceRepository{dao: d, idGen: idGen}
}

func (r *correspondenceRepository) Save(ctx context.Context, c domain.Correspondence, reasonableAdjustment bool) (domain.Correspondence, error) {
	id, err := r.idGen.NextID()
	if err != nil {
		return domain.Correspondence{}, fmt.Errorf("生成归档ID失败: %w", err)
	}
	saved, err := r.dao.Insert(ctx, dao.Correspondence{
		ID:                   id,
		CaseID:               c.CaseID,
		EventType:            string(c.EventType),
		Channel:              string(c.Channel),
		Recipient:            c.To,
		Sender:               c.From,
		Body:                 c.Body,
		ReasonableAdjustment: reasonableAdjustment,
		SentAt:               c.SentAt.UnixMilli(),
	})
	if err != nil {
		return domain.Correspondence{}, err
	}
	return r.toDomain(saved), nil
}

func (r *correspondenceRepository) FindByCaseID(ctx context.Context, caseID string) ([]domain.Correspondence, error) {
	rows, err := r.dao.FindByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return slice.Map(rows, func(_ int, row dao.Correspondence) domain.Correspondence {
		return r.toDomain(row)
	}), nil
}

func (r *correspondenceRepository) toDomain(c dao.Correspondence) domain.Correspondence {
	return domain.Correspondence{
		ID:        c.ID,
		CaseID:    c.CaseID,
		EventType: domain.EventType(c.EventType),
		Channel:   domain.Channel(c.Channel),
		To:        c.Recipient,
		From:      c.Sender,
		Body:      c.Body,
		SentAt:    time.UnixMilli(c.SentAt),
	}
}
