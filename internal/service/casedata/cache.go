package casedata

import (
	"context"
	"encoding/json"
	"time"

	"gitee.com/flycash/case-notification/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
)

// CachedStore 在案件库前面加一层 redis 缓存。
// 同一次分发会多次读取同一案件，缓存窗口放短一些就不会拿到过期快照。
type CachedStore struct {
	store      Store
	client     redis.Cmdable
	expiration time.Duration
	logger     *elog.Component
}

func NewCachedStore(store Store, client redis.Cmdable, expiration time.Duration) *CachedStore {
	return &CachedStore{
		store:      store,
		client:     client,
		expiration: expiration,
		logger:     elog.DefaultLogger,
	}
}

func (s *CachedStore) Retrieve(ctx context.Context, caseID string) (*domain.CaseSnapshot, error) {
	key := "case:snapshot:" + caseID
	val, err := s.client.Get(ctx, key).Result()
	if err == nil {
		var snapshot domain.CaseSnapshot
		if uerr := json.Unmarshal([]byte(val), &snapshot); uerr == nil {
			return &snapshot, nil
		}
		// 缓存内容损坏，当缓存未命中处理
		s.logger.Warn("案件缓存解析失败", elog.String("caseId", caseID))
	}

	snapshot, err := s.store.Retrieve(ctx, caseID)
	if err != nil {
		return nil, err
	}

	data, merr := json.Marshal(snapshot)
	if merr == nil {
		if serr := s.client.Set(ctx, key, data, s.expiration).Err(); serr != nil {
			s.logger.Warn("案件缓存写入失败",
				elog.String("caseId", caseID), elog.FieldErr(serr))
		}
	}
	return snapshot, nil
}
