package idempotent

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetNXService 基于 SETNX 的幂等判定。
// 同一个 key 在 expiration 窗口内只有第一次返回 false。
type SetNXService struct {
	client     redis.Cmdable
	keyPrefix  string
	expiration time.Duration
}

func NewSetNXService(client redis.Cmdable, keyPrefix string, expiration time.Duration) *SetNXService {
	return &SetNXService{
		client:     client,
		keyPrefix:  keyPrefix,
		expiration: expiration,
	}
}

func (s *SetNXService) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+":"+key, 1, s.expiration).Result()
	if err != nil {
		return false, err
	}
	// SETNX 成功说明首次出现
	return !ok, nil
}

// BloomService 基于布隆过滤器的幂等判定，容量大但有误判率。
type BloomService struct {
	client     redis.Cmdable
	filterName string
}

func NewBloomService(client redis.Cmdable, filterName string) *BloomService {
	return &BloomService{client: client, filterName: filterName}
}

func (s *BloomService) Exists(ctx context.Context, key string) (bool, error) {
	added, err := s.client.BFAdd(ctx, s.filterName, key).Result()
	if err != nil {
		return false, err
	}
	return !added, nil
}
