package idempotent

import "context"

// Service 幂等判定。Exists 返回 true 表示 key 曾经出现过。
type Service interface {
	Exists(ctx context.Context, key string) (bool, error)
}
