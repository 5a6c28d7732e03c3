package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable Redis 未启用
var ErrRedisUnavailable = errors.New("redis unavailable")

// CartSnapshotStore 基于 Redis 的购物车快照存储
type CartSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCartSnapshotStore 创建 Redis 快照存储，ttl <= 0 表示不过期
func NewCartSnapshotStore(client *redis.Client, prefix string, ttl time.Duration) *CartSnapshotStore {
	if ttl < 0 {
		ttl = 0
	}
	return &CartSnapshotStore{client: client, prefix: prefix, ttl: ttl}
}

// Get 读取快照
func (s *CartSnapshotStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, ErrRedisUnavailable
	}
	val, err := s.client.Get(ctx, joinKey(s.prefix, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Put 覆盖写入快照，每次写入刷新过期时间
func (s *CartSnapshotStore) Put(ctx context.Context, key, value string) error {
	if s == nil || s.client == nil {
		return ErrRedisUnavailable
	}
	return s.client.Set(ctx, joinKey(s.prefix, key), value, s.ttl).Err()
}

// Delete 删除快照
func (s *CartSnapshotStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.client == nil {
		return ErrRedisUnavailable
	}
	return s.client.Del(ctx, joinKey(s.prefix, key)).Err()
}
