// Package refcache 基于 Redis 的文件标识缓存
package refcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"standard-ai/internal/domain/models"
)

// Config Redis 连接配置
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// kv redis.Client 中用到的命令
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache 文件标识缓存。
// 模型服务签发的文件标识有有效期，TTL 应不超过该有效期。
type Cache struct {
	client kv
	ttl    time.Duration
	prefix string
}

// New 创建 Redis 客户端
func New(cfg Config) (*Cache, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Protocol: 2,
	})
	return newCache(client, cfg.TTL, cfg.Prefix), client
}

func newCache(client kv, ttl time.Duration, prefix string) *Cache {
	return &Cache{client: client, ttl: ttl, prefix: prefix}
}

// Get 读取缓存
func (c *Cache) Get(ctx context.Context, key string) (models.FileContextRef, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return models.FileContextRef(val), true, nil
}

// Set 写入缓存
func (c *Cache) Set(ctx context.Context, key string, ref models.FileContextRef) error {
	if err := c.client.Set(ctx, c.prefix+key, string(ref), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
