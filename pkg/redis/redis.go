package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"college-admin/backend/config"
)

// Client Redis 客户端封装
// 用作本地回退存储的共享后端：每个逻辑集合对应一个键，值为整段 JSON 数组
type Client struct {
	rdb    *goredis.Client
	prefix string
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, prefix string, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, prefix: prefix, logger: logger}, nil
}

// ── 集合数组读写 ──

// Load 读取集合数组，键不存在时返回 nil, nil
func (c *Client) Load(ctx context.Context, name string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, c.prefix+name).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// Save 整段覆盖集合数组，不设置过期时间
func (c *Client) Save(ctx context.Context, name string, data []byte) error {
	return c.rdb.Set(ctx, c.prefix+name, data, 0).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
