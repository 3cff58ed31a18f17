package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"college-admin/backend/config"
)

// Client MongoDB 客户端封装，持有目标数据库
type Client struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// NewClient 连接 MongoDB 并执行 Ping 健康检查
func NewClient(cfg *config.MongoConfig, logger *zap.Logger) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("MongoDB 连接失败: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping 失败: %w", err)
	}

	logger.Info("MongoDB 连接成功", zap.String("database", cfg.Database))

	return &Client{client: client, db: client.Database(cfg.Database), timeout: timeout}, nil
}

// Database 返回目标数据库
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Timeout 单次调用超时
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close 断开连接
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.client.Disconnect(ctx)
}
