// Package mongodb 把每个逻辑集合映射为同名 MongoDB 集合，记录键存于 _id。
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"college-admin/backend/internal/store"
)

// Store MongoDB 文档存储
type Store struct {
	db      *mongo.Database
	timeout time.Duration
	closeFn func() error
}

// New 基于数据库句柄创建存储；closeFn 可为 nil
func New(db *mongo.Database, timeout time.Duration, closeFn func() error) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Store{db: db, timeout: timeout, closeFn: closeFn}
}

// Collection 返回集合句柄
func (s *Store) Collection(name string) store.Collection {
	return &collection{col: s.db.Collection(name), timeout: s.timeout}
}

// Close 断开连接
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

type collection struct {
	col     *mongo.Collection
	timeout time.Duration
}

func (c *collection) List(ctx context.Context) ([]store.Document, error) {
	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cursor, err := c.col.Find(queryCtx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	var docs []store.Document
	for cursor.Next(queryCtx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		doc, err := toDocument(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, key string) (*store.Document, error) {
	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var raw bson.M
	err := c.col.FindOne(queryCtx, bson.M{"_id": key}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return toDocument(raw)
}

func (c *collection) Put(ctx context.Context, key string, data []byte) error {
	doc, err := fromJSON(key, data)
	if err != nil {
		return err
	}

	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err = c.col.ReplaceOne(queryCtx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (c *collection) Add(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	doc, err := fromJSON(key, data)
	if err != nil {
		return "", err
	}

	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.col.InsertOne(queryCtx, doc); err != nil {
		return "", err
	}
	return key, nil
}

func (c *collection) Delete(ctx context.Context, key string) error {
	queryCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.col.DeleteOne(queryCtx, bson.M{"_id": key})
	return err
}

// fromJSON 将 JSON 记录转换为 BSON 文档并写入 _id
func fromJSON(key string, data []byte) (bson.M, error) {
	var doc bson.M
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("记录不是合法 JSON 对象: %w", err)
	}
	if doc == nil {
		doc = bson.M{}
	}
	doc["_id"] = key
	return doc, nil
}

// toDocument 去掉 _id 后以 relaxed Extended JSON 输出，数字与字符串保持普通 JSON 形态
func toDocument(raw bson.M) (*store.Document, error) {
	key, ok := raw["_id"].(string)
	if !ok {
		return nil, fmt.Errorf("文档 _id 类型 %T 不是字符串", raw["_id"])
	}
	delete(raw, "_id")
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, err
	}
	return &store.Document{Key: key, Data: data}, nil
}
