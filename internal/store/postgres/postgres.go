// Package postgres 把集合存储映射到 PostgreSQL 的单张 documents 表：
// (collection, doc_key) 为主键，data 为 JSONB 文档。
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"college-admin/backend/internal/store"
)

// DocumentRow documents 表 — 每行一条集合记录
type DocumentRow struct {
	Collection string         `gorm:"type:varchar(32);primaryKey"                    json:"collection"`
	DocKey     string         `gorm:"column:doc_key;type:varchar(64);primaryKey"      json:"doc_key"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null"                            json:"data"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (DocumentRow) TableName() string { return "documents" }

// Store PostgreSQL 文档存储
type Store struct {
	db *gorm.DB
}

// New 基于已连接的 gorm.DB 创建存储；连接由调用方关闭
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Collection 返回集合句柄
func (s *Store) Collection(name string) store.Collection {
	return &collection{db: s.db, name: name}
}

// Close 关闭底层连接池
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type collection struct {
	db   *gorm.DB
	name string
}

func (c *collection) List(ctx context.Context) ([]store.Document, error) {
	var rows []DocumentRow
	err := c.db.WithContext(ctx).
		Where("collection = ?", c.name).
		Order("doc_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	docs := make([]store.Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, store.Document{Key: r.DocKey, Data: []byte(r.Data)})
	}
	return docs, nil
}

func (c *collection) Get(ctx context.Context, key string) (*store.Document, error) {
	var row DocumentRow
	err := c.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", c.name, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &store.Document{Key: row.DocKey, Data: []byte(row.Data)}, nil
}

func (c *collection) Put(ctx context.Context, key string, data []byte) error {
	row := DocumentRow{
		Collection: c.name,
		DocKey:     key,
		Data:       datatypes.JSON(data),
		UpdatedAt:  time.Now(),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
}

func (c *collection) Add(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	row := DocumentRow{
		Collection: c.name,
		DocKey:     key,
		Data:       datatypes.JSON(data),
	}
	if err := c.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return key, nil
}

func (c *collection) Delete(ctx context.Context, key string) error {
	return c.db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", c.name, key).
		Delete(&DocumentRow{}).Error
}
