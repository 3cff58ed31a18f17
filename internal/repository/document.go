package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"college-admin/backend/internal/store"
	apperrors "college-admin/backend/pkg/errors"
)

// docRepo 在集合之上做 JSON 编解码的通用实现
// setKey 用于把存储生成的键回填到记录（仅生成键的集合需要）
type docRepo[T any] struct {
	col    store.Collection
	name   string
	setKey func(*T, string)
}

func (r *docRepo[T]) decode(doc store.Document) (*T, error) {
	var v T
	if err := json.Unmarshal(doc.Data, &v); err != nil {
		return nil, apperrors.NewStoreError("decode", r.name, fmt.Errorf("记录 %s: %w", doc.Key, err))
	}
	if r.setKey != nil {
		r.setKey(&v, doc.Key)
	}
	return &v, nil
}

func (r *docRepo[T]) list(ctx context.Context) ([]T, error) {
	docs, err := r.col.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("list", r.name, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := r.decode(d)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// get 不存在时返回 store.ErrNotFound（不包装），其余失败包装为 StoreError
func (r *docRepo[T]) get(ctx context.Context, key string) (*T, error) {
	doc, err := r.col.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, apperrors.NewStoreError("get", r.name, err)
	}
	return r.decode(*doc)
}

func (r *docRepo[T]) put(ctx context.Context, key string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStoreError("encode", r.name, err)
	}
	return apperrors.NewStoreError("put", r.name, r.col.Put(ctx, key, data))
}

func (r *docRepo[T]) add(ctx context.Context, v *T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.NewStoreError("encode", r.name, err)
	}
	key, err := r.col.Add(ctx, data)
	if err != nil {
		return "", apperrors.NewStoreError("add", r.name, err)
	}
	if r.setKey != nil {
		r.setKey(v, key)
	}
	return key, nil
}

func (r *docRepo[T]) delete(ctx context.Context, key string) error {
	return apperrors.NewStoreError("delete", r.name, r.col.Delete(ctx, key))
}
