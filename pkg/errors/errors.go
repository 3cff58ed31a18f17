// Package errors 定义跨层共享的错误分类：校验失败、主键重复、记录不存在、存储失败。
// 每个错误只作用于触发它的单次操作，均不重试。
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound 记录不存在；读取方通常以原始编码作为展示回退
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateKey 自然键已存在
	ErrDuplicateKey = errors.New("主键已存在")
	// ErrAlreadyEnrolled 学生已选该课程
	ErrAlreadyEnrolled = errors.New("学生已选该课程")
)

// ValidationError 字段级校验失败，Fields 为 字段名 → 第一条失败原因
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError 由字段结果构造校验错误；fields 为空时返回 nil
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "参数校验失败: " + strings.Join(parts, "; ")
}

// AsValidation 提取 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// StoreError 存储调用失败（任意后端）
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

// NewStoreError 包装存储层错误；err 为 nil 时返回 nil
func NewStoreError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("存储操作失败 %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStore 判断是否为存储失败
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
