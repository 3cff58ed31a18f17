package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError_Empty(t *testing.T) {
	if err := NewValidationError(nil); err != nil {
		t.Errorf("期望 nil，实际: %v", err)
	}
}

func TestValidationError_As(t *testing.T) {
	err := fmt.Errorf("创建学生: %w", NewValidationError(map[string]string{"age": "年龄必须在18到80之间"}))

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("期望可提取 ValidationError")
	}
	if ve.Fields["age"] == "" {
		t.Error("期望 age 字段存在失败原因")
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("put", "students", cause)

	if !errors.Is(err, cause) {
		t.Error("期望 errors.Is 命中底层错误")
	}
	if !IsStore(err) {
		t.Error("期望 IsStore=true")
	}
	if IsStore(ErrNotFound) {
		t.Error("ErrNotFound 不应是 StoreError")
	}
	if NewStoreError("get", "students", nil) != nil {
		t.Error("nil 错误不应被包装")
	}
}
